package posture

import "errors"

var (
	// ErrConfig indicates an invalid scorer configuration.
	ErrConfig = errors.New("posture: invalid config")

	// ErrSlot indicates a hand slot outside the tracked range.
	ErrSlot = errors.New("posture: hand slot out of range")

	// ErrSide indicates an arm side other than left or right.
	ErrSide = errors.New("posture: unknown arm side")
)
