package signal

import "errors"

// Sentinel errors for the signal package.
var (
	// ErrUnknownChannel indicates a channel name outside the schema.
	ErrUnknownChannel = errors.New("signal: unknown channel")

	// ErrBadValue indicates a NaN or infinite activation value.
	ErrBadValue = errors.New("signal: activation is not a finite number")

	// ErrBadPoint indicates a NaN or infinite landmark coordinate.
	ErrBadPoint = errors.New("signal: landmark coordinate is not a finite number")

	// ErrHandSlot indicates a hand slot outside 0/1.
	ErrHandSlot = errors.New("signal: hand slot must be 0 or 1")
)
