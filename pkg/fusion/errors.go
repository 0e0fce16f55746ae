package fusion

import "errors"

var (
	// ErrNoWeights indicates an empty weight map.
	ErrNoWeights = errors.New("fusion: no modality weights")

	// ErrBadWeight indicates a negative weight or a zero weight total.
	ErrBadWeight = errors.New("fusion: bad modality weight")

	// ErrBadBands indicates label bounds that do not strictly descend.
	ErrBadBands = errors.New("fusion: bad label bands")
)
