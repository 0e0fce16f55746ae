package face

import "errors"

// ErrConfig indicates an invalid analyzer configuration.
var ErrConfig = errors.New("face: invalid config")
