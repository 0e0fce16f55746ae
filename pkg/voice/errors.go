package voice

import "errors"

// ErrConfig indicates an invalid scorer configuration.
var ErrConfig = errors.New("voice: invalid config")
