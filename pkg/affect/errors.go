package affect

import "errors"

// ErrConfig indicates an invalid scorer configuration.
var ErrConfig = errors.New("affect: invalid config")
