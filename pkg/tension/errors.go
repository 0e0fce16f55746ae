package tension

import "errors"

// ErrConfig indicates an invalid scorer configuration.
var ErrConfig = errors.New("tension: invalid config")
