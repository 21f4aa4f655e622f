package clipboard

import "errors"

// ErrUnsupported reports that the platform has no usable clipboard.
var ErrUnsupported = errors.New("clipboard is not supported on this system")
