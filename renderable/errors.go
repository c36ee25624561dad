package renderable

import "errors"

// ErrDestroyed is returned by Draw after Destroy.
var ErrDestroyed = errors.New("renderable: destroyed")
