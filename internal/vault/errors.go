package vault

import "errors"

// ErrCollection is returned when any stage of yield collection fails.
// The underlying vault error is wrapped alongside it.
var ErrCollection = errors.New("yield collection failed")
