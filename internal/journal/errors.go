package journal

import "errors"

// ErrBrokenChain is returned by Verify when the journal's hash chain
// does not hold.
var ErrBrokenChain = errors.New("journal chain broken")
