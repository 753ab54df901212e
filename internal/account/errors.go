package account

import "errors"

// ErrInvalidAddress is returned when parsing input that is not a
// 32-byte hex encoded address.
var ErrInvalidAddress = errors.New("invalid address")
