package safemath

import (
	"errors"
	"math"
	"math/bits"
)

var ErrOverflow = errors.New("number overflow")

// AddAmount adds two token amounts. The second return is false when
// either operand is negative or the sum exceeds int64; amounts on the
// ledger are never negative, so a negative operand is itself a fault.
func AddAmount(a, b int64) (int64, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	v, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 || v > math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}
