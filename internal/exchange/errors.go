package exchange

import "errors"

var (
	// ErrSwap is returned when a settlement swap fails for any reason
	// other than slippage.
	ErrSwap = errors.New("swap failed")

	// ErrSlippage is returned when a swap cannot settle at or above the
	// required minimum output.
	ErrSlippage = errors.New("swap slippage exceeded")
)
