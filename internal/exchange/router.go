package exchange

import (
	"context"
	"time"

	"github.com/eigerco/bramble/internal/account"
)

// SwapRequest describes an exact-in swap routed through an external
// venue.
type SwapRequest struct {
	TokenIn  account.Address
	TokenOut account.Address
	AmountIn int64
	// MinOut is the minimum acceptable output; the router fails the
	// swap with ErrSlippage rather than settle below it.
	MinOut int64
	From   account.Address
	To     account.Address
	// Deadline after which the router must refuse to execute. Zero
	// means no deadline.
	Deadline time.Time
}

// Router executes swaps against a liquidity venue. Implementations
// must return an error wrapping ErrSlippage when MinOut cannot be met.
type Router interface {
	SwapExactIn(ctx context.Context, req SwapRequest) (int64, error)
}
