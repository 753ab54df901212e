package exchange

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eigerco/bramble/internal/account"
)

// SwapperConfig fixes the conversion pair and the guard rails applied
// to every settlement swap.
type SwapperConfig struct {
	TokenIn  account.Address
	TokenOut account.Address
	// MinOut is an absolute floor on the settled output, 0 disables it.
	MinOut int64
	// Deadline bounds how long a swap may stay pending at the router.
	Deadline time.Duration
}

// Swapper converts collected yield into the settlement token through a
// Router.
type Swapper struct {
	router Router
	cfg    SwapperConfig
	log    zerolog.Logger
}

func NewSwapper(router Router, cfg SwapperConfig, logger zerolog.Logger) *Swapper {
	return &Swapper{
		router: router,
		cfg:    cfg,
		log:    logger,
	}
}

// Swap converts amountIn of the yield token, paying proceeds to
// recipient, and returns the settled amount. A zero amountIn settles to
// zero without touching the router.
func (s *Swapper) Swap(ctx context.Context, amountIn int64, recipient account.Address, now time.Time) (int64, error) {
	if amountIn == 0 {
		return 0, nil
	}
	if amountIn < 0 {
		return 0, fmt.Errorf("%w: negative input %d", ErrSwap, amountIn)
	}

	req := SwapRequest{
		TokenIn:  s.cfg.TokenIn,
		TokenOut: s.cfg.TokenOut,
		AmountIn: amountIn,
		MinOut:   s.cfg.MinOut,
		From:     recipient,
		To:       recipient,
		Deadline: now.Add(s.cfg.Deadline),
	}

	out, err := s.router.SwapExactIn(ctx, req)
	if err != nil {
		if errors.Is(err, ErrSlippage) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", ErrSwap, err)
	}
	if out < 0 {
		return 0, fmt.Errorf("%w: router reported negative output %d", ErrSwap, out)
	}
	// The router already enforces MinOut; check again so a misbehaving
	// implementation cannot settle below the floor.
	if out < s.cfg.MinOut {
		return 0, fmt.Errorf("%w: settled %d below floor %d", ErrSlippage, out, s.cfg.MinOut)
	}

	s.log.Debug().
		Int64("amount_in", amountIn).
		Int64("amount_out", out).
		Msg("yield swapped")
	return out, nil
}
