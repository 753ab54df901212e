package chainsim

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/eigerco/bramble/internal/account"
	"github.com/eigerco/bramble/internal/exchange"
	"github.com/eigerco/bramble/internal/ledgertime"
)

// swapFeeBps is the pool fee in basis points, 0.3% like the usual
// constant product venues.
const swapFeeBps = 30

const feeDenominator = 10_000

// AMM is a two-token constant product pool. It holds real balances on
// its tokens, so swaps conserve supply, and implements
// exchange.Router for the pair it serves.
type AMM struct {
	addr  account.Address
	clock ledgertime.Clock
	a, b  *Token

	mu       sync.Mutex
	reserveA int64
	reserveB int64
}

func NewAMM(addr account.Address, a, b *Token, clock ledgertime.Clock) *AMM {
	return &AMM{
		addr:  addr,
		clock: clock,
		a:     a,
		b:     b,
	}
}

func (m *AMM) Addr() account.Address {
	return m.addr
}

// AddLiquidity pulls both tokens from provider into the pool.
func (m *AMM) AddLiquidity(provider account.Address, amountA, amountB int64) error {
	if amountA <= 0 || amountB <= 0 {
		return ErrInvalidAmount
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.a.Transfer(provider, m.addr, amountA); err != nil {
		return fmt.Errorf("pull %s: %w", m.a.Symbol(), err)
	}
	if err := m.b.Transfer(provider, m.addr, amountB); err != nil {
		return fmt.Errorf("pull %s: %w", m.b.Symbol(), err)
	}
	m.reserveA += amountA
	m.reserveB += amountB
	return nil
}

// Reserves returns the current pool depths in pair order.
func (m *AMM) Reserves() (int64, int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reserveA, m.reserveB
}

// SwapExactIn swaps req.AmountIn of one pool token for the other,
// observing the deadline and minimum output.
func (m *AMM) SwapExactIn(_ context.Context, req exchange.SwapRequest) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !req.Deadline.IsZero() && m.clock.Now().After(req.Deadline) {
		return 0, ErrDeadlineExpired
	}
	if req.AmountIn <= 0 {
		return 0, ErrInvalidAmount
	}

	var tokenIn, tokenOut *Token
	var reserveIn, reserveOut *int64
	switch {
	case req.TokenIn == m.a.Addr() && req.TokenOut == m.b.Addr():
		tokenIn, tokenOut = m.a, m.b
		reserveIn, reserveOut = &m.reserveA, &m.reserveB
	case req.TokenIn == m.b.Addr() && req.TokenOut == m.a.Addr():
		tokenIn, tokenOut = m.b, m.a
		reserveIn, reserveOut = &m.reserveB, &m.reserveA
	default:
		return 0, ErrUnknownPair
	}
	if *reserveIn == 0 || *reserveOut == 0 {
		return 0, ErrNoLiquidity
	}

	out := constantProductOut(req.AmountIn, *reserveIn, *reserveOut)
	if out < req.MinOut {
		return 0, fmt.Errorf("%w: output %d below minimum %d", exchange.ErrSlippage, out, req.MinOut)
	}

	if err := tokenIn.Transfer(req.From, m.addr, req.AmountIn); err != nil {
		return 0, fmt.Errorf("pull %s: %w", tokenIn.Symbol(), err)
	}
	if out > 0 {
		if err := tokenOut.Transfer(m.addr, req.To, out); err != nil {
			// Refund the pulled input, the pool must not keep it on a
			// failed payout.
			_ = tokenIn.Transfer(m.addr, req.From, req.AmountIn)
			return 0, fmt.Errorf("pay %s: %w", tokenOut.Symbol(), err)
		}
	}
	*reserveIn += req.AmountIn
	*reserveOut -= out
	return out, nil
}

// constantProductOut prices an exact-in swap against x*y=k reserves
// after the fee. Intermediate products exceed int64 for deep pools, so
// the arithmetic runs on big.Int.
func constantProductOut(amountIn, reserveIn, reserveOut int64) int64 {
	inAfterFee := new(big.Int).Mul(
		big.NewInt(amountIn),
		big.NewInt(feeDenominator-swapFeeBps),
	)
	numerator := new(big.Int).Mul(inAfterFee, big.NewInt(reserveOut))
	denominator := new(big.Int).Mul(big.NewInt(reserveIn), big.NewInt(feeDenominator))
	denominator.Add(denominator, inAfterFee)
	return numerator.Div(numerator, denominator).Int64()
}
