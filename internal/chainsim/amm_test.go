package chainsim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/bramble/internal/account"
	"github.com/eigerco/bramble/internal/exchange"
	"github.com/eigerco/bramble/internal/ledgertime"
)

// deepLiquidity keeps price impact negligible so swap output is
// dominated by the 0.3% fee.
const deepLiquidity = int64(100_000_000_0000000)

func newPool(t *testing.T, clock ledgertime.Clock) (*AMM, *Token, *Token) {
	t.Helper()
	blnd := NewToken(account.Derive("token/blnd"), "BLND")
	usdc := NewToken(account.Derive("token/usdc"), "USDC")
	pool := NewAMM(account.Derive("pool"), blnd, usdc, clock)

	provider := account.Derive("liquidity-provider")
	require.NoError(t, blnd.Mint(provider, deepLiquidity))
	require.NoError(t, usdc.Mint(provider, deepLiquidity))
	require.NoError(t, pool.AddLiquidity(provider, deepLiquidity, deepLiquidity))
	return pool, blnd, usdc
}

func TestAMM_SwapExactIn(t *testing.T) {
	ctx := context.Background()
	trader := account.Derive("trader")

	t.Run("fee band on a deep pool", func(t *testing.T) {
		clock := ledgertime.NewManual(simStart)
		pool, blnd, usdc := newPool(t, clock)

		amountIn := int64(5000_0000000)
		require.NoError(t, blnd.Mint(trader, amountIn))

		out, err := pool.SwapExactIn(ctx, exchange.SwapRequest{
			TokenIn:  blnd.Addr(),
			TokenOut: usdc.Addr(),
			AmountIn: amountIn,
			From:     trader,
			To:       trader,
		})
		require.NoError(t, err)

		// Deep 1:1 liquidity: output is the input minus the fee and a
		// sliver of price impact.
		assert.Greater(t, out, int64(4900_0000000))
		assert.Less(t, out, int64(5000_0000000))
		assert.Equal(t, out, usdc.Balance(trader))
		assert.Zero(t, blnd.Balance(trader))
	})

	t.Run("swaps conserve token supply", func(t *testing.T) {
		clock := ledgertime.NewManual(simStart)
		pool, blnd, usdc := newPool(t, clock)

		blndSupply := blnd.TotalSupply()
		usdcSupply := usdc.TotalSupply()

		require.NoError(t, blnd.Mint(trader, 1000_0000000))
		_, err := pool.SwapExactIn(ctx, exchange.SwapRequest{
			TokenIn:  blnd.Addr(),
			TokenOut: usdc.Addr(),
			AmountIn: 1000_0000000,
			From:     trader,
			To:       trader,
		})
		require.NoError(t, err)

		assert.Equal(t, blndSupply+1000_0000000, blnd.TotalSupply())
		assert.Equal(t, usdcSupply, usdc.TotalSupply())

		// Pool reserves match its token balances.
		reserveA, reserveB := pool.Reserves()
		assert.Equal(t, reserveA, blnd.Balance(pool.Addr()))
		assert.Equal(t, reserveB, usdc.Balance(pool.Addr()))
	})

	t.Run("reverse direction", func(t *testing.T) {
		clock := ledgertime.NewManual(simStart)
		pool, blnd, usdc := newPool(t, clock)

		require.NoError(t, usdc.Mint(trader, 100_0000000))
		out, err := pool.SwapExactIn(ctx, exchange.SwapRequest{
			TokenIn:  usdc.Addr(),
			TokenOut: blnd.Addr(),
			AmountIn: 100_0000000,
			From:     trader,
			To:       trader,
		})
		require.NoError(t, err)
		assert.Greater(t, out, int64(0))
		assert.Equal(t, out, blnd.Balance(trader))
	})

	t.Run("slippage guard", func(t *testing.T) {
		clock := ledgertime.NewManual(simStart)
		pool, blnd, usdc := newPool(t, clock)

		require.NoError(t, blnd.Mint(trader, 5000_0000000))
		_, err := pool.SwapExactIn(ctx, exchange.SwapRequest{
			TokenIn:  blnd.Addr(),
			TokenOut: usdc.Addr(),
			AmountIn: 5000_0000000,
			MinOut:   5000_0000000, // cannot clear the fee
			From:     trader,
			To:       trader,
		})
		assert.ErrorIs(t, err, exchange.ErrSlippage)
		// A failed swap moves nothing.
		assert.Equal(t, int64(5000_0000000), blnd.Balance(trader))
		assert.Zero(t, usdc.Balance(trader))
	})

	t.Run("deadline", func(t *testing.T) {
		clock := ledgertime.NewManual(simStart)
		pool, blnd, usdc := newPool(t, clock)

		require.NoError(t, blnd.Mint(trader, 100))
		clock.Advance(time.Minute)
		_, err := pool.SwapExactIn(ctx, exchange.SwapRequest{
			TokenIn:  blnd.Addr(),
			TokenOut: usdc.Addr(),
			AmountIn: 100,
			From:     trader,
			To:       trader,
			Deadline: simStart.Add(30 * time.Second),
		})
		assert.ErrorIs(t, err, ErrDeadlineExpired)
	})

	t.Run("unknown pair", func(t *testing.T) {
		clock := ledgertime.NewManual(simStart)
		pool, blnd, _ := newPool(t, clock)

		_, err := pool.SwapExactIn(ctx, exchange.SwapRequest{
			TokenIn:  blnd.Addr(),
			TokenOut: account.Derive("token/other"),
			AmountIn: 100,
			From:     trader,
			To:       trader,
		})
		assert.ErrorIs(t, err, ErrUnknownPair)
	})

	t.Run("empty pool", func(t *testing.T) {
		clock := ledgertime.NewManual(simStart)
		blnd := NewToken(account.Derive("token/blnd"), "BLND")
		usdc := NewToken(account.Derive("token/usdc"), "USDC")
		pool := NewAMM(account.Derive("empty-pool"), blnd, usdc, clock)

		require.NoError(t, blnd.Mint(trader, 100))
		_, err := pool.SwapExactIn(ctx, exchange.SwapRequest{
			TokenIn:  blnd.Addr(),
			TokenOut: usdc.Addr(),
			AmountIn: 100,
			From:     trader,
			To:       trader,
		})
		assert.ErrorIs(t, err, ErrNoLiquidity)
	})
}

func TestConstantProductOut(t *testing.T) {
	// With reserves 1000:1000 and 100 in, out = 100*0.997*1000 /
	// (1000 + 100*0.997) rounded down.
	out := constantProductOut(100, 1000, 1000)
	assert.Equal(t, int64(90), out)

	// Tiny input on a deep pool rounds to zero.
	assert.Zero(t, constantProductOut(1, deepLiquidity, 1))

	// Output never reaches the full opposite reserve.
	assert.Less(t, constantProductOut(1<<50, 1000, 1000), int64(1000))
}
