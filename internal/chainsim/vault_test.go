package chainsim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/bramble/internal/account"
	"github.com/eigerco/bramble/internal/ledgertime"
)

var simStart = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func newFundedVault(t *testing.T, clock ledgertime.Clock, funding int64) (*Vault, *Token, account.Address) {
	t.Helper()
	blnd := NewToken(account.Derive("token/blnd"), "BLND")
	admin := account.Derive("engine")
	vault := NewVault(account.Derive("vault"), blnd, admin, clock)
	require.NoError(t, blnd.Mint(vault.Addr(), funding))
	return vault, blnd, admin
}

func TestVault_ClaimEmissions(t *testing.T) {
	ctx := context.Background()

	t.Run("one shot grants per reserve", func(t *testing.T) {
		clock := ledgertime.NewManual(simStart)
		vault, blnd, admin := newFundedVault(t, clock, 10_000_0000000)

		vault.SetEmissions(1, 2000_0000000)
		vault.SetEmissions(3, 1500_0000000)
		vault.SetEmissions(5, 1000_0000000)

		claimed, err := vault.ClaimEmissions(ctx, []uint32{1, 3, 5}, admin)
		require.NoError(t, err)
		assert.Equal(t, int64(4500_0000000), claimed)
		assert.Equal(t, int64(4500_0000000), blnd.Balance(admin))

		// Claiming again immediately yields nothing.
		claimed, err = vault.ClaimEmissions(ctx, []uint32{1, 3, 5}, admin)
		require.NoError(t, err)
		assert.Zero(t, claimed)
	})

	t.Run("unlisted reserves stay claimable", func(t *testing.T) {
		clock := ledgertime.NewManual(simStart)
		vault, _, admin := newFundedVault(t, clock, 10_000_0000000)

		vault.SetEmissions(1, 100)
		vault.SetEmissions(2, 200)

		claimed, err := vault.ClaimEmissions(ctx, []uint32{1}, admin)
		require.NoError(t, err)
		assert.Equal(t, int64(100), claimed)

		claimed, err = vault.ClaimEmissions(ctx, []uint32{2}, admin)
		require.NoError(t, err)
		assert.Equal(t, int64(200), claimed)
	})

	t.Run("duplicate reserve ids counted once", func(t *testing.T) {
		clock := ledgertime.NewManual(simStart)
		vault, _, admin := newFundedVault(t, clock, 10_000_0000000)

		vault.SetEmissions(7, 300)

		claimed, err := vault.ClaimEmissions(ctx, []uint32{7, 7, 7}, admin)
		require.NoError(t, err)
		assert.Equal(t, int64(300), claimed)
	})

	t.Run("rate accrual is additive", func(t *testing.T) {
		clock := ledgertime.NewManual(simStart)
		split, _, admin := newFundedVault(t, clock, 10_000_0000000)
		whole, _, wholeAdmin := newFundedVault(t, clock, 10_000_0000000)

		split.SetEmissionRate(1, 3_0000000)
		whole.SetEmissionRate(1, 3_0000000)

		clock.Advance(100 * time.Second)
		first, err := split.ClaimEmissions(ctx, []uint32{1}, admin)
		require.NoError(t, err)
		assert.Equal(t, int64(300_0000000), first)

		clock.Advance(150 * time.Second)
		second, err := split.ClaimEmissions(ctx, []uint32{1}, admin)
		require.NoError(t, err)

		all, err := whole.ClaimEmissions(ctx, []uint32{1}, wholeAdmin)
		require.NoError(t, err)
		assert.Equal(t, all, first+second, "split claims must equal one combined claim")
		assert.Equal(t, int64(750_0000000), all)
	})

	t.Run("underfunded vault fails the claim", func(t *testing.T) {
		clock := ledgertime.NewManual(simStart)
		vault, _, admin := newFundedVault(t, clock, 10)

		vault.SetEmissions(1, 100)

		_, err := vault.ClaimEmissions(ctx, []uint32{1}, admin)
		assert.ErrorIs(t, err, ErrInsufficientFunds)

		// The failed claim must not burn the entitlement.
		claimed, err := vault.ClaimEmissions(ctx, []uint32{1}, admin)
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		assert.Zero(t, claimed)
	})
}

func TestVault_AdminWithdraw(t *testing.T) {
	ctx := context.Background()
	clock := ledgertime.NewManual(simStart)
	vault, blnd, admin := newFundedVault(t, clock, 5000_0000000)

	vault.SetAdminBalance(2000_0000000)

	t.Run("only the admin receives", func(t *testing.T) {
		_, err := vault.AdminWithdraw(ctx, account.Derive("mallory"))
		assert.ErrorIs(t, err, ErrNotVaultAdmin)
	})

	t.Run("drains once", func(t *testing.T) {
		got, err := vault.AdminWithdraw(ctx, admin)
		require.NoError(t, err)
		assert.Equal(t, int64(2000_0000000), got)
		assert.Equal(t, int64(2000_0000000), blnd.Balance(admin))

		got, err = vault.AdminWithdraw(ctx, admin)
		require.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("admin can be rotated", func(t *testing.T) {
		next := account.Derive("next-admin")
		vault.SetAdmin(next)
		vault.SetAdminBalance(30)

		_, err := vault.AdminWithdraw(ctx, admin)
		assert.ErrorIs(t, err, ErrNotVaultAdmin)

		got, err := vault.AdminWithdraw(ctx, next)
		require.NoError(t, err)
		assert.Equal(t, int64(30), got)
	})
}
