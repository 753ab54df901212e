package vault

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/bramble/internal/account"
)

type stubVault struct {
	claimAmount    int64
	claimErr       error
	withdrawAmount int64
	withdrawErr    error

	claimedReserves []uint32
	claimRecipient  account.Address
}

func (s *stubVault) ClaimEmissions(_ context.Context, reserveIDs []uint32, recipient account.Address) (int64, error) {
	s.claimedReserves = reserveIDs
	s.claimRecipient = recipient
	return s.claimAmount, s.claimErr
}

func (s *stubVault) AdminWithdraw(_ context.Context, _ account.Address) (int64, error) {
	return s.withdrawAmount, s.withdrawErr
}

func TestCollector_Collect(t *testing.T) {
	recipient := account.Derive("engine")
	reserves := []uint32{1, 3, 5}

	t.Run("sums emissions and admin balance", func(t *testing.T) {
		stub := &stubVault{claimAmount: 3000_0000000, withdrawAmount: 2000_0000000}
		c := NewCollector(stub, reserves, zerolog.Nop())

		total, err := c.Collect(context.Background(), recipient)
		require.NoError(t, err)
		assert.Equal(t, int64(5000_0000000), total)
		assert.Equal(t, reserves, stub.claimedReserves)
		assert.Equal(t, recipient, stub.claimRecipient)
	})

	t.Run("zero yield is valid", func(t *testing.T) {
		c := NewCollector(&stubVault{}, reserves, zerolog.Nop())

		total, err := c.Collect(context.Background(), recipient)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("claim failure aborts", func(t *testing.T) {
		boom := errors.New("vault unreachable")
		c := NewCollector(&stubVault{claimErr: boom}, reserves, zerolog.Nop())

		_, err := c.Collect(context.Background(), recipient)
		assert.ErrorIs(t, err, ErrCollection)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("withdraw failure aborts", func(t *testing.T) {
		boom := errors.New("withdraw rejected")
		c := NewCollector(&stubVault{claimAmount: 10, withdrawErr: boom}, reserves, zerolog.Nop())

		_, err := c.Collect(context.Background(), recipient)
		assert.ErrorIs(t, err, ErrCollection)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("negative yield rejected", func(t *testing.T) {
		c := NewCollector(&stubVault{claimAmount: -1}, reserves, zerolog.Nop())

		_, err := c.Collect(context.Background(), recipient)
		assert.ErrorIs(t, err, ErrCollection)
	})

	t.Run("overflow rejected", func(t *testing.T) {
		c := NewCollector(&stubVault{claimAmount: math.MaxInt64, withdrawAmount: 1}, reserves, zerolog.Nop())

		_, err := c.Collect(context.Background(), recipient)
		assert.ErrorIs(t, err, ErrCollection)
	})
}
