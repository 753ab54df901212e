package chainsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/bramble/internal/account"
)

func TestToken(t *testing.T) {
	usdc := NewToken(account.Derive("token/usdc"), "USDC")
	alice := account.Derive("alice")
	bob := account.Derive("bob")

	require.NoError(t, usdc.Mint(alice, 1000_0000000))
	assert.Equal(t, int64(1000_0000000), usdc.Balance(alice))
	assert.ErrorIs(t, usdc.Mint(alice, 0), ErrInvalidAmount)

	require.NoError(t, usdc.Transfer(alice, bob, 400_0000000))
	assert.Equal(t, int64(600_0000000), usdc.Balance(alice))
	assert.Equal(t, int64(400_0000000), usdc.Balance(bob))

	assert.ErrorIs(t, usdc.Transfer(alice, bob, 600_0000001), ErrInsufficientFunds)
	assert.ErrorIs(t, usdc.Transfer(alice, bob, -5), ErrInvalidAmount)

	// Transfers conserve supply.
	assert.Equal(t, int64(1000_0000000), usdc.TotalSupply())
	assert.Zero(t, usdc.Balance(account.Derive("stranger")))
}
