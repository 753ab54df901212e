package testutils

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eigerco/bramble/internal/account"
	"github.com/eigerco/bramble/internal/arena"
)

func RandomAddress(t *testing.T) account.Address {
	b := make([]byte, account.AddressSize)
	_, err := rand.Read(b)
	require.NoError(t, err)
	addr, err := account.AddressFromBytes(b)
	require.NoError(t, err)
	return addr
}

func RandomSessionID(t *testing.T) arena.SessionID {
	b := make([]byte, arena.SessionIDSize)
	_, err := rand.Read(b)
	require.NoError(t, err)
	id, err := arena.SessionIDFromBytes(b)
	require.NoError(t, err)
	return id
}

func RandomBytes(t *testing.T, n int) []byte {
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}
