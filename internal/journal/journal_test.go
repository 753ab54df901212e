package journal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/bramble/internal/account"
)

var entryTime = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func buildChain(t *testing.T, n int) []Entry {
	t.Helper()
	var (
		head    Head
		entries []Entry
	)
	for i := 0; i < n; i++ {
		e, err := Append(head, KindDeposit, DepositMade{
			Player:  account.Derive("alice"),
			Amount:  int64(i + 1),
			Balance: int64((i + 1) * (i + 2) / 2),
		}, entryTime.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		entries = append(entries, e)
		head = e.Head()
	}
	return entries
}

func TestAppend(t *testing.T) {
	entries := buildChain(t, 3)

	assert.Equal(t, uint64(1), entries[0].Seq)
	assert.Equal(t, Digest{}, entries[0].Parent, "first entry links to the zero digest")

	for i := 1; i < len(entries); i++ {
		assert.Equal(t, entries[i-1].Seq+1, entries[i].Seq)
		assert.Equal(t, entries[i-1].Digest, entries[i].Parent)
	}

	for _, e := range entries {
		assert.Equal(t, e.ComputeDigest(), e.Digest)
	}
}

func TestVerify(t *testing.T) {
	t.Run("intact chain", func(t *testing.T) {
		entries := buildChain(t, 5)
		assert.NoError(t, Verify(Head{}, entries))
	})

	t.Run("empty chain", func(t *testing.T) {
		assert.NoError(t, Verify(Head{}, nil))
	})

	t.Run("from a mid chain head", func(t *testing.T) {
		entries := buildChain(t, 5)
		assert.NoError(t, Verify(entries[1].Head(), entries[2:]))
	})

	t.Run("tampered payload", func(t *testing.T) {
		entries := buildChain(t, 3)
		entries[1].Payload = json.RawMessage(`{"player":"0x00","amount":9999999,"balance":9999999}`)
		assert.ErrorIs(t, Verify(Head{}, entries), ErrBrokenChain)
	})

	t.Run("tampered digest breaks the link", func(t *testing.T) {
		entries := buildChain(t, 3)
		// Recompute the digest after tampering; the next entry's parent
		// no longer matches.
		entries[1].Payload = json.RawMessage(`{}`)
		entries[1].Digest = entries[1].ComputeDigest()
		assert.ErrorIs(t, Verify(Head{}, entries), ErrBrokenChain)
	})

	t.Run("sequence gap", func(t *testing.T) {
		entries := buildChain(t, 3)
		assert.ErrorIs(t, Verify(Head{}, append(entries[:1], entries[2])), ErrBrokenChain)
	})

	t.Run("dropped first entry", func(t *testing.T) {
		entries := buildChain(t, 3)
		assert.ErrorIs(t, Verify(Head{}, entries[1:]), ErrBrokenChain)
	})
}

func TestEntry_JSON(t *testing.T) {
	entries := buildChain(t, 1)

	raw, err := json.Marshal(entries[0])
	require.NoError(t, err)

	var back Entry
	require.NoError(t, json.Unmarshal(raw, &back))

	assert.Equal(t, entries[0].Seq, back.Seq)
	assert.Equal(t, entries[0].Kind, back.Kind)
	assert.Equal(t, entries[0].Digest, back.Digest)
	assert.Equal(t, entries[0].Parent, back.Parent)
	assert.True(t, entries[0].Time.Equal(back.Time))
	assert.Equal(t, back.ComputeDigest(), back.Digest, "digest must survive a round trip")
}
