package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// Prefix constants for all record kinds held by the ledger store.
const (
	prefixMeta byte = iota + 1
	prefixEpoch
	prefixPlayer
	prefixGame
	prefixSession
	prefixJournal
)

// PrefixToString converts a prefix byte to a string
func PrefixToString(p byte) string {
	switch p {
	case prefixMeta:
		return "meta"
	case prefixEpoch:
		return "epoch"
	case prefixPlayer:
		return "player"
	case prefixGame:
		return "game"
	case prefixSession:
		return "session"
	case prefixJournal:
		return "journal"
	default:
		return "unknown"
	}
}

// makeKey creates a key from a prefix and a record identifier
func makeKey(prefix byte, id []byte) []byte {
	key := make([]byte, 1+len(id))
	key[0] = prefix
	copy(key[1:], id)
	return key
}

// Meta keys hold singleton records.
var (
	keyConfig       = makeKey(prefixMeta, []byte("config"))
	keyCurrentEpoch = makeKey(prefixMeta, []byte("current-epoch"))
	keyJournalHead  = makeKey(prefixMeta, []byte("journal-head"))
	keyCarry        = makeKey(prefixMeta, []byte("carry"))
)

// epochKey encodes the epoch index big endian so iteration follows
// epoch order.
func epochKey(index uint32) []byte {
	id := make([]byte, 4)
	binary.BigEndian.PutUint32(id, index)
	return makeKey(prefixEpoch, id)
}

// journalKey encodes the entry sequence big endian so iteration follows
// journal order.
func journalKey(seq uint64) []byte {
	id := make([]byte, 8)
	binary.BigEndian.PutUint64(id, seq)
	return makeKey(prefixJournal, id)
}

func encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	return data, nil
}

func decode(data []byte, into any) error {
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("unmarshal %T: %w", into, err)
	}
	return nil
}
