package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/eigerco/bramble/internal/account"
	"github.com/eigerco/bramble/internal/arena"
	"github.com/eigerco/bramble/internal/epoch"
	"github.com/eigerco/bramble/internal/journal"
	"github.com/eigerco/bramble/pkg/db"
	"github.com/eigerco/bramble/pkg/db/pebble"
)

// Ledger persists the settlement engine's state using a key-value
// store. All mutations go through a Batch so each engine operation
// commits atomically.
type Ledger struct {
	db     db.KVStore
	closed atomic.Bool
}

// NewLedger creates a ledger store using KVStore
func NewLedger(db db.KVStore) *Ledger {
	return &Ledger{db: db}
}

// Config retrieves the persisted engine configuration, ErrNoState on a
// fresh database.
func (l *Ledger) Config() (ConfigRecord, error) {
	if l.closed.Load() {
		return ConfigRecord{}, ErrLedgerClosed
	}

	data, err := l.db.Get(keyConfig)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return ConfigRecord{}, ErrNoState
		}
		return ConfigRecord{}, fmt.Errorf("get config: %w", err)
	}

	var rec ConfigRecord
	if err := decode(data, &rec); err != nil {
		return ConfigRecord{}, err
	}
	return rec, nil
}

// CurrentEpochIndex retrieves the index of the open epoch.
func (l *Ledger) CurrentEpochIndex() (uint32, error) {
	if l.closed.Load() {
		return 0, ErrLedgerClosed
	}

	data, err := l.db.Get(keyCurrentEpoch)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return 0, ErrNoState
		}
		return 0, fmt.Errorf("get current epoch: %w", err)
	}
	if len(data) != 4 {
		return 0, fmt.Errorf("current epoch record has %d bytes, want 4", len(data))
	}
	return binary.BigEndian.Uint32(data), nil
}

// Epoch retrieves an epoch by index.
func (l *Ledger) Epoch(index uint32) (epoch.Epoch, error) {
	if l.closed.Load() {
		return epoch.Epoch{}, ErrLedgerClosed
	}

	data, err := l.db.Get(epochKey(index))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return epoch.Epoch{}, epoch.ErrNotFound
		}
		return epoch.Epoch{}, fmt.Errorf("get epoch %d: %w", index, err)
	}

	var e epoch.Epoch
	if err := decode(data, &e); err != nil {
		return epoch.Epoch{}, err
	}
	return e, nil
}

// Player retrieves a player by address.
func (l *Ledger) Player(addr account.Address) (arena.Player, error) {
	if l.closed.Load() {
		return arena.Player{}, ErrLedgerClosed
	}

	data, err := l.db.Get(makeKey(prefixPlayer, addr[:]))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return arena.Player{}, arena.ErrUnknownPlayer
		}
		return arena.Player{}, fmt.Errorf("get player: %w", err)
	}

	var p arena.Player
	if err := decode(data, &p); err != nil {
		return arena.Player{}, err
	}
	return p, nil
}

// Players retrieves every player record.
func (l *Ledger) Players() ([]arena.Player, error) {
	if l.closed.Load() {
		return nil, ErrLedgerClosed
	}

	var players []arena.Player
	err := l.scan(prefixPlayer, func(_, value []byte) error {
		var p arena.Player
		if err := decode(value, &p); err != nil {
			return err
		}
		players = append(players, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return players, nil
}

// Game retrieves a registered game by address.
func (l *Ledger) Game(addr account.Address) (arena.Game, error) {
	if l.closed.Load() {
		return arena.Game{}, ErrLedgerClosed
	}

	data, err := l.db.Get(makeKey(prefixGame, addr[:]))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return arena.Game{}, ErrGameNotFound
		}
		return arena.Game{}, fmt.Errorf("get game: %w", err)
	}

	var g arena.Game
	if err := decode(data, &g); err != nil {
		return arena.Game{}, err
	}
	return g, nil
}

// Games retrieves every registered game.
func (l *Ledger) Games() ([]arena.Game, error) {
	if l.closed.Load() {
		return nil, ErrLedgerClosed
	}

	var games []arena.Game
	err := l.scan(prefixGame, func(_, value []byte) error {
		var g arena.Game
		if err := decode(value, &g); err != nil {
			return err
		}
		games = append(games, g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return games, nil
}

// Session retrieves a game session by id.
func (l *Ledger) Session(id arena.SessionID) (arena.GameSession, error) {
	if l.closed.Load() {
		return arena.GameSession{}, ErrLedgerClosed
	}

	data, err := l.db.Get(makeKey(prefixSession, id[:]))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return arena.GameSession{}, arena.ErrSessionNotFound
		}
		return arena.GameSession{}, fmt.Errorf("get session: %w", err)
	}

	var s arena.GameSession
	if err := decode(data, &s); err != nil {
		return arena.GameSession{}, err
	}
	return s, nil
}

// Sessions retrieves every game session.
func (l *Ledger) Sessions() ([]arena.GameSession, error) {
	if l.closed.Load() {
		return nil, ErrLedgerClosed
	}

	var sessions []arena.GameSession
	err := l.scan(prefixSession, func(_, value []byte) error {
		var s arena.GameSession
		if err := decode(value, &s); err != nil {
			return err
		}
		sessions = append(sessions, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// JournalHead retrieves the chain head, the zero head on a fresh
// database.
func (l *Ledger) JournalHead() (journal.Head, error) {
	if l.closed.Load() {
		return journal.Head{}, ErrLedgerClosed
	}

	data, err := l.db.Get(keyJournalHead)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return journal.Head{}, nil
		}
		return journal.Head{}, fmt.Errorf("get journal head: %w", err)
	}

	var h journal.Head
	if err := decode(data, &h); err != nil {
		return journal.Head{}, err
	}
	return h, nil
}

// JournalEntries retrieves up to limit entries starting at fromSeq, in
// sequence order. A limit of 0 or less means no limit.
func (l *Ledger) JournalEntries(fromSeq uint64, limit int) ([]journal.Entry, error) {
	if l.closed.Load() {
		return nil, ErrLedgerClosed
	}
	if fromSeq == 0 {
		fromSeq = 1
	}

	iter, err := l.db.NewIterator(journalKey(fromSeq), makeKey(prefixJournal+1, nil))
	if err != nil {
		return nil, fmt.Errorf("create iterator: %w", err)
	}
	defer iter.Close()

	var entries []journal.Entry
	for iter.Next() {
		if limit > 0 && len(entries) == limit {
			break
		}
		value, err := iter.Value()
		if err != nil {
			return nil, fmt.Errorf("read journal entry: %w", err)
		}
		var e journal.Entry
		if err := decode(value, &e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Carry retrieves the yield carried over from failed settlement swaps,
// zero on a fresh database.
func (l *Ledger) Carry() (int64, error) {
	if l.closed.Load() {
		return 0, ErrLedgerClosed
	}

	data, err := l.db.Get(keyCarry)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("get carry: %w", err)
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("carry record has %d bytes, want 8", len(data))
	}
	return int64(binary.BigEndian.Uint64(data)), nil
}

// scan walks every record under prefix.
func (l *Ledger) scan(prefix byte, fn func(key, value []byte) error) error {
	iter, err := l.db.NewIterator([]byte{prefix}, []byte{prefix + 1})
	if err != nil {
		return fmt.Errorf("create iterator: %w", err)
	}
	defer iter.Close()

	for iter.Next() {
		value, err := iter.Value()
		if err != nil {
			return fmt.Errorf("read %s record: %w", PrefixToString(prefix), err)
		}
		if err := fn(iter.Key(), value); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the ledger store
func (l *Ledger) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	return l.db.Close()
}
