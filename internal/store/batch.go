package store

import (
	"encoding/binary"
	"fmt"

	"github.com/eigerco/bramble/internal/arena"
	"github.com/eigerco/bramble/internal/epoch"
	"github.com/eigerco/bramble/internal/journal"
	"github.com/eigerco/bramble/pkg/db"
)

// Batch stages the records touched by one engine operation and commits
// them atomically. Nothing is visible to readers until Commit.
type Batch struct {
	batch db.Batch
}

// NewBatch creates a staging batch for atomic operations.
func (l *Ledger) NewBatch() (*Batch, error) {
	if l.closed.Load() {
		return nil, ErrLedgerClosed
	}
	return &Batch{batch: l.db.NewBatch()}, nil
}

func (b *Batch) PutConfig(rec ConfigRecord) error {
	data, err := encode(rec)
	if err != nil {
		return err
	}
	return b.batch.Put(keyConfig, data)
}

func (b *Batch) PutEpoch(e epoch.Epoch) error {
	data, err := encode(e)
	if err != nil {
		return err
	}
	return b.batch.Put(epochKey(e.Index), data)
}

func (b *Batch) PutCurrentEpochIndex(index uint32) error {
	data := make([]byte, 4)
	binary.BigEndian.PutUint32(data, index)
	return b.batch.Put(keyCurrentEpoch, data)
}

func (b *Batch) PutPlayer(p arena.Player) error {
	data, err := encode(p)
	if err != nil {
		return err
	}
	return b.batch.Put(makeKey(prefixPlayer, p.Addr[:]), data)
}

func (b *Batch) PutGame(g arena.Game) error {
	data, err := encode(g)
	if err != nil {
		return err
	}
	return b.batch.Put(makeKey(prefixGame, g.Addr[:]), data)
}

func (b *Batch) PutSession(s arena.GameSession) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	return b.batch.Put(makeKey(prefixSession, s.ID[:]), data)
}

// PutJournal stages a journal entry together with the head record, so
// the head can never drift from the chain tip.
func (b *Batch) PutJournal(e journal.Entry) error {
	data, err := encode(e)
	if err != nil {
		return err
	}
	if err := b.batch.Put(journalKey(e.Seq), data); err != nil {
		return err
	}
	head, err := encode(e.Head())
	if err != nil {
		return err
	}
	return b.batch.Put(keyJournalHead, head)
}

func (b *Batch) PutCarry(carry int64) error {
	if carry < 0 {
		return fmt.Errorf("carry must not be negative, got %d", carry)
	}
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, uint64(carry))
	return b.batch.Put(keyCarry, data)
}

// Commit durably applies every staged record.
func (b *Batch) Commit() error {
	if err := b.batch.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

func (b *Batch) Close() error {
	return b.batch.Close()
}
