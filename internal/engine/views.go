package engine

import (
	"fmt"
	"sort"

	"github.com/eigerco/bramble/internal/account"
	"github.com/eigerco/bramble/internal/arena"
	"github.com/eigerco/bramble/internal/epoch"
	"github.com/eigerco/bramble/internal/journal"
	"github.com/eigerco/bramble/internal/store"
)

// Admin returns the configured admin address.
func (e *Engine) Admin() account.Address {
	return e.cfg.Admin
}

// Self returns the engine's own custody address.
func (e *Engine) Self() account.Address {
	return e.cfg.Self
}

// CurrentEpoch returns the open epoch.
func (e *Engine) CurrentEpoch() epoch.Epoch {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// EpochAt returns the epoch with the given index. Sealed epochs are
// immutable, so past indices read straight from the ledger.
func (e *Engine) EpochAt(index uint32) (epoch.Epoch, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index == e.current.Index {
		return e.current, nil
	}
	return e.ledger.Epoch(index)
}

// Player returns the player record for addr.
func (e *Engine) Player(addr account.Address) (arena.Player, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.players[addr]
	if !ok {
		return arena.Player{}, fmt.Errorf("%w: %s", arena.ErrUnknownPlayer, addr.Short())
	}
	return *p.Clone(), nil
}

// Session returns the game session with the given id.
func (e *Engine) Session(id arena.SessionID) (arena.GameSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[id]
	if !ok {
		return arena.GameSession{}, fmt.Errorf("%w: %s", arena.ErrSessionNotFound, id)
	}
	return *s.Clone(), nil
}

// Game returns the registration record for a game address.
func (e *Engine) Game(addr account.Address) (arena.Game, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, ok := e.games[addr]
	if !ok {
		return arena.Game{}, fmt.Errorf("%w: %s", store.ErrGameNotFound, addr.Short())
	}
	return g, nil
}

// Games lists the registered games in registration order.
func (e *Engine) Games() []arena.Game {
	e.mu.Lock()
	defer e.mu.Unlock()

	games := make([]arena.Game, 0, len(e.games))
	for _, g := range e.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool {
		if !games[i].RegisteredAt.Equal(games[j].RegisteredAt) {
			return games[i].RegisteredAt.Before(games[j].RegisteredAt)
		}
		return games[i].Addr.String() < games[j].Addr.String()
	})
	return games
}

// FactionTotals sums deposit balances per faction, derived from the
// player records so the totals can never drift from the ledger.
func (e *Engine) FactionTotals() map[arena.Faction]int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	players := make([]*arena.Player, 0, len(e.players))
	for _, p := range e.players {
		players = append(players, p)
	}
	return arena.Totals(players)
}

// Carry returns the yield collected by failed cycles that awaits the
// next settlement swap.
func (e *Engine) Carry() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.carry
}

// JournalEntries reads up to limit journal entries starting at
// fromSeq. A limit of 0 or less means no limit.
func (e *Engine) JournalEntries(fromSeq uint64, limit int) ([]journal.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.JournalEntries(fromSeq, limit)
}

// VerifyJournal walks the full journal and checks the hash chain from
// genesis to the in-memory head.
func (e *Engine) VerifyJournal() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries, err := e.ledger.JournalEntries(0, 0)
	if err != nil {
		return err
	}
	if err := journal.Verify(journal.Head{}, entries); err != nil {
		return err
	}
	if n := len(entries); n > 0 && entries[n-1].Head() != e.head {
		return fmt.Errorf("%w: stored chain ends at seq %d, head is %d",
			journal.ErrBrokenChain, entries[n-1].Seq, e.head.Seq)
	}
	if len(entries) == 0 && e.head.Seq != 0 {
		return fmt.Errorf("%w: empty journal with head at seq %d",
			journal.ErrBrokenChain, e.head.Seq)
	}
	return nil
}
