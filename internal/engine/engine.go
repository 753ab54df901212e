package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eigerco/bramble/internal/account"
	"github.com/eigerco/bramble/internal/arena"
	"github.com/eigerco/bramble/internal/epoch"
	"github.com/eigerco/bramble/internal/exchange"
	"github.com/eigerco/bramble/internal/journal"
	"github.com/eigerco/bramble/internal/ledgertime"
	"github.com/eigerco/bramble/internal/store"
	"github.com/eigerco/bramble/internal/vault"
)

// Engine is the settlement engine: it keeps the ledger of players,
// factions and game sessions, gates epochs on elapsed time and, on
// each cycle, drains yield, swaps it into the settlement token and
// seals the epoch with the resulting reward pool.
//
// All operations are serialized by a single mutex and commit through
// one store batch, so each is all or nothing: either every record it
// touches becomes visible, or none does.
type Engine struct {
	mu sync.Mutex

	cfg       Config
	clock     ledgertime.Clock
	ledger    *store.Ledger
	vault     vault.Vault
	collector *vault.Collector
	swapper   *exchange.Swapper
	log       zerolog.Logger

	current  epoch.Epoch
	players  map[account.Address]*arena.Player
	games    map[account.Address]arena.Game
	sessions map[arena.SessionID]*arena.GameSession
	head     journal.Head
	carry    int64
}

// Deps are the engine's collaborators. All fields are required.
type Deps struct {
	Ledger *store.Ledger
	Clock  ledgertime.Clock
	Vault  vault.Vault
	Router exchange.Router
	Logger zerolog.Logger
}

// New validates the configuration and either initializes a fresh
// ledger or loads the persisted state, verifying it was created with
// the same identity.
func New(cfg Config, deps Deps) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if deps.Ledger == nil || deps.Clock == nil || deps.Vault == nil || deps.Router == nil {
		return nil, errors.New("ledger, clock, vault and router are all required")
	}
	if cfg.SwapDeadline == 0 {
		cfg.SwapDeadline = DefaultSwapDeadline
	}

	e := &Engine{
		cfg:      cfg,
		clock:    deps.Clock,
		ledger:   deps.Ledger,
		vault:    deps.Vault,
		log:      deps.Logger,
		players:  make(map[account.Address]*arena.Player),
		games:    make(map[account.Address]arena.Game),
		sessions: make(map[arena.SessionID]*arena.GameSession),
	}
	e.collector = vault.NewCollector(deps.Vault, cfg.ReserveIDs, deps.Logger)
	e.swapper = exchange.NewSwapper(deps.Router, exchange.SwapperConfig{
		TokenIn:  cfg.YieldToken,
		TokenOut: cfg.SettlementToken,
		MinOut:   cfg.SwapMinOut,
		Deadline: cfg.SwapDeadline,
	}, deps.Logger)

	if err := e.load(); err != nil {
		return nil, err
	}
	return e, nil
}

// load restores state from the ledger store, or runs genesis on a
// fresh database.
func (e *Engine) load() error {
	rec, err := e.ledger.Config()
	if errors.Is(err, store.ErrNoState) {
		return e.genesis()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if rec != e.cfg.record() {
		return fmt.Errorf("%w: engine was initialized with a different identity", ErrConfigConflict)
	}

	index, err := e.ledger.CurrentEpochIndex()
	if err != nil {
		return fmt.Errorf("load current epoch index: %w", err)
	}
	e.current, err = e.ledger.Epoch(index)
	if err != nil {
		return fmt.Errorf("load epoch %d: %w", index, err)
	}

	players, err := e.ledger.Players()
	if err != nil {
		return fmt.Errorf("load players: %w", err)
	}
	for i := range players {
		p := players[i]
		e.players[p.Addr] = &p
	}

	games, err := e.ledger.Games()
	if err != nil {
		return fmt.Errorf("load games: %w", err)
	}
	for _, g := range games {
		e.games[g.Addr] = g
	}

	sessions, err := e.ledger.Sessions()
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	for i := range sessions {
		s := sessions[i]
		e.sessions[s.ID] = &s
	}

	e.head, err = e.ledger.JournalHead()
	if err != nil {
		return fmt.Errorf("load journal head: %w", err)
	}
	e.carry, err = e.ledger.Carry()
	if err != nil {
		return fmt.Errorf("load carry: %w", err)
	}

	e.log.Info().
		Uint32("epoch", e.current.Index).
		Int("players", len(e.players)).
		Int("games", len(e.games)).
		Int("sessions", len(e.sessions)).
		Uint64("journal_seq", e.head.Seq).
		Msg("state loaded")
	return nil
}

// genesis persists the identity record and opens epoch 0.
func (e *Engine) genesis() error {
	first := epoch.First(e.clock.Now(), e.cfg.EpochDuration)

	batch, err := e.ledger.NewBatch()
	if err != nil {
		return err
	}
	defer batch.Close()

	if err := batch.PutConfig(e.cfg.record()); err != nil {
		return err
	}
	if err := batch.PutEpoch(first); err != nil {
		return err
	}
	if err := batch.PutCurrentEpochIndex(first.Index); err != nil {
		return err
	}
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("commit genesis: %w", err)
	}

	e.current = first
	e.log.Info().
		Time("start", first.Start).
		Dur("duration", first.Duration).
		Msg("ledger initialized")
	return nil
}

// appendEntry builds the journal successor for the current head.
// Callers stage it in the same batch as the state it describes and
// adopt the new head only after commit.
func (e *Engine) appendEntry(kind journal.Kind, payload any, now time.Time) (journal.Entry, error) {
	entry, err := journal.Append(e.head, kind, payload, now)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("append journal entry: %w", err)
	}
	return entry, nil
}

// playerClone returns a mutable copy of the player record, creating a
// fresh one for first-touch addresses.
func (e *Engine) playerClone(addr account.Address) *arena.Player {
	if p, ok := e.players[addr]; ok {
		return p.Clone()
	}
	return arena.NewPlayer(addr)
}

// Close releases the underlying store.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Close()
}
