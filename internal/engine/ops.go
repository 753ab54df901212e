package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eigerco/bramble/internal/account"
	"github.com/eigerco/bramble/internal/arena"
	"github.com/eigerco/bramble/internal/epoch"
	"github.com/eigerco/bramble/internal/journal"
	"github.com/eigerco/bramble/internal/safemath"
	"github.com/eigerco/bramble/internal/vault"
)

// AddGame registers a game contract, authorizing it to open and
// resolve sessions. Only the admin may register, and a game address
// can be registered once.
func (e *Engine) AddGame(caller, game account.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.cfg.Admin {
		return ErrUnauthorized
	}
	if _, ok := e.games[game]; ok {
		return fmt.Errorf("%w: %s", arena.ErrGameExists, game.Short())
	}

	now := e.clock.Now()
	rec := arena.Game{Addr: game, RegisteredAt: now}
	entry, err := e.appendEntry(journal.KindGameRegistered, journal.GameRegistered{Game: game}, now)
	if err != nil {
		return err
	}

	batch, err := e.ledger.NewBatch()
	if err != nil {
		return err
	}
	defer batch.Close()
	if err := batch.PutGame(rec); err != nil {
		return err
	}
	if err := batch.PutJournal(entry); err != nil {
		return err
	}
	if err := batch.Commit(); err != nil {
		return err
	}

	e.games[game] = rec
	e.head = entry.Head()
	e.log.Info().Str("game", game.String()).Msg("game registered")
	return nil
}

// Deposit credits amount to the player's balance, creating the player
// record on first touch. Deposits are permitted regardless of epoch
// state and persist across epochs.
func (e *Engine) Deposit(player account.Address, amount int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.playerClone(player)
	if err := p.Credit(amount); err != nil {
		return err
	}

	now := e.clock.Now()
	entry, err := e.appendEntry(journal.KindDeposit, journal.DepositMade{
		Player:  player,
		Amount:  amount,
		Balance: p.Balance,
	}, now)
	if err != nil {
		return err
	}

	batch, err := e.ledger.NewBatch()
	if err != nil {
		return err
	}
	defer batch.Close()
	if err := batch.PutPlayer(*p); err != nil {
		return err
	}
	if err := batch.PutJournal(entry); err != nil {
		return err
	}
	if err := batch.Commit(); err != nil {
		return err
	}

	e.players[player] = p
	e.head = entry.Head()
	e.log.Info().
		Str("player", player.Short()).
		Int64("amount", amount).
		Int64("balance", p.Balance).
		Msg("deposit recorded")
	return nil
}

// SelectFaction sets or switches the player's faction. The choice is
// refused while the player is party to an unresolved session.
func (e *Engine) SelectFaction(player account.Address, faction arena.Faction) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.playerClone(player)
	if err := p.ChooseFaction(faction); err != nil {
		return err
	}

	now := e.clock.Now()
	entry, err := e.appendEntry(journal.KindFactionSelected, journal.FactionSelected{
		Player:  player,
		Faction: faction,
	}, now)
	if err != nil {
		return err
	}

	batch, err := e.ledger.NewBatch()
	if err != nil {
		return err
	}
	defer batch.Close()
	if err := batch.PutPlayer(*p); err != nil {
		return err
	}
	if err := batch.PutJournal(entry); err != nil {
		return err
	}
	if err := batch.Commit(); err != nil {
		return err
	}

	e.players[player] = p
	e.head = entry.Head()
	e.log.Info().
		Str("player", player.Short()).
		Stringer("faction", faction).
		Msg("faction selected")
	return nil
}

// StartGame opens a wagered session between two players on behalf of a
// registered game. Both players must have selected a faction and hold
// balances covering their wagers; their factions stay locked until the
// session resolves. Wagers are bookkeeping, no funds move.
func (e *Engine) StartGame(game account.Address, sessionID arena.SessionID, playerA, playerB account.Address, wagerA, wagerB int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.games[game]; !ok {
		return fmt.Errorf("%w: %s", arena.ErrUnauthorizedGame, game.Short())
	}
	if _, ok := e.sessions[sessionID]; ok {
		return fmt.Errorf("%w: %s", arena.ErrSessionExists, sessionID)
	}

	a := e.playerClone(playerA)
	b := a
	if playerB != playerA {
		b = e.playerClone(playerB)
	}
	session, err := arena.StartSession(sessionID, game, e.current.Index, a, b, wagerA, wagerB)
	if err != nil {
		return err
	}

	now := e.clock.Now()
	entry, err := e.appendEntry(journal.KindSessionStarted, journal.SessionStarted{
		Session: sessionID,
		Game:    game,
		PlayerA: playerA,
		PlayerB: playerB,
		WagerA:  wagerA,
		WagerB:  wagerB,
		Epoch:   session.Epoch,
	}, now)
	if err != nil {
		return err
	}

	batch, err := e.ledger.NewBatch()
	if err != nil {
		return err
	}
	defer batch.Close()
	if err := batch.PutSession(session); err != nil {
		return err
	}
	if err := batch.PutPlayer(*a); err != nil {
		return err
	}
	if err := batch.PutPlayer(*b); err != nil {
		return err
	}
	if err := batch.PutJournal(entry); err != nil {
		return err
	}
	if err := batch.Commit(); err != nil {
		return err
	}

	e.players[playerA] = a
	e.players[playerB] = b
	e.sessions[sessionID] = &session
	e.head = entry.Head()
	e.log.Info().
		Stringer("session", sessionID).
		Str("game", game.Short()).
		Str("player_a", playerA.Short()).
		Str("player_b", playerB.Short()).
		Int64("wager_a", wagerA).
		Int64("wager_b", wagerB).
		Msg("session started")
	return nil
}

// ResolveGame settles a session in favour of the winning faction and
// releases both players' faction locks. Only the game that opened the
// session may resolve it. No funds move here; the resolved record
// carries everything a payout computation needs.
func (e *Engine) ResolveGame(game account.Address, sessionID arena.SessionID, winner arena.Faction) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	stored, ok := e.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: %s", arena.ErrSessionNotFound, sessionID)
	}
	if stored.Game != game {
		return fmt.Errorf("%w: %s", arena.ErrUnauthorizedGame, game.Short())
	}

	session := stored.Clone()
	a := e.playerClone(session.PlayerA)
	b := a
	if session.PlayerB != session.PlayerA {
		b = e.playerClone(session.PlayerB)
	}
	if err := arena.ResolveSession(session, winner, a, b); err != nil {
		return err
	}

	now := e.clock.Now()
	entry, err := e.appendEntry(journal.KindSessionResolved, journal.SessionResolved{
		Session: sessionID,
		Game:    game,
		Winner:  winner,
	}, now)
	if err != nil {
		return err
	}

	batch, err := e.ledger.NewBatch()
	if err != nil {
		return err
	}
	defer batch.Close()
	if err := batch.PutSession(*session); err != nil {
		return err
	}
	if err := batch.PutPlayer(*a); err != nil {
		return err
	}
	if err := batch.PutPlayer(*b); err != nil {
		return err
	}
	if err := batch.PutJournal(entry); err != nil {
		return err
	}
	if err := batch.Commit(); err != nil {
		return err
	}

	e.players[session.PlayerA] = a
	e.players[session.PlayerB] = b
	e.sessions[sessionID] = session
	e.head = entry.Head()
	e.log.Info().
		Stringer("session", sessionID).
		Stringer("winner", winner).
		Msg("session resolved")
	return nil
}

// CycleEpoch settles the current epoch once its duration has elapsed:
// it drains the vault's emissions and admin balance, swaps the yield
// into the settlement token and seals the epoch with the swap's output
// as its reward pool, opening the successor.
//
// The engine's own records mutate only after every step has succeeded.
// The vault and router are external ledgers whose custody moves cannot
// be unwound, so when the swap fails after a successful collection the
// collected yield is recorded as carry, stays in engine custody and
// joins the next cycle's swap input; the epoch stays open and the
// failure is reported to the caller.
func (e *Engine) CycleEpoch(ctx context.Context, caller account.Address) (epoch.Epoch, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cfg.CyclePolicy == CycleAdminOnly && caller != e.cfg.Admin {
		return epoch.Epoch{}, ErrUnauthorized
	}
	now := e.clock.Now()
	if !e.current.Due(now) {
		return epoch.Epoch{}, fmt.Errorf("%w: epoch %d has %s remaining",
			epoch.ErrNotReady, e.current.Index, e.current.Remaining(now))
	}

	collected, err := e.collector.Collect(ctx, e.cfg.Self)
	if err != nil {
		return epoch.Epoch{}, err
	}
	swapIn, ok := safemath.AddAmount(e.carry, collected)
	if !ok {
		return epoch.Epoch{}, fmt.Errorf("aggregate yield: %w", safemath.ErrOverflow)
	}

	settled, err := e.swapper.Swap(ctx, swapIn, e.cfg.Self, now)
	if err != nil {
		if collected > 0 {
			if carryErr := e.recordCarry(collected, swapIn, now); carryErr != nil {
				return epoch.Epoch{}, errors.Join(err, carryErr)
			}
		}
		return epoch.Epoch{}, err
	}

	sealed, next, err := e.current.Finalize(settled, now)
	if err != nil {
		return epoch.Epoch{}, err
	}
	entry, err := e.appendEntry(journal.KindEpochFinalized, journal.EpochFinalized{
		Epoch:      sealed.Index,
		Collected:  swapIn,
		RewardPool: sealed.RewardPool,
		NextEpoch:  next.Index,
	}, now)
	if err != nil {
		return epoch.Epoch{}, err
	}

	batch, err := e.ledger.NewBatch()
	if err != nil {
		return epoch.Epoch{}, err
	}
	defer batch.Close()
	if err := batch.PutEpoch(sealed); err != nil {
		return epoch.Epoch{}, err
	}
	if err := batch.PutEpoch(next); err != nil {
		return epoch.Epoch{}, err
	}
	if err := batch.PutCurrentEpochIndex(next.Index); err != nil {
		return epoch.Epoch{}, err
	}
	if err := batch.PutCarry(0); err != nil {
		return epoch.Epoch{}, err
	}
	if err := batch.PutJournal(entry); err != nil {
		return epoch.Epoch{}, err
	}
	if err := batch.Commit(); err != nil {
		return epoch.Epoch{}, err
	}

	e.current = next
	e.carry = 0
	e.head = entry.Head()
	e.log.Info().
		Uint32("epoch", sealed.Index).
		Int64("collected", swapIn).
		Int64("reward_pool", sealed.RewardPool).
		Uint32("next_epoch", next.Index).
		Msg("epoch finalized")
	return sealed, nil
}

// recordCarry commits newly collected yield that could not be swapped,
// so the books keep matching the tokens already moved into engine
// custody. It is the one mutation a failed cycle leaves behind.
func (e *Engine) recordCarry(collected, carry int64, now time.Time) error {
	entry, err := e.appendEntry(journal.KindYieldCarried, journal.YieldCarried{
		Collected: collected,
		Carry:     carry,
	}, now)
	if err != nil {
		return err
	}

	batch, err := e.ledger.NewBatch()
	if err != nil {
		return err
	}
	defer batch.Close()
	if err := batch.PutCarry(carry); err != nil {
		return err
	}
	if err := batch.PutJournal(entry); err != nil {
		return err
	}
	if err := batch.Commit(); err != nil {
		return err
	}

	e.carry = carry
	e.head = entry.Head()
	e.log.Warn().
		Int64("collected", collected).
		Int64("carry", carry).
		Msg("swap failed, yield carried to next cycle")
	return nil
}

// ClaimEmissions claims the given reserves' emissions from the vault
// directly to recipient, mirroring the vault's own operation. Admin
// only; the cycling path uses the configured reserve set instead.
func (e *Engine) ClaimEmissions(ctx context.Context, caller account.Address, reserveIDs []uint32, recipient account.Address) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.cfg.Admin {
		return 0, ErrUnauthorized
	}

	amount, err := e.vault.ClaimEmissions(ctx, reserveIDs, recipient)
	if err != nil {
		return 0, fmt.Errorf("%w: claim emissions: %w", vault.ErrCollection, err)
	}

	now := e.clock.Now()
	entry, err := e.appendEntry(journal.KindEmissionsClaimed, journal.EmissionsClaimed{
		Reserves:  reserveIDs,
		Recipient: recipient,
		Amount:    amount,
	}, now)
	if err != nil {
		return 0, err
	}

	batch, err := e.ledger.NewBatch()
	if err != nil {
		return 0, err
	}
	defer batch.Close()
	if err := batch.PutJournal(entry); err != nil {
		return 0, err
	}
	if err := batch.Commit(); err != nil {
		return 0, err
	}

	e.head = entry.Head()
	e.log.Info().
		Uints32("reserves", reserveIDs).
		Str("recipient", recipient.Short()).
		Int64("amount", amount).
		Msg("emissions claimed")
	return amount, nil
}
