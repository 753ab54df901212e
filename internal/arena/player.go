package arena

import (
	"github.com/eigerco/bramble/internal/account"
	"github.com/eigerco/bramble/internal/safemath"
)

// Player holds one account's deposit balance and faction alignment.
// ActiveSessions counts unresolved game sessions the player is party
// to; a non-zero count locks the faction.
type Player struct {
	Addr           account.Address `json:"addr"`
	Balance        int64           `json:"balance"`
	Faction        *Faction        `json:"faction,omitempty"`
	ActiveSessions uint32          `json:"active_sessions"`
}

func NewPlayer(addr account.Address) *Player {
	return &Player{Addr: addr}
}

// Clone returns an independent copy, used to stage mutations that are
// only adopted once they are durably committed.
func (p *Player) Clone() *Player {
	c := *p
	if p.Faction != nil {
		f := *p.Faction
		c.Faction = &f
	}
	return &c
}

// Credit adds a deposit to the player's balance.
func (p *Player) Credit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	balance, ok := safemath.AddAmount(p.Balance, amount)
	if !ok {
		return ErrBalanceOverflow
	}
	p.Balance = balance
	return nil
}

// ChooseFaction selects or switches the player's faction. Any attempt
// while the player has unresolved sessions fails, including reselecting
// the current faction.
func (p *Player) ChooseFaction(f Faction) error {
	if !f.Valid() {
		return ErrBadFaction
	}
	if p.ActiveSessions > 0 {
		return ErrFactionLocked
	}
	p.Faction = &f
	return nil
}

// ReleaseSession decrements the active session count when one of the
// player's sessions resolves.
func (p *Player) ReleaseSession() {
	if p.ActiveSessions > 0 {
		p.ActiveSessions--
	}
}

// Totals sums deposit balances per faction. Players that have not
// selected a faction do not count toward either side.
func Totals(players []*Player) map[Faction]int64 {
	totals := map[Faction]int64{
		FactionWholeNoodle: 0,
		FactionPointyStick: 0,
	}
	for _, p := range players {
		if p.Faction != nil {
			totals[*p.Faction] += p.Balance
		}
	}
	return totals
}
