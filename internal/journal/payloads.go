package journal

import (
	"github.com/eigerco/bramble/internal/account"
	"github.com/eigerco/bramble/internal/arena"
)

// Payload types, one per Kind. They carry the facts of the operation
// as committed, not derived views.

type GameRegistered struct {
	Game account.Address `json:"game"`
}

type DepositMade struct {
	Player  account.Address `json:"player"`
	Amount  int64           `json:"amount"`
	Balance int64           `json:"balance"`
}

type FactionSelected struct {
	Player  account.Address `json:"player"`
	Faction arena.Faction   `json:"faction"`
}

type SessionStarted struct {
	Session arena.SessionID `json:"session"`
	Game    account.Address `json:"game"`
	PlayerA account.Address `json:"player_a"`
	PlayerB account.Address `json:"player_b"`
	WagerA  int64           `json:"wager_a"`
	WagerB  int64           `json:"wager_b"`
	Epoch   uint32          `json:"epoch"`
}

type SessionResolved struct {
	Session arena.SessionID `json:"session"`
	Game    account.Address `json:"game"`
	Winner  arena.Faction   `json:"winner"`
}

type EpochFinalized struct {
	Epoch      uint32 `json:"epoch"`
	Collected  int64  `json:"collected"`
	RewardPool int64  `json:"reward_pool"`
	NextEpoch  uint32 `json:"next_epoch"`
}

// YieldCarried records yield that was collected but could not be
// swapped; it stays in engine custody and joins the next cycle's input.
type YieldCarried struct {
	Collected int64 `json:"collected"`
	Carry     int64 `json:"carry"`
}

type EmissionsClaimed struct {
	Reserves  []uint32        `json:"reserves"`
	Recipient account.Address `json:"recipient"`
	Amount    int64           `json:"amount"`
}
