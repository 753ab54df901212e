package arena

import (
	"encoding/hex"
	"fmt"

	"github.com/eigerco/bramble/internal/account"
)

const SessionIDSize = 32

// SessionID is the caller-supplied 32-byte identifier of a game
// session.
type SessionID [SessionIDSize]byte

// SessionIDFromBytes converts a byte slice to a SessionID.
func SessionIDFromBytes(b []byte) (SessionID, error) {
	if len(b) != SessionIDSize {
		return SessionID{}, ErrInvalidSessionID
	}
	var id SessionID
	copy(id[:], b)
	return id, nil
}

// ParseSessionID decodes a hex string, with or without a 0x prefix.
func ParseSessionID(s string) (SessionID, error) {
	if len(s) >= 2 && s[:2] == "0x" {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return SessionID{}, ErrInvalidSessionID
	}
	return SessionIDFromBytes(b)
}

func (id SessionID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

func (id SessionID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *SessionID) UnmarshalText(text []byte) error {
	parsed, err := ParseSessionID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

type SessionState uint8

const (
	SessionLocked SessionState = iota
	SessionResolved
)

func (s SessionState) String() string {
	switch s {
	case SessionLocked:
		return "locked"
	case SessionResolved:
		return "resolved"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// GameSession records a wagered match between two players, registered
// by a game. Wagers are bookkeeping against deposit balances, no funds
// move when a session opens or resolves.
type GameSession struct {
	ID       SessionID       `json:"id"`
	Game     account.Address `json:"game"`
	PlayerA  account.Address `json:"player_a"`
	PlayerB  account.Address `json:"player_b"`
	WagerA   int64           `json:"wager_a"`
	WagerB   int64           `json:"wager_b"`
	FactionA Faction         `json:"faction_a"`
	FactionB Faction         `json:"faction_b"`
	State    SessionState    `json:"state"`
	Epoch    uint32          `json:"epoch"`
	Winner   *Faction        `json:"winner,omitempty"`
}

// StartSession validates both wagers and opens a locked session during
// the given epoch. Both players' active session counts are incremented,
// locking their factions until the session resolves. Pass the same
// player twice for a self match; the count then rises by two and falls
// by two on resolution.
func StartSession(id SessionID, game account.Address, epochIndex uint32, a, b *Player, wagerA, wagerB int64) (GameSession, error) {
	if wagerA <= 0 || wagerB <= 0 {
		return GameSession{}, ErrInvalidAmount
	}
	if a.Faction == nil || b.Faction == nil {
		return GameSession{}, ErrFactionNotSelected
	}
	if wagerA > a.Balance {
		return GameSession{}, fmt.Errorf("%w: player %s wagered %d with balance %d",
			ErrInsufficientBalance, a.Addr.Short(), wagerA, a.Balance)
	}
	if wagerB > b.Balance {
		return GameSession{}, fmt.Errorf("%w: player %s wagered %d with balance %d",
			ErrInsufficientBalance, b.Addr.Short(), wagerB, b.Balance)
	}

	session := GameSession{
		ID:       id,
		Game:     game,
		PlayerA:  a.Addr,
		PlayerB:  b.Addr,
		WagerA:   wagerA,
		WagerB:   wagerB,
		FactionA: *a.Faction,
		FactionB: *b.Faction,
		State:    SessionLocked,
		Epoch:    epochIndex,
	}

	a.ActiveSessions++
	b.ActiveSessions++
	return session, nil
}

// ResolveSession settles the session in favour of winner and releases
// both players' faction locks. The winner must be a faction that is
// actually party to the session.
func ResolveSession(s *GameSession, winner Faction, a, b *Player) error {
	if s.State == SessionResolved {
		return ErrSessionResolved
	}
	if winner != s.FactionA && winner != s.FactionB {
		return fmt.Errorf("%w: %s is not party to session %s", ErrBadFaction, winner, s.ID)
	}

	s.State = SessionResolved
	s.Winner = &winner
	a.ReleaseSession()
	b.ReleaseSession()
	return nil
}

// Clone returns an independent copy of the session.
func (s *GameSession) Clone() *GameSession {
	c := *s
	if s.Winner != nil {
		w := *s.Winner
		c.Winner = &w
	}
	return &c
}
