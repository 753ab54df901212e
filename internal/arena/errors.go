package arena

import "errors"

var (
	// ErrInvalidAmount is returned for deposits and wagers that are not
	// strictly positive.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrBalanceOverflow is returned when a credit would overflow the
	// player's balance.
	ErrBalanceOverflow = errors.New("balance overflow")

	// ErrInsufficientBalance is returned when a wager exceeds the
	// player's deposit balance.
	ErrInsufficientBalance = errors.New("insufficient deposit balance")

	// ErrFactionNotSelected is returned when a player without a faction
	// tries to enter a session.
	ErrFactionNotSelected = errors.New("player has not selected a faction")

	// ErrFactionLocked is returned when a player tries to select a
	// faction while party to an unresolved session.
	ErrFactionLocked = errors.New("faction is locked by an unresolved session")

	// ErrBadFaction is returned for faction identifiers outside the
	// known set.
	ErrBadFaction = errors.New("unknown faction")

	// ErrUnknownPlayer is returned when looking up a player that has
	// never deposited or selected a faction.
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrGameExists is returned when registering a game address twice.
	ErrGameExists = errors.New("game already registered")

	// ErrUnauthorizedGame is returned when an unregistered address tries
	// to open a session, or a game touches a session it does not own.
	ErrUnauthorizedGame = errors.New("game is not registered for this session")

	// ErrSessionExists is returned when a session id is reused.
	ErrSessionExists = errors.New("session already exists")

	// ErrSessionNotFound is returned when looking up an unknown session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionResolved is returned when resolving a session twice.
	ErrSessionResolved = errors.New("session already resolved")

	// ErrInvalidSessionID is returned when parsing input that is not a
	// 32-byte hex encoded session id.
	ErrInvalidSessionID = errors.New("invalid session id")
)
