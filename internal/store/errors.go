package store

import "errors"

var (
	// ErrLedgerClosed is returned for any access after Close.
	ErrLedgerClosed = errors.New("ledger store is closed")

	// ErrNoState is returned when the store holds no engine state yet,
	// i.e. the database is fresh.
	ErrNoState = errors.New("no engine state in store")

	// ErrGameNotFound is returned when looking up an unregistered game.
	ErrGameNotFound = errors.New("game not found")
)
