package engine

import "errors"

var (
	// ErrUnauthorized is returned when a caller other than the admin
	// invokes an admin-only operation.
	ErrUnauthorized = errors.New("caller is not the admin")

	// ErrConfigConflict is returned on boot when the configured
	// identity differs from the one persisted at genesis.
	ErrConfigConflict = errors.New("configuration conflicts with persisted state")
)
