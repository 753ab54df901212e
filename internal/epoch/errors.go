package epoch

import "errors"

var (
	// ErrNotReady is returned when finalization is attempted before the
	// epoch's full duration has elapsed.
	ErrNotReady = errors.New("epoch is not ready to finalize")

	// ErrAlreadyFinalized is returned when finalizing an epoch that has
	// already been sealed.
	ErrAlreadyFinalized = errors.New("epoch is already finalized")

	// ErrInvalidRewardPool is returned when finalization is attempted
	// with a negative reward pool.
	ErrInvalidRewardPool = errors.New("reward pool must not be negative")

	// ErrMaxIndexReached is returned when the epoch index space is
	// exhausted and no successor can be opened.
	ErrMaxIndexReached = errors.New("maximum epoch index reached")

	// ErrNotFound is returned when looking up an epoch that has never
	// been opened.
	ErrNotFound = errors.New("epoch not found")
)
