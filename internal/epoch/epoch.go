package epoch

import (
	"math"
	"time"
)

// Epoch is one settlement window. Exactly one epoch is open at any
// time; finalizing it records the settled reward pool and opens the
// successor.
type Epoch struct {
	Index      uint32        `json:"index"`
	Start      time.Time     `json:"start"`
	Duration   time.Duration `json:"duration"`
	Finalized  bool          `json:"finalized"`
	RewardPool int64         `json:"reward_pool"`
}

// First creates the initial open epoch of a fresh ledger.
func First(start time.Time, duration time.Duration) Epoch {
	return Epoch{Index: 0, Start: start, Duration: duration}
}

// End returns the first instant at which the epoch may be finalized.
func (e Epoch) End() time.Time {
	return e.Start.Add(e.Duration)
}

// Due reports whether the epoch's full duration has elapsed at now.
// The boundary instant itself counts as due.
func (e Epoch) Due(now time.Time) bool {
	return !now.Before(e.End())
}

// Remaining returns the time left until the epoch becomes due, never
// negative.
func (e Epoch) Remaining(now time.Time) time.Duration {
	if e.Due(now) {
		return 0
	}
	return e.End().Sub(now)
}

// Finalize seals the epoch with its settled reward pool and opens the
// successor starting at now. The receiver is unchanged; callers commit
// both returned epochs together or not at all.
func (e Epoch) Finalize(rewardPool int64, now time.Time) (sealed, next Epoch, err error) {
	if e.Finalized {
		return Epoch{}, Epoch{}, ErrAlreadyFinalized
	}
	if !e.Due(now) {
		return Epoch{}, Epoch{}, ErrNotReady
	}
	if rewardPool < 0 {
		return Epoch{}, Epoch{}, ErrInvalidRewardPool
	}
	if e.Index == math.MaxUint32 {
		return Epoch{}, Epoch{}, ErrMaxIndexReached
	}

	sealed = e
	sealed.Finalized = true
	sealed.RewardPool = rewardPool

	next = Epoch{
		Index:    e.Index + 1,
		Start:    now,
		Duration: e.Duration,
	}
	return sealed, next, nil
}
