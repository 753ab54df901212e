package ledgertime

import (
	"sync"
	"time"
)

// Clock provides the ledger's notion of current time. Epoch gating,
// yield accrual and swap deadlines all read time through it so that
// tests and simulations can drive time explicitly.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Manual is a settable clock for tests and the devnet simulation.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual creates a manual clock positioned at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (c *Manual) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Manual) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set repositions the clock. Moving backwards is allowed, epoch gating
// treats earlier times as not yet due.
func (c *Manual) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
