package testutil

import (
	"sync"
	"time"
)

// Epoch is the default instant of a FixedClock. Golden databases are
// generated with it.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// FixedClock is a wall clock that only moves when told to.
//
// Unlike engine.SystemClock, FixedClock makes GeneratedAt reproducible, so
// the same scenario serializes to byte-identical output on every run.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock reading at. A zero at means Epoch.
func NewFixedClock(at time.Time) *FixedClock {
	if at.IsZero() {
		at = Epoch
	}
	return &FixedClock{now: at.UTC()}
}

// Now returns the current fixed instant.
//
// Implements engine.WallClock.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Reset moves the clock back to Epoch.
func (c *FixedClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = Epoch
}
