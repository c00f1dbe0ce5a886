package engine

import (
	"sync/atomic"
	"time"
)

// Clock is a monotonic logical clock. The engine stamps every validation
// attempt with Next, so the attempt sequence is a pure function of the
// target and the profile.
//
// Thread-safety: Clock is safe for concurrent use, although a discovery run
// only calls it from one goroutine.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific sequence number.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}

// WallClock supplies the generation timestamp of a database. It never
// orders anything inside a run.
type WallClock interface {
	Now() time.Time
}

// SystemClock reads the system time in UTC.
type SystemClock struct{}

// Now returns time.Now in UTC.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
