package testsupport

import (
	"sync"
	"time"
)

// Clock is a deterministic time source for tests. Every call to Now advances
// it by a fixed step, so records created through it have strictly increasing
// creation timestamps.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewClock creates a clock starting at start, advancing by step per call.
func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{now: start, step: step}
}

// NewDefaultClock creates a clock starting at a fixed reference instant,
// advancing one second per call.
func NewDefaultClock() *Clock {
	return NewClock(time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC), time.Second)
}

// Now returns the current instant and advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

// Peek returns the instant the next Now call will produce.
func (c *Clock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}
