package testfixtures

import (
	"sync"
	"time"
)

// Clock is a controllable stand-in for time.Now wherever the services stamp
// CreatedAt/UpdatedAt or an analysis GeneratedAt.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock pins the clock to start. A zero start pins it to ReferenceTime,
// the working-Wednesday instant the participant and meeting fixtures assume.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{current: start}
}

// Now returns the pinned instant.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// NowFunc adapts the clock to the now func() time.Time the services inject.
// A nil clock falls back to the real time.Now.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}

// Set repins the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new instant, letting a
// test step a meeting or analysis across band and day boundaries.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	c.current = c.current.Add(d)
	updated := c.current
	c.mu.Unlock()
	return updated
}
