// Package testutil holds shared test fixtures.
package testutil

import (
	"sync"
	"time"
)

// FakeClock is a settable clock for deterministic tests.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
	loc *time.Location
}

// NewFakeClock creates a fake clock frozen at the given instant.
// The clock's location is taken from the instant.
func NewFakeClock(at time.Time) *FakeClock {
	return &FakeClock{now: at, loc: at.Location()}
}

// Now returns the frozen instant.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Today returns the frozen instant's calendar date.
func (c *FakeClock) Today() string {
	return c.Now().Format("2006-01-02")
}

// Location returns the clock's timezone.
func (c *FakeClock) Location() *time.Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loc
}

// Set moves the clock to a new instant.
func (c *FakeClock) Set(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = at
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
