package shared

import (
	"sync"
	"time"
)

// Clock supplies the wall-clock instant a colony is projected to. Simulation
// time never reads it directly; only the status poller and the CLI's "now"
// default do.
type Clock interface {
	Now() time.Time
}

// WallClock reads the system time in UTC
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now().UTC() }

// NewWallClock returns the clock used by the serve command
func NewWallClock() Clock {
	return WallClock{}
}

// FixedClock returns a settable instant. It is safe to read from the poller
// goroutine while a test moves it.
type FixedClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewFixedClock pins the clock at start, normalized to UTC
func NewFixedClock(start time.Time) *FixedClock {
	return &FixedClock{now: start.UTC()}
}

func (c *FixedClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward; negative durations are ignored
func (c *FixedClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
