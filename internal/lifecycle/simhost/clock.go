package simhost

import (
	"sync/atomic"
	"time"
)

// Clock is a lifecycle clock that simulated components can also spend time
// on.
type Clock interface {
	Now() time.Duration

	// Spend consumes d of this clock's time.
	Spend(d time.Duration)
}

// SystemClock reads the process monotonic clock.
type SystemClock struct {
	origin time.Time
}

// NewSystemClock returns a SystemClock whose origin is the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.origin)
}

// Spend busy-waits for d. Sleeping would yield the goroutine and make short
// costs unreliable.
func (c *SystemClock) Spend(d time.Duration) {
	if d <= 0 {
		return
	}
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
	}
}

// ManualClock only moves when told to. Spend advances it instantly, which
// makes timings exact and tests deterministic.
type ManualClock struct {
	now atomic.Int64
}

// NewManualClock returns a ManualClock at zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Now returns the current reading.
func (c *ManualClock) Now() time.Duration {
	return time.Duration(c.now.Load())
}

// Spend advances the clock by d.
func (c *ManualClock) Spend(d time.Duration) {
	if d > 0 {
		c.now.Add(int64(d))
	}
}

// Advance is an alias for Spend.
func (c *ManualClock) Advance(d time.Duration) {
	c.Spend(d)
}
