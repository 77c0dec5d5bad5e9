package common

import "time"

// DefaultFrameDelta is reported for the first frame and after Reset, when
// there is no previous frame to measure against.
const DefaultFrameDelta = 1.0 / 60.0

// TimeProvider abstracts the wall clock so frame timing can be driven in tests.
type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// FrameClock measures elapsed seconds between consecutive frames. Deltas are
// clamped to MaxDelta so a stalled window does not teleport entities.
type FrameClock struct {
	provider TimeProvider
	last     time.Time
	started  bool
	MaxDelta float64
}

func NewFrameClock(provider TimeProvider, maxDelta float64) *FrameClock {
	if provider == nil {
		provider = realTimeProvider{}
	}
	return &FrameClock{provider: provider, MaxDelta: maxDelta}
}

// Tick returns the seconds elapsed since the previous Tick.
func (c *FrameClock) Tick() float64 {
	now := c.provider.Now()
	if !c.started {
		c.started = true
		c.last = now
		return DefaultFrameDelta
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		dt = 0
	}
	if c.MaxDelta > 0 && dt > c.MaxDelta {
		dt = c.MaxDelta
	}
	return dt
}

// Reset forgets the previous frame, e.g. after the game was paused.
func (c *FrameClock) Reset() {
	c.started = false
}
