package orientation

import "time"

// Clock is the time source of a Throttle.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Throttle is a leading-edge rate limiter. The first call passes, then calls are refused
// until minInterval has elapsed since the last one that passed. Refused calls are not
// remembered.
type Throttle struct {
	minInterval time.Duration
	lastApplied time.Time
	applied     bool
	clock       Clock
}

func NewThrottle(minInterval time.Duration, clock Clock) *Throttle {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Throttle{minInterval: minInterval, clock: clock}
}

// Allow reports whether an event arriving now may be applied, and if so starts a new
// cooldown.
func (t *Throttle) Allow() bool {
	now := t.clock.Now()
	if t.applied && now.Sub(t.lastApplied) < t.minInterval {
		return false
	}
	t.lastApplied = now
	t.applied = true
	return true
}

func (t *Throttle) MinInterval() time.Duration {
	return t.minInterval
}

// LastApplied is the time of the last allowed event; zero before the first.
func (t *Throttle) LastApplied() time.Time {
	return t.lastApplied
}
