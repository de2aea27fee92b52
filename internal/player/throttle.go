package player

import "time"

// Throttle limits how often an action may run, keyed on wall-clock time of
// the last allowed run rather than on how many times it was asked.
type Throttle struct {
	interval time.Duration
	now      func() time.Time
	last     time.Time
}

// NewThrottle creates a throttle allowing one run per interval.
// A nil now uses time.Now.
func NewThrottle(interval time.Duration, now func() time.Time) *Throttle {
	if now == nil {
		now = time.Now
	}
	return &Throttle{interval: interval, now: now}
}

// Allow reports whether the action may run now, and if so records it.
// The first call always succeeds.
func (t *Throttle) Allow() bool {
	n := t.now()
	if !t.last.IsZero() && n.Sub(t.last) < t.interval {
		return false
	}
	t.last = n
	return true
}

// Reset forgets the last run so the next Allow succeeds.
func (t *Throttle) Reset() {
	t.last = time.Time{}
}
