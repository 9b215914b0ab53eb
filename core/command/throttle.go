package command

import "sync/atomic"

// DefaultMaxConcurrency is the in-flight limit used when no throttle is configured.
const DefaultMaxConcurrency = 1

// Throttle gates concurrent admission of attempts.
type Throttle interface {
	// CanStart reports whether another attempt may be admitted right now.
	CanStart() bool
	// MarkStarted records an attempt as in flight. It does not check admission.
	MarkStarted()
	// MarkFinished releases one in-flight slot.
	MarkFinished()
}

// CountedThrottle admits attempts while the in-flight count is below a maximum.
//
// Counter updates are atomic, but CanStart followed by MarkStarted is not one
// step: two concurrent invocations may both see CanStart() == true and both start,
// briefly exceeding the maximum.
type CountedThrottle struct {
	inFlight atomic.Int64
	max      int64
}

// NewCountedThrottle creates a throttle admitting up to maxConcurrency attempts.
// Negative values are treated as zero, which admits nothing.
func NewCountedThrottle(maxConcurrency int) *CountedThrottle {
	return &CountedThrottle{max: int64(max(maxConcurrency, 0))}
}

// CanStart reports whether the in-flight count is strictly below the maximum.
func (t *CountedThrottle) CanStart() bool {
	return t.inFlight.Load() < t.max
}

// MarkStarted increments the in-flight count unconditionally.
func (t *CountedThrottle) MarkStarted() {
	t.inFlight.Add(1)
}

// MarkFinished decrements the in-flight count. It never goes below zero.
func (t *CountedThrottle) MarkFinished() {
	for {
		cur := t.inFlight.Load()
		if cur <= 0 {
			return
		}
		if t.inFlight.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}

// InFlight returns the current in-flight count.
func (t *CountedThrottle) InFlight() int {
	return int(t.inFlight.Load())
}

// MaxConcurrency returns the configured maximum.
func (t *CountedThrottle) MaxConcurrency() int {
	return int(t.max)
}
