package command

import "sync"

// DefaultMaxAttempts is the attempt budget used when no retry policy is configured:
// one attempt, no retry.
const DefaultMaxAttempts = 1

// Retry bounds how many attempts a single Execute call may make.
type Retry interface {
	// CanRetry reports whether another attempt is permitted.
	CanRetry() bool
	// Retry records one attempt.
	Retry()
	// ResetRetry forgets all recorded attempts.
	ResetRetry()
}

// CountedRetry allows up to a fixed number of attempts per invocation.
// Retry saturates at the maximum, so extra calls are no-ops.
type CountedRetry struct {
	mu       sync.Mutex
	attempts int
	max      int
}

// NewCountedRetry creates a retry policy allowing maxAttempts attempts.
// Zero means the command never runs; negative values are treated as zero.
func NewCountedRetry(maxAttempts int) *CountedRetry {
	return &CountedRetry{max: max(maxAttempts, 0)}
}

// CanRetry reports whether fewer than the maximum attempts were recorded.
func (r *CountedRetry) CanRetry() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts < r.max
}

// Retry records one attempt.
func (r *CountedRetry) Retry() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.attempts < r.max {
		r.attempts++
	}
}

// ResetRetry sets the attempt counter back to zero.
func (r *CountedRetry) ResetRetry() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = 0
}

// MaxAttempts returns the configured maximum.
func (r *CountedRetry) MaxAttempts() int {
	return r.max
}

// Attempts returns the number of attempts recorded since the last reset.
func (r *CountedRetry) Attempts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts
}
