package command

type options struct {
	name      string
	retry     Retry
	throttle  Throttle
	errors    ErrorHandler
	analytics Analytics
	clock     Clock
}

// Option configures a Command.
type Option func(*options)

// WithName sets the command name. An empty name is replaced by a random UUID.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithRetry sets the retry policy. Defaults to NewCountedRetry(DefaultMaxAttempts).
//
// The policy's counter is shared by every Execute call on the command, so give
// each command its own instance.
func WithRetry(r Retry) Option {
	return func(o *options) {
		if r != nil {
			o.retry = r
		}
	}
}

// WithThrottle sets the concurrency throttle. Defaults to NewCountedThrottle(DefaultMaxConcurrency).
func WithThrottle(t Throttle) Option {
	return func(o *options) {
		if t != nil {
			o.throttle = t
		}
	}
}

// WithErrorHandler sets the failure handler. Defaults to SwallowErrors.
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *options) {
		if h != nil {
			o.errors = h
		}
	}
}

// WithAnalytics sets the lifecycle observer. Defaults to SwallowAnalytics.
func WithAnalytics(a Analytics) Option {
	return func(o *options) {
		if a != nil {
			o.analytics = a
		}
	}
}

// WithClock sets the clock used for analytics timestamps. Defaults to SystemClock.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}
