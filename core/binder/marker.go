package binder

import "log/slog"

// Contract identifies the strategy a Marker configures.
type Contract int

const (
	ContractRetry Contract = iota + 1
	ContractThrottle
	ContractErrorHandling
	ContractAnalytics
)

// String returns the contract name used in error messages.
func (c Contract) String() string {
	switch c {
	case ContractRetry:
		return "retry"
	case ContractThrottle:
		return "throttle"
	case ContractErrorHandling:
		return "error handling"
	case ContractAnalytics:
		return "analytics"
	default:
		return "unknown"
	}
}

// Marker is a declarative strategy choice attached to a command binding.
// Markers are grouped by Contract; each group resolves to one strategy.
type Marker interface {
	Contract() Contract
}

// Retry selects command.CountedRetry with MaxAttempts attempts per invocation.
type Retry struct {
	MaxAttempts int
}

// Contract returns ContractRetry.
func (Retry) Contract() Contract { return ContractRetry }

// Throttle selects command.CountedThrottle with MaxConcurrency slots.
type Throttle struct {
	MaxConcurrency int
}

// Contract returns ContractThrottle.
func (Throttle) Contract() Contract { return ContractThrottle }

// LogErrors selects command.LogErrors on the factory logger.
type LogErrors struct{}

// Contract returns ContractErrorHandling.
func (LogErrors) Contract() Contract { return ContractErrorHandling }

// PanicOnError selects command.PanicOnError.
type PanicOnError struct{}

// Contract returns ContractErrorHandling.
func (PanicOnError) Contract() Contract { return ContractErrorHandling }

// LogAnalytics selects command.LogAnalytics. A nil Level uses the factory
// default analytics level.
type LogAnalytics struct {
	Level slog.Leveler
}

// Contract returns ContractAnalytics.
func (LogAnalytics) Contract() Contract { return ContractAnalytics }

// MetricsAnalytics selects command.MetricsAnalytics on the factory meter.
type MetricsAnalytics struct{}

// Contract returns ContractAnalytics.
func (MetricsAnalytics) Contract() Contract { return ContractAnalytics }

// PrometheusAnalytics selects command.PrometheusAnalytics on the factory registerer.
type PrometheusAnalytics struct{}

// Contract returns ContractAnalytics.
func (PrometheusAnalytics) Contract() Contract { return ContractAnalytics }
