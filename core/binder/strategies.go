package binder

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/metric"

	"github.com/dmitrymomot/smartcommand/core/command"
)

// RetryFactory builds the retry policy of a binding from its markers.
type RetryFactory interface {
	Retry(markers []Marker) (command.Retry, error)
}

// ThrottleFactory builds the throttle of a binding from its markers.
type ThrottleFactory interface {
	Throttle(markers []Marker) (command.Throttle, error)
}

// ErrorHandlerFactory builds the error handler of a binding from its markers.
type ErrorHandlerFactory interface {
	ErrorHandler(markers []Marker) (command.ErrorHandler, error)
}

// AnalyticsFactory builds the analytics of a binding from its markers.
type AnalyticsFactory interface {
	Analytics(markers []Marker) (command.Analytics, error)
}

// DefaultRetryFactory resolves Retry markers. Without one it allows
// MaxAttempts attempts; several Retry markers are an error.
type DefaultRetryFactory struct {
	MaxAttempts int
}

// Retry returns a command.CountedRetry for the binding.
func (f DefaultRetryFactory) Retry(markers []Marker) (command.Retry, error) {
	return resolver[command.Retry]{
		contract: ContractRetry,
		fallback: func() command.Retry { return command.NewCountedRetry(f.MaxAttempts) },
		single: func(m Marker) (command.Retry, error) {
			if r, ok := m.(Retry); ok {
				return command.NewCountedRetry(r.MaxAttempts), nil
			}
			return nil, unsupportedMarker(m)
		},
	}.resolve(markers)
}

// DefaultThrottleFactory resolves Throttle markers. Without one it admits
// MaxConcurrency attempts; several Throttle markers are an error.
type DefaultThrottleFactory struct {
	MaxConcurrency int
}

// Throttle returns a command.CountedThrottle for the binding.
func (f DefaultThrottleFactory) Throttle(markers []Marker) (command.Throttle, error) {
	return resolver[command.Throttle]{
		contract: ContractThrottle,
		fallback: func() command.Throttle { return command.NewCountedThrottle(f.MaxConcurrency) },
		single: func(m Marker) (command.Throttle, error) {
			if t, ok := m.(Throttle); ok {
				return command.NewCountedThrottle(t.MaxConcurrency), nil
			}
			return nil, unsupportedMarker(m)
		},
	}.resolve(markers)
}

// DefaultErrorHandlerFactory resolves LogErrors and PanicOnError markers.
// Without one failures are swallowed; several are composed in marker order.
type DefaultErrorHandlerFactory struct {
	Logger *slog.Logger
}

// ErrorHandler returns the handler the markers select.
func (f DefaultErrorHandlerFactory) ErrorHandler(markers []Marker) (command.ErrorHandler, error) {
	return resolver[command.ErrorHandler]{
		contract: ContractErrorHandling,
		fallback: func() command.ErrorHandler { return command.SwallowErrors{} },
		single: func(m Marker) (command.ErrorHandler, error) {
			switch m.(type) {
			case LogErrors:
				return command.NewLogErrors(f.Logger), nil
			case PanicOnError:
				return command.PanicOnError{}, nil
			default:
				return nil, unsupportedMarker(m)
			}
		},
		composite: func(hs []command.ErrorHandler) command.ErrorHandler {
			return command.NewCompositeErrorHandler(hs...)
		},
	}.resolve(markers)
}

// DefaultAnalyticsFactory resolves LogAnalytics, MetricsAnalytics and
// PrometheusAnalytics markers. Without one events are discarded; several
// analytics markers are an error.
type DefaultAnalyticsFactory struct {
	Logger     *slog.Logger
	Level      slog.Level
	Meter      metric.Meter
	Registerer prometheus.Registerer
	Namespace  string
}

// Analytics returns the analytics the markers select.
func (f DefaultAnalyticsFactory) Analytics(markers []Marker) (command.Analytics, error) {
	return resolver[command.Analytics]{
		contract: ContractAnalytics,
		fallback: func() command.Analytics { return command.SwallowAnalytics{} },
		single: func(m Marker) (command.Analytics, error) {
			switch a := m.(type) {
			case LogAnalytics:
				level := f.Level
				if a.Level != nil {
					level = a.Level.Level()
				}
				return command.NewLogAnalytics(f.Logger, level), nil
			case MetricsAnalytics:
				ma, err := command.NewMetricsAnalytics(f.Meter)
				if err != nil {
					return nil, err
				}
				return ma, nil
			case PrometheusAnalytics:
				pa, err := command.NewPrometheusAnalytics(f.Registerer, f.Namespace)
				if err != nil {
					return nil, err
				}
				return pa, nil
			default:
				return nil, unsupportedMarker(m)
			}
		},
	}.resolve(markers)
}
