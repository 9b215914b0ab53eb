package command

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// InstrumentationName identifies the OpenTelemetry meter used when none is supplied.
const InstrumentationName = "github.com/dmitrymomot/smartcommand/core/command"

// MetricsAnalytics records lifecycle events as OpenTelemetry instruments:
//   - smartcommand.command.started, .completed, .failed: Int64Counter
//   - smartcommand.command.inflight: Int64UpDownCounter
//
// Every measurement carries the "command" attribute; failures add "error.type".
type MetricsAnalytics struct {
	started   metric.Int64Counter
	completed metric.Int64Counter
	failed    metric.Int64Counter
	inflight  metric.Int64UpDownCounter
}

// NewMetricsAnalytics creates the instruments on meter.
// A nil meter uses the global MeterProvider.
func NewMetricsAnalytics(meter metric.Meter) (*MetricsAnalytics, error) {
	if meter == nil {
		meter = otel.Meter(InstrumentationName)
	}

	started, err := meter.Int64Counter("smartcommand.command.started",
		metric.WithDescription("Command attempts that passed eligibility and started"),
	)
	if err != nil {
		return nil, fmt.Errorf("create started counter: %w", err)
	}

	completed, err := meter.Int64Counter("smartcommand.command.completed",
		metric.WithDescription("Command attempts that completed successfully"),
	)
	if err != nil {
		return nil, fmt.Errorf("create completed counter: %w", err)
	}

	failed, err := meter.Int64Counter("smartcommand.command.failed",
		metric.WithDescription("Command attempts that failed"),
	)
	if err != nil {
		return nil, fmt.Errorf("create failed counter: %w", err)
	}

	inflight, err := meter.Int64UpDownCounter("smartcommand.command.inflight",
		metric.WithDescription("Command attempts currently executing"),
	)
	if err != nil {
		return nil, fmt.Errorf("create inflight counter: %w", err)
	}

	return &MetricsAnalytics{
		started:   started,
		completed: completed,
		failed:    failed,
		inflight:  inflight,
	}, nil
}

// TrackStart adds one to the started counter.
func (m *MetricsAnalytics) TrackStart(name string, _ time.Time) {
	attrs := metric.WithAttributes(attribute.String("command", name))
	m.started.Add(context.Background(), 1, attrs)
	m.inflight.Add(context.Background(), 1, attrs)
}

// TrackComplete adds one to the completed counter.
func (m *MetricsAnalytics) TrackComplete(name string, _ time.Time) {
	attrs := metric.WithAttributes(attribute.String("command", name))
	m.completed.Add(context.Background(), 1, attrs)
	m.inflight.Add(context.Background(), -1, attrs)
}

// TrackError adds one to the failed counter.
func (m *MetricsAnalytics) TrackError(name string, err error, _ time.Time) {
	m.failed.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("command", name),
		attribute.String("error.type", fmt.Sprintf("%T", err)),
	))
	m.inflight.Add(context.Background(), -1, metric.WithAttributes(attribute.String("command", name)))
}
