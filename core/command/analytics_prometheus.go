package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusAnalytics exposes lifecycle events as Prometheus collectors:
//   - <namespace>_command_events_total{command,event}
//   - <namespace>_command_inflight{command}
//   - <namespace>_command_last_event_timestamp_seconds{command,event}
//
// Several instances may share one registry: collectors that are already
// registered are reused.
type PrometheusAnalytics struct {
	events   *prometheus.CounterVec
	inflight *prometheus.GaugeVec
	last     *prometheus.GaugeVec
}

// NewPrometheusAnalytics registers the collectors with reg, or with
// prometheus.DefaultRegisterer when reg is nil.
func NewPrometheusAnalytics(reg prometheus.Registerer, namespace string) (*PrometheusAnalytics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	events, err := registerOrReuse(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "command",
			Name:      "events_total",
			Help:      "Command lifecycle events by command and event",
		},
		[]string{"command", "event"},
	))
	if err != nil {
		return nil, err
	}

	inflight, err := registerOrReuse(reg, prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "command",
			Name:      "inflight",
			Help:      "Command attempts currently executing",
		},
		[]string{"command"},
	))
	if err != nil {
		return nil, err
	}

	last, err := registerOrReuse(reg, prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "command",
			Name:      "last_event_timestamp_seconds",
			Help:      "Unix time of the most recent lifecycle event",
		},
		[]string{"command", "event"},
	))
	if err != nil {
		return nil, err
	}

	return &PrometheusAnalytics{events: events, inflight: inflight, last: last}, nil
}

// TrackStart counts a started attempt.
func (p *PrometheusAnalytics) TrackStart(name string, at time.Time) {
	p.record(name, eventStarted, at)
	p.inflight.WithLabelValues(name).Inc()
}

// TrackComplete counts a completed attempt.
func (p *PrometheusAnalytics) TrackComplete(name string, at time.Time) {
	p.record(name, eventCompleted, at)
	p.inflight.WithLabelValues(name).Dec()
}

// TrackError counts a failed attempt. The error itself is not recorded.
func (p *PrometheusAnalytics) TrackError(name string, _ error, at time.Time) {
	p.record(name, eventFailed, at)
	p.inflight.WithLabelValues(name).Dec()
}

func (p *PrometheusAnalytics) record(name, event string, at time.Time) {
	p.events.WithLabelValues(name, event).Inc()
	p.last.WithLabelValues(name, event).Set(float64(at.UnixNano()) / float64(time.Second))
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register prometheus collector: %w", err)
	}
	return c, nil
}
