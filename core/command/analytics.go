package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/smartcommand/core/logger"
)

// Lifecycle event names shared by the analytics implementations.
const (
	eventStarted   = "started"
	eventCompleted = "completed"
	eventFailed    = "failed"
)

// Analytics observes the lifecycle of each attempt that passes eligibility.
// It must not influence control flow.
type Analytics interface {
	TrackStart(name string, at time.Time)
	TrackComplete(name string, at time.Time)
	TrackError(name string, err error, at time.Time)
}

// SwallowAnalytics discards all events. It is the default.
type SwallowAnalytics struct{}

// TrackStart does nothing.
func (SwallowAnalytics) TrackStart(string, time.Time) {}

// TrackComplete does nothing.
func (SwallowAnalytics) TrackComplete(string, time.Time) {}

// TrackError does nothing.
func (SwallowAnalytics) TrackError(string, error, time.Time) {}

// LogAnalytics writes lifecycle events to a structured logger at a fixed level.
type LogAnalytics struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogAnalytics creates analytics logging to l at level.
// A nil logger falls back to slog.Default.
func NewLogAnalytics(l *slog.Logger, level slog.Level) *LogAnalytics {
	if l == nil {
		l = slog.Default()
	}
	return &LogAnalytics{logger: l, level: level}
}

// Level returns the level events are logged at.
func (a *LogAnalytics) Level() slog.Level {
	return a.level
}

// TrackStart logs a "started" event for the named command.
func (a *LogAnalytics) TrackStart(name string, at time.Time) {
	a.logger.LogAttrs(context.Background(), a.level, "command started",
		logger.Command(name),
		logger.Event(eventStarted),
		logger.Timestamp(at),
	)
}

// TrackComplete logs a "completed" event for the named command.
func (a *LogAnalytics) TrackComplete(name string, at time.Time) {
	a.logger.LogAttrs(context.Background(), a.level, "command completed",
		logger.Command(name),
		logger.Event(eventCompleted),
		logger.Timestamp(at),
	)
}

// TrackError logs a "failed" event carrying err.
func (a *LogAnalytics) TrackError(name string, err error, at time.Time) {
	a.logger.LogAttrs(context.Background(), a.level, "command failed",
		logger.Command(name),
		logger.Event(eventFailed),
		logger.Timestamp(at),
		logger.Error(err),
	)
}
