package command

import (
	"context"
	"time"
)

type commandNameCtx struct{}

// WithCommandName attaches a command name to the context for logging and metrics.
func WithCommandName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandNameCtx{}, name)
}

// CommandName extracts the command name from the context.
// Returns empty string if not present.
func CommandName(ctx context.Context) string {
	if name, ok := ctx.Value(commandNameCtx{}).(string); ok {
		return name
	}
	return ""
}

type startTimeCtx struct{}

// WithStartTime attaches the attempt start time to the context.
func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeCtx{}, t)
}

// StartTime extracts the attempt start time from the context.
// Returns zero time if not present.
func StartTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(startTimeCtx{}).(time.Time); ok {
		return t
	}
	return time.Time{}
}
