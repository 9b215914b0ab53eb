package command

import (
	"context"

	"github.com/dmitrymomot/smartcommand/pkg/async"
)

// Execution runs the work behind a command. A returned error, or a panic, fails
// the attempt and is routed to the command's ErrorHandler.
type Execution[P any] interface {
	Execute(ctx context.Context, param P) error
}

// ExecutionFunc adapts a function to Execution.
type ExecutionFunc[P any] func(ctx context.Context, param P) error

// Execute calls f.
func (f ExecutionFunc[P]) Execute(ctx context.Context, param P) error {
	return f(ctx, param)
}

// Sync wraps a synchronous one-parameter function.
func Sync[P any](fn func(P) error) ExecutionFunc[P] {
	if fn == nil {
		return nil
	}
	return func(_ context.Context, param P) error {
		return fn(param)
	}
}

// SyncNoParam wraps a synchronous function that ignores the command parameter.
func SyncNoParam[P any](fn func() error) ExecutionFunc[P] {
	if fn == nil {
		return nil
	}
	return func(context.Context, P) error {
		return fn()
	}
}

// Async wraps a one-parameter function returning a future and awaits it.
// A nil future counts as completed.
func Async[P any](fn func(P) *async.ExecFuture) ExecutionFunc[P] {
	if fn == nil {
		return nil
	}
	return func(_ context.Context, param P) error {
		return await(fn(param))
	}
}

// AsyncNoParam wraps a parameterless function returning a future and awaits it.
func AsyncNoParam[P any](fn func() *async.ExecFuture) ExecutionFunc[P] {
	if fn == nil {
		return nil
	}
	return func(context.Context, P) error {
		return await(fn())
	}
}

func await(f *async.ExecFuture) error {
	if f == nil {
		return nil
	}
	return f.Await()
}
