package command

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/smartcommand/pkg/async"
)

// Invoker is the untyped view of a command used by UI bindings and by
// binder.Factory.BindAll. *Command[any] implements it directly; typed commands
// expose it through Command.Invoker.
type Invoker interface {
	Name() string
	CanExecute(param any) bool
	Execute(param any)
	OnCanExecuteChanged(fn func()) (cancel func())
}

var _ Invoker = (*Command[any])(nil)

// Command wraps an execution strategy with eligibility, retry, throttle,
// error handling and analytics strategies. The strategy set is fixed at
// construction; only the counters inside the retry and throttle strategies change.
type Command[P any] struct {
	e *engine
}

// New creates a command. A nil eligibility accepts every parameter; unset
// options fall back to one attempt, one concurrent execution, swallowed
// errors and discarded analytics.
//
// Example:
//
//	save, err := command.New(
//	    command.Sync(func(doc Document) error { return store.Save(doc) }),
//	    command.NewEligibilityFunc(func(doc Document) bool { return doc.Dirty }),
//	    command.WithName("save-document"),
//	    command.WithRetry(command.NewCountedRetry(3)),
//	    command.WithErrorHandler(command.NewLogErrors(log)),
//	)
func New[P any](exec Execution[P], eligibility Eligibility[P], opts ...Option) (*Command[P], error) {
	if exec == nil {
		return nil, ErrNilExecution
	}
	if fn, ok := exec.(ExecutionFunc[P]); ok && fn == nil {
		return nil, ErrNilExecution
	}
	if eligibility == nil {
		eligibility = AlwaysEligible[P]{}
	}

	o := options{
		retry:     NewCountedRetry(DefaultMaxAttempts),
		throttle:  NewCountedThrottle(DefaultMaxConcurrency),
		errors:    SwallowErrors{},
		analytics: SwallowAnalytics{},
		clock:     SystemClock{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		o.name = uuid.NewString()
	}

	e := &engine{
		name: o.name,
		accept: func(param any) error {
			if _, ok := typed[P](param); !ok {
				return parameterTypeError[P](o.name, param)
			}
			return nil
		},
		execute: func(ctx context.Context, param any) error {
			p, ok := typed[P](param)
			if !ok {
				return parameterTypeError[P](o.name, param)
			}
			return exec.Execute(ctx, p)
		},
		eligible: func(param any) bool {
			p, ok := typed[P](param)
			return ok && eligibility.CanExecute(p)
		},
		retry:     o.retry,
		throttle:  o.throttle,
		errors:    o.errors,
		analytics: o.analytics,
		clock:     o.clock,
	}

	return &Command[P]{e: e}, nil
}

// MustNew is like New but panics on error.
func MustNew[P any](exec Execution[P], eligibility Eligibility[P], opts ...Option) *Command[P] {
	c, err := New(exec, eligibility, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the command name.
func (c *Command[P]) Name() string {
	return c.e.name
}

// CanExecute reports whether the throttle admits another attempt and the
// eligibility strategy accepts param. It has no side effects.
func (c *Command[P]) CanExecute(param P) bool {
	return c.e.canExecute(param)
}

// Execute starts an invocation in a new goroutine and returns immediately.
// There is no way to wait for it: observe completion through Analytics or
// OnCanExecuteChanged.
func (c *Command[P]) Execute(param P) {
	c.e.launch(param)
}

// OnCanExecuteChanged subscribes fn to eligibility changes. fn is called from the
// goroutine running the command, once when an attempt starts executing and once
// after every attempt, including skipped ones. Callers should re-query CanExecute.
func (c *Command[P]) OnCanExecuteChanged(fn func()) (cancel func()) {
	return c.e.changed.add(fn)
}

// Invoker returns an untyped view of the command. A nil parameter reaches the
// strategies as the zero value of P. Any other parameter that is not a P is
// never eligible, and executing with it fails the attempt with ErrParameterType.
func (c *Command[P]) Invoker() Invoker {
	return c.e
}

// engine is the parameter-erased state machine behind Command.
type engine struct {
	name      string
	accept    func(param any) error
	execute   func(ctx context.Context, param any) error
	eligible  func(param any) bool
	retry     Retry
	throttle  Throttle
	errors    ErrorHandler
	analytics Analytics
	clock     Clock
	changed   observers

	mu      sync.Mutex
	pending []*async.ExecFuture
}

func (e *engine) Name() string {
	return e.name
}

func (e *engine) CanExecute(param any) bool {
	return e.canExecute(param)
}

func (e *engine) Execute(param any) {
	e.launch(param)
}

func (e *engine) OnCanExecuteChanged(fn func()) (cancel func()) {
	return e.changed.add(fn)
}

func (e *engine) canExecute(param any) bool {
	return e.throttle.CanStart() && e.eligible(param)
}

// launch runs one invocation asynchronously. The future is kept only so the
// engine can tell which invocations are still running.
func (e *engine) launch(param any) {
	f := async.Exec(WithCommandName(context.Background(), e.name), param, e.run)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = slices.DeleteFunc(e.pending, (*async.ExecFuture).IsComplete)
	e.pending = append(e.pending, f)
}

// wait blocks until every invocation launched so far has finished.
func (e *engine) wait() {
	e.mu.Lock()
	pending := slices.Clone(e.pending)
	e.mu.Unlock()

	_ = async.ExecAll(pending...)
}

// run is one top-level invocation: attempts until the retry policy says stop.
func (e *engine) run(ctx context.Context, param any) error {
	e.retry.ResetRetry()
	for e.retry.CanRetry() {
		e.attempt(ctx, param)
	}
	return nil
}

// attempt performs a single throttle- and eligibility-gated attempt.
// Cleanup runs on every path, including a panicking error handler.
func (e *engine) attempt(ctx context.Context, param any) {
	defer func() {
		e.throttle.MarkFinished()
		e.changed.notify()
	}()

	if err := e.try(ctx, param); err != nil {
		e.errors.HandleError(err, fmt.Sprintf("error executing command %s", e.name))
		e.analytics.TrackError(e.name, err, e.clock.Now())
	}
}

// try returns nil both on success and when the attempt is skipped as ineligible.
// The throttle slot is taken before the eligibility check, so a skipped attempt
// still counts as in flight until cleanup. Admission is read just before the
// slot is taken; the read and the increment are not atomic.
func (e *engine) try(ctx context.Context, param any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()

	e.retry.Retry()
	admitted := e.throttle.CanStart()
	e.throttle.MarkStarted()

	if err := e.accept(param); err != nil {
		return err
	}
	if !admitted || !e.eligible(param) {
		return nil
	}

	start := e.clock.Now()
	e.analytics.TrackStart(e.name, start)
	e.changed.notify()

	if err := e.execute(WithStartTime(ctx, start), param); err != nil {
		return err
	}

	e.analytics.TrackComplete(e.name, e.clock.Now())
	return nil
}

// typed converts an untyped parameter to P. nil converts to the zero value.
func typed[P any](param any) (P, bool) {
	if param == nil {
		var zero P
		return zero, true
	}
	p, ok := param.(P)
	return p, ok
}

func parameterTypeError[P any](name string, param any) error {
	return fmt.Errorf("%w: command %s takes %s, got %T", ErrParameterType, name, reflect.TypeFor[P](), param)
}

func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%w: %v", ErrExecutionPanicked, r)
}
