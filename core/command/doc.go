// Package command provides an asynchronous command abstraction for UI-style
// actions: a unit of work with an eligibility check, bounded retries, a
// concurrency throttle, pluggable error handling and lifecycle analytics.
//
// A Command is built from six strategies. Only the execution strategy is
// required; the rest have defaults:
//
//   - Execution: the work itself (required)
//   - Eligibility: parameter-based CanExecute predicate (AlwaysEligible)
//   - Retry: attempt budget per invocation (CountedRetry with one attempt)
//   - Throttle: in-flight admission (CountedThrottle with one slot)
//   - ErrorHandler: failure sink (SwallowErrors)
//   - Analytics: lifecycle observer (SwallowAnalytics)
//
// # Quick Start
//
//	import "github.com/dmitrymomot/smartcommand/core/command"
//
//	save, err := command.New(
//	    command.Sync(func(doc Document) error { return store.Save(doc) }),
//	    command.NewEligibilityFunc(func(doc Document) bool { return doc.Dirty }),
//	    command.WithName("save-document"),
//	    command.WithRetry(command.NewCountedRetry(3)),
//	    command.WithErrorHandler(command.NewLogErrors(log)),
//	    command.WithAnalytics(command.NewLogAnalytics(log, slog.LevelInfo)),
//	)
//	if err != nil {
//	    return err
//	}
//
//	cancel := save.OnCanExecuteChanged(func() {
//	    button.SetEnabled(save.CanExecute(current))
//	})
//	defer cancel()
//
//	save.Execute(current)
//
// # Invocation
//
// Execute returns immediately. The invocation runs in its own goroutine and
// repeats attempts while the retry policy allows. Each attempt:
//
//  1. records the attempt with the retry policy
//  2. reads throttle admission, then marks the throttle slot as taken
//  3. skips to cleanup when admission or eligibility fails
//  4. tracks "started", notifies observers, runs the execution strategy
//  5. tracks "completed" on success, or calls the error handler and tracks
//     "failed" on error or panic
//  6. always releases the throttle slot and notifies observers
//
// The loop never stops early on success: with NewCountedRetry(3) a command
// whose work always succeeds runs three times per Execute. Use the retry
// budget as an attempt count, not as a failure-only retry.
//
// A skipped attempt still consumes retry budget and still holds its throttle
// slot until cleanup, so observers see the same notification pattern for
// skipped and executed attempts.
//
// # Errors and Panics
//
// Errors returned by the execution strategy and panics raised by it are both
// routed to the ErrorHandler. A panic carrying an error is reported as that
// error; any other value is wrapped in ErrExecutionPanicked.
//
// The ErrorHandler itself runs outside that recovery. PanicOnError therefore
// escalates to the goroutine running the command: cleanup still runs, then the
// panic propagates. Compose handlers with NewCompositeErrorHandler; a panicking
// member stops the ones after it.
//
// # Analytics
//
// Three implementations are provided besides SwallowAnalytics:
//
//   - LogAnalytics writes "command started", "command completed" and
//     "command failed" records to a *slog.Logger
//   - MetricsAnalytics records OpenTelemetry counters
//   - PrometheusAnalytics registers Prometheus collectors
//
// Timestamps come from the command's Clock, which defaults to UTC wall time.
//
// # Concurrency
//
// Each Command owns its retry and throttle state. Concurrent Execute calls on
// the same command share that state: the retry counter is reset by every
// invocation, and throttle admission is a plain read followed by an increment,
// so two invocations racing each other can briefly exceed the throttle limit.
//
// # Untyped Access
//
// Command.Invoker returns an Invoker that accepts parameters as any. Binding
// helpers in core/binder use it to assign commands whose parameter type is
// only known at runtime.
//
// # Context Values
//
// The execution strategy receives a context carrying the command name and the
// attempt start time:
//
//	command.ExecutionFunc[Document](func(ctx context.Context, doc Document) error {
//	    log.Info("saving", "command", command.CommandName(ctx), "since", command.StartTime(ctx))
//	    return store.Save(doc)
//	})
package command
