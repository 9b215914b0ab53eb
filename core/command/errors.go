package command

import "errors"

var (
	// ErrNilExecution is returned by New when no execution strategy is given.
	ErrNilExecution = errors.New("execution strategy is required")

	// ErrParameterType is reported through the error handler when an untyped
	// invocation passes a parameter the command cannot accept.
	ErrParameterType = errors.New("command parameter has the wrong type")

	// ErrExecutionPanicked wraps non-error panic values recovered from an attempt.
	// Panics carrying an error are reported as that error.
	ErrExecutionPanicked = errors.New("command execution panicked")
)
