package command

import (
	"context"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/smartcommand/core/logger"
)

// ErrorHandler is invoked once per failed attempt with the failure and a message
// naming the command.
type ErrorHandler interface {
	HandleError(err error, message string)
}

// SwallowErrors ignores failures. It is the default handler.
type SwallowErrors struct{}

// HandleError does nothing.
func (SwallowErrors) HandleError(error, string) {}

// LogErrors writes failures to a structured logger at error level.
type LogErrors struct {
	logger *slog.Logger
}

// NewLogErrors creates a handler logging to l, or to slog.Default when l is nil.
func NewLogErrors(l *slog.Logger) *LogErrors {
	if l == nil {
		l = slog.Default()
	}
	return &LogErrors{logger: l}
}

// HandleError logs message with the error attached.
func (h *LogErrors) HandleError(err error, message string) {
	h.logger.LogAttrs(context.Background(), slog.LevelError, message, logger.Error(err))
}

// PanicError is the panic value raised by PanicOnError.
type PanicError struct {
	Message string
	Err     error
}

// Error implements error.
func (e *PanicError) Error() string {
	switch {
	case e.Err == nil:
		return e.Message
	case e.Message == "":
		return e.Err.Error()
	default:
		return e.Message + ": " + e.Err.Error()
	}
}

// Unwrap returns the original failure.
func (e *PanicError) Unwrap() error {
	return e.Err
}

// PanicOnError escalates every failure by panicking with a *PanicError.
// The command engine does not recover it: the panic takes down the goroutine
// running the command, and with it the process unless a supervisor recovers it.
type PanicOnError struct{}

// HandleError panics.
func (PanicOnError) HandleError(err error, message string) {
	panic(&PanicError{Message: message, Err: err})
}

// CompositeErrorHandler forwards every failure to a list of handlers in order.
// There is no isolation between them: a handler that panics, such as PanicOnError,
// stops the handlers after it from running.
type CompositeErrorHandler struct {
	handlers []ErrorHandler
}

// NewCompositeErrorHandler creates a composite of handlers. Nil entries are skipped.
func NewCompositeErrorHandler(handlers ...ErrorHandler) *CompositeErrorHandler {
	hs := make([]ErrorHandler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			hs = append(hs, h)
		}
	}
	return &CompositeErrorHandler{handlers: hs}
}

// HandleError calls every handler with the same arguments.
func (c *CompositeErrorHandler) HandleError(err error, message string) {
	for _, h := range c.handlers {
		h.HandleError(err, message)
	}
}

// Handlers returns a copy of the composed handlers.
func (c *CompositeErrorHandler) Handlers() []ErrorHandler {
	return slices.Clone(c.handlers)
}
