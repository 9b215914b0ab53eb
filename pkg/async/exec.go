package async

import "context"

// ExecFuture is the handle of an asynchronous unit of work that yields only an error.
// A future settles exactly once; every Await after that returns the same error.
type ExecFuture struct {
	err  error
	done chan struct{}
}

// Resolved returns a future that is already settled with err.
// Useful for methods that complete synchronously but expose the async shape.
func Resolved(err error) *ExecFuture {
	f := &ExecFuture{err: err, done: make(chan struct{})}
	close(f.done)
	return f
}

// Await blocks until the future settles and returns its error.
func (f *ExecFuture) Await() error {
	<-f.done
	return f.err
}

// IsComplete reports whether the future has settled without blocking.
func (f *ExecFuture) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Exec runs fn(ctx, param) in a new goroutine and returns its future.
// A context that is already canceled settles the future with ctx.Err() without calling fn.
// Panics are not recovered.
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *ExecFuture {
	f := &ExecFuture{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.err = fn(ctx, param)
	}()

	return f
}

// ExecAll waits for every future and returns the first non-nil error in argument order.
// Unlike a short-circuit wait it always drains all futures.
func ExecAll(futures ...*ExecFuture) error {
	var first error
	for _, f := range futures {
		if f == nil {
			continue
		}
		if err := f.Await(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
