// Package async provides a minimal future for error-only asynchronous work.
//
// ExecFuture is the unit-of-work type that asynchronous command methods return:
// a method shaped func(P) *async.ExecFuture is awaited by the command engine, and
// the engine itself runs every Execute call through Exec so the caller never
// blocks.
//
// # Usage
//
//	future := async.Exec(ctx, userID, func(ctx context.Context, id int) error {
//		return notify(ctx, id)
//	})
//
//	// Do other work...
//
//	if err := future.Await(); err != nil {
//		log.Printf("notify failed: %v", err)
//	}
//
// Already-completed work can be expressed with Resolved:
//
//	func (s *Service) Refresh() *async.ExecFuture {
//		if s.fresh() {
//			return async.Resolved(nil)
//		}
//		return async.Exec(context.Background(), s, (*Service).reload)
//	}
//
// ExecAll drains every future and reports the first error in argument order.
//
// # Panics
//
// Exec does not recover. A panic in the function crashes the program like any
// other goroutine panic, which is what lets a command's panic-on-error handler
// reach the process.
//
// # Context
//
// A context that is already canceled when the goroutine starts settles the future
// with ctx.Err() and the function is never called. Cancellation after that point
// is up to the function itself.
package async
