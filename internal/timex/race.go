package timex

import (
	"context"
	"time"
)

// ErrDeadlineExceeded is returned by Race when the operation did not finish
// within its budget. Distinct from context.DeadlineExceeded so callers can
// tell "our budget fired" from "an outer deadline fired".
var ErrDeadlineExceeded = errDeadline{}

type errDeadline struct{}

func (errDeadline) Error() string   { return "operation deadline exceeded" }
func (errDeadline) Timeout() bool   { return true }
func (errDeadline) Temporary() bool { return true }

// Race runs op with a context that is cancelled after limit, and returns as
// soon as either the operation finishes or the budget elapses. A losing
// operation keeps running briefly on its own goroutine but its result is
// discarded, so late completions can never leak effects into the caller.
//
// If the parent context is cancelled first, its error is returned unchanged
// so callers can distinguish user cancellation from a lost race.
func Race[T any](ctx context.Context, limit time.Duration, op func(context.Context) (T, error)) (T, error) {
	opCtx, cancel := context.WithCancel(ctx)

	type outcome struct {
		v   T
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		v, err := op(opCtx)
		done <- outcome{v: v, err: err}
	}()

	timer := time.NewTimer(limit)
	defer timer.Stop()

	var zero T
	select {
	case out := <-done:
		cancel()
		return out.v, out.err
	case <-timer.C:
		cancel()
		return zero, ErrDeadlineExceeded
	case <-ctx.Done():
		cancel()
		return zero, ctx.Err()
	}
}
