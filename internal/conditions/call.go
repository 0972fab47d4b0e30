package conditions

import (
	"context"
	"time"
)

type result[T any] struct {
	val T
	err error
}

// callWithTimeout runs fn in its own goroutine. It returns as soon as fn
// finishes or the deadline passes; a late result is dropped into the
// buffered channel and discarded.
func callWithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch := make(chan result[T], 1)
	go func() {
		v, err := fn(ctx)
		ch <- result[T]{v, err}
	}()

	select {
	case r := <-ch:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
