// Package pool parallelizes work across the independent K-dimension of
// a dealer ceremony or a batch of online comparisons (spec §5): K
// instances never share state, so the natural unit of concurrency is
// one goroutine per instance, capped at GOMAXPROCS and short-circuited
// on first error via golang.org/x/sync/errgroup, the teacher's go.mod
// dependency for exactly this kind of fan-out/cancel-on-error job
// (unused by any file in the teacher repo itself — this package is new
// code written to actually exercise it).
package pool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Run executes fn(0), fn(1), ..., fn(n-1) concurrently, capped at
// runtime.GOMAXPROCS(0) simultaneous calls, and returns the first error
// any call returns (canceling the rest via ctx).
func Run(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return fn(ctx, i)
		})
	}

	return g.Wait()
}

// Map runs fn over every input concurrently (same concurrency cap as
// Run) and collects the results in input order, or returns the first
// error.
func Map[In, Out any](ctx context.Context, in []In, fn func(ctx context.Context, i int, v In) (Out, error)) ([]Out, error) {
	out := make([]Out, len(in))
	err := Run(ctx, len(in), func(ctx context.Context, i int) error {
		v, err := fn(ctx, i, in[i])
		if err != nil {
			return err
		}
		out[i] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
