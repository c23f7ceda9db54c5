// Package workers runs bounded fan-out jobs for request handlers.
package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultLimit is the concurrency used when a caller passes limit <= 0.
const DefaultLimit = 8

// Each calls fn(ctx, i) for every i in [0, n) with at most limit calls in
// flight, and returns once all of them have finished. fn reports per-item
// failures itself; Each never stops early. If ctx is cancelled, items that
// have not started yet are skipped and ctx.Err() is returned.
func Each(ctx context.Context, limit, n int, fn func(ctx context.Context, i int)) error {
	if limit <= 0 {
		limit = DefaultLimit
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			fn(gctx, i)
			return nil
		})
	}
	_ = g.Wait()
	return ctx.Err()
}
