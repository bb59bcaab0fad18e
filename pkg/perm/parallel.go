package perm

import (
	"context"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// GenerateParallel produces the same plan collection as [Generate] using
// multiple goroutines.
//
// The plan set is sharded by the first index of the opening swap. [PlansFrom]
// predicts the exact size of every shard, so each worker writes into its own
// pre-sized region of the shared result and the workers never contend. The
// returned collection is element-for-element identical to Generate(n, l),
// including order.
//
// workers bounds the number of shards generated concurrently; values <= 0
// use runtime.GOMAXPROCS(0). Cancellation of ctx is observed between shards
// and surfaces as the context's error.
//
// Sharding only pays off for large plan sets; for small n, [Generate] is
// faster.
func GenerateParallel(ctx context.Context, n, l, workers int) ([]Plan, error) {
	if err := checkDimensions(n, l); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	plans := make([]Plan, Plans(n, l))
	if l == 0 {
		plans[0] = Plan{}
		return plans, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	offset := 0
	for i := 0; i+l <= n-1; i++ {
		first := i
		start := offset
		span := (n - i - 1) * PlansFrom(n, l-1, i+1)
		offset += span
		if span == 0 {
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			shard := plans[start : start+span]
			cursor := 0
			scratch := make(Plan, l)
			for j := first + 1; j < n; j++ {
				scratch[0] = Pair{First: first, Second: j}
				walk(n, l, 1, first+1, scratch, func(p Plan) bool {
					shard[cursor] = slices.Clone(p)
					cursor++
					return true
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}
