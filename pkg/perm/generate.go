package perm

import (
	"fmt"
	"slices"
)

// Generate returns all level-l plans for n elements.
//
// The result has exactly [Plans](n, l) entries, allocated once at that size.
// Generation order is deterministic: plans are ordered by their swaps, first
// index ascending, then second index ascending, depth first. Each returned
// plan is a separate allocation, safe to modify without affecting others.
//
// Generate returns ErrInvalidDimension when n < 1, l < 0, or l >= n. For
// l = 0 the result is a single empty plan, the identity.
//
// Plan sets grow factorially with n. For memory-efficient streaming without
// allocating all plans at once, use [GenerateFunc].
//
// Example:
//
//	plans, err := perm.Generate(4, 1)
//	// plans: P(0,1) P(0,2) P(0,3) P(1,2) P(1,3) P(2,3)
func Generate(n, l int) ([]Plan, error) {
	if err := checkDimensions(n, l); err != nil {
		return nil, err
	}

	plans := make([]Plan, 0, Plans(n, l))
	walk(n, l, 0, 0, make(Plan, l), func(p Plan) bool {
		plans = append(plans, slices.Clone(p))
		return true
	})
	return plans, nil
}

// GenerateFunc generates level-l plans one at a time via callback.
//
// GenerateFunc calls fn for each plan until fn returns false or the plan set
// is exhausted. The Plan passed to fn is a shared scratch buffer, valid only
// for the duration of the call. If the caller needs to retain the plan, it
// must copy it (e.g., with slices.Clone).
//
// GenerateFunc returns the number of plans passed to fn, including the one
// fn stopped on. If fn always returns true, the count equals [Plans](n, l).
// Generation order matches [Generate].
//
// Example:
//
//	// Inspect plans without materializing the whole level
//	seen := 0
//	perm.GenerateFunc(6, 3, func(p perm.Plan) bool {
//		seen++
//		return seen < 100 // stop after 100
//	})
func GenerateFunc(n, l int, fn func(Plan) bool) (int, error) {
	if err := checkDimensions(n, l); err != nil {
		return 0, err
	}

	count := 0
	walk(n, l, 0, 0, make(Plan, l), func(p Plan) bool {
		count++
		return fn(p)
	})
	return count, nil
}

// checkDimensions validates a requested plan set. Levels run 0..n-1, so a
// valid request needs n >= 1 and 0 <= l <= n-1.
func checkDimensions(n, l int) error {
	if n < 1 || l < 0 || l > n-1 {
		return fmt.Errorf("no plan set for %d elements at level %d: %w", n, l, ErrInvalidDimension)
	}
	return nil
}

// walk fills scratch[x:] with every canonical completion whose first indices
// start at or above floor, emitting the full scratch plan at each leaf.
// The bound i+remaining <= n-1 skips first indices that leave too few higher
// indices for the swaps still to be placed. Returns false if emit stopped
// the walk.
func walk(n, l, x, floor int, scratch Plan, emit func(Plan) bool) bool {
	if x == l {
		return emit(scratch)
	}

	remaining := l - x
	for i := floor; i+remaining <= n-1; i++ {
		for j := i + 1; j < n; j++ {
			scratch[x] = Pair{First: i, Second: j}
			if !walk(n, l, x+1, i+1, scratch, emit) {
				return false
			}
		}
	}
	return true
}
