// Package perm enumerates swap plans: ordered sequences of pairwise index
// exchanges that rearrange a sequence, organized by level.
//
// # Overview
//
// Every arrangement of n elements can be produced by composing swaps of two
// indices. The same arrangement is reachable through many different swap
// sequences, so naive enumeration drowns in duplicates. This package
// enumerates exactly one swap sequence per reachable arrangement:
//
//   - [Plans], [PlansFrom], [Pairs]: counting functions that predict plan
//     set sizes before anything is generated
//   - [Generate], [GenerateFunc], [GenerateParallel]: duplicate-free plan
//     enumeration, pre-sized via the counters
//   - [Apply]: plan execution against an arbitrary slice
//
// # Levels
//
// The level of a plan is the number of swaps it performs. Level 0 holds the
// single identity plan, level 1 the single swaps, and so on up to level n-1.
// For 4 elements:
//
//	L0:  1 plan   (identity)
//	L1:  6 plans  P(0,1) P(0,2) P(0,3) P(1,2) P(1,3) P(2,3)
//	L2: 11 plans
//	L3:  6 plans
//
// The level counts total 4! = 24: each of the 24 arrangements is produced by
// exactly one plan at exactly one level.
//
// # Canonical form
//
// Duplicates are eliminated structurally. Within a plan, swaps are stored in
// application order and their first indices strictly increase; the second
// index of each swap is always the larger of its two. Generation enforces
// the form with a rising floor: after a swap with first index i, the
// remaining swaps choose their first index from i+1 upward. No set lookups
// or post-hoc deduplication are involved.
//
// # Counting before generating
//
// [Plans] computes the exact size of any plan set, so [Generate] allocates
// its result once at the final size and [GenerateParallel] can carve the
// result into disjoint per-worker regions up front. Counts grow factorially;
// they are exact for n <= 20 and the generators are practical for much
// smaller n.
//
// # Basic usage
//
//	plans, err := perm.Generate(4, 2)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, p := range plans {
//		out, _ := perm.Apply([]rune("abcd"), p)
//		fmt.Printf("%s = %s\n", p, string(out))
//	}
package perm
