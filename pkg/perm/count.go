package perm

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
// This is the canonical input for demonstrating plans: applying a plan to
// Seq(n) shows directly where each position ends up.
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n! (n factorial), the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// Summed over all levels 0..n-1, the plan counts of n elements total
// Factorial(n). Note that factorials grow extremely fast: 21! exceeds
// 64-bit int, so results are exact only for n <= 20.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// Pairs returns the number of distinct index pairs (i, j) with
// 0 <= i < j <= n-1, which is n(n-1)/2. This equals the number of level-1
// plans for n elements.
//
// For n <= 1, Pairs returns 0.
func Pairs(n int) int {
	if n <= 1 {
		return 0
	}
	return n * (n - 1) / 2
}

// PairsFrom returns the number of distinct pairs whose first index is at
// least min. These are the swaps still available once the generation floor
// has risen to min.
//
// Negative min counts all pairs. When min exceeds n-2 no pair qualifies
// and PairsFrom returns 0.
func PairsFrom(n, min int) int {
	if min < 0 {
		min = 0
	}
	m := n - min
	if m <= 1 {
		return 0
	}
	return m * (m - 1) / 2
}

// PairsBelow returns the number of distinct pairs whose first index is
// strictly less than max.
//
// PairsBelow is the exact complement of [PairsFrom]: for any split point,
// every pair counts toward exactly one of the two.
func PairsBelow(n, max int) int {
	return Pairs(n) - PairsFrom(n, max)
}

// Plans returns the number of distinct level-l plans for n elements.
//
// Level l holds the plans of exactly l swaps in canonical form, so Plans
// predicts the exact length of the collection [Generate] returns for the
// same dimensions. Counting is total: dimensions with no plans (l < 0 or
// l > n-1) yield 0, and level 0 always counts the single identity plan.
//
// Counts grow factorially and are exact for n <= 20 (21! exceeds 64-bit
// int).
func Plans(n, l int) int {
	if l == 0 {
		return 1
	}
	if l < 0 || l > n-1 {
		return 0
	}
	return PlansFrom(n, l, 0)
}

// PlansFrom returns the number of level-l plans whose swaps draw their
// first index only from [min, n-2].
//
// This is the recurrence behind plan generation: fixing a first index i
// consumes one of the l swaps, leaves n-i-1 choices for its partner, and
// raises the floor for the remaining swaps to i+1:
//
//	PlansFrom(n, l, min) = sum of (n-i-1) * PlansFrom(n, l-1, i+1)
//	                       for i in [min, n-2]
//
// Level 0 counts one plan regardless of the floor. A floor beyond n-2
// leaves no usable first index, so positive levels count 0 there.
func PlansFrom(n, l, min int) int {
	if l == 0 {
		return 1
	}
	if l < 0 {
		return 0
	}
	if min < 0 {
		min = 0
	}
	total := 0
	for i := min; i <= n-2; i++ {
		total += (n - i - 1) * PlansFrom(n, l-1, i+1)
	}
	return total
}
