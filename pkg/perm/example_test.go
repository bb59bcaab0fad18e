package perm_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/swapstack/pkg/perm"
)

func ExampleGenerate() {
	// Every plan with exactly one swap for 3 elements
	plans, _ := perm.Generate(3, 1)
	for _, p := range plans {
		fmt.Println(p)
	}
	// Output:
	// P(0,1)
	// P(0,2)
	// P(1,2)
}

func ExampleGenerate_deepestLevel() {
	// At level n-1 every first index 0..n-2 is used exactly once
	plans, _ := perm.Generate(3, 2)
	for _, p := range plans {
		fmt.Println(p)
	}
	// Output:
	// P(0,1) P(1,2)
	// P(0,2) P(1,2)
}

func ExamplePlans() {
	// Count plans per level without generating them
	for l := 0; l < 4; l++ {
		fmt.Printf("L%d: %d\n", l, perm.Plans(4, l))
	}
	// Output:
	// L0: 1
	// L1: 6
	// L2: 11
	// L3: 6
}

func ExamplePlans_total() {
	// The levels partition the arrangements, so counts sum to n!
	total := 0
	for l := 0; l < 5; l++ {
		total += perm.Plans(5, l)
	}
	fmt.Println(total == perm.Factorial(5))
	// Output:
	// true
}

func ExampleApply() {
	plan := perm.Plan{{First: 0, Second: 1}, {First: 1, Second: 2}}
	out, _ := perm.Apply(perm.Seq(4), plan)
	fmt.Println(plan, "=", out)
	// Output:
	// P(0,1) P(1,2) = [1 2 0 3]
}

func ExampleApply_labels() {
	// Apply works on any slice type
	stack := []string{"base", "mid", "top"}
	out, _ := perm.Apply(stack, perm.Plan{{First: 0, Second: 2}})
	fmt.Println(out)
	// Output:
	// [top mid base]
}

func ExampleGenerateFunc() {
	// Visit plans one at a time, stopping after the first three
	seen := 0
	perm.GenerateFunc(4, 2, func(p perm.Plan) bool {
		fmt.Println(p)
		seen++
		return seen < 3
	})
	// Output:
	// P(0,1) P(1,2)
	// P(0,1) P(1,3)
	// P(0,1) P(2,3)
}

func ExampleGenerateParallel() {
	// Same plan set as Generate, sharded across goroutines
	plans, _ := perm.GenerateParallel(context.Background(), 4, 3, 2)
	fmt.Println("plans:", len(plans))
	fmt.Println("first:", plans[0])
	// Output:
	// plans: 6
	// first: P(0,1) P(1,2) P(2,3)
}

func ExampleFactorial() {
	fmt.Println("4! =", perm.Factorial(4))
	fmt.Println("5! =", perm.Factorial(5))
	// Output:
	// 4! = 24
	// 5! = 120
}

func ExampleSeq() {
	// Create a sequence [0, 1, 2, ..., n-1]
	seq := perm.Seq(5)
	fmt.Println(seq)
	// Output:
	// [0 1 2 3 4]
}

func ExamplePairsFrom() {
	// Pairs whose first index is at least 2, out of 5 elements
	fmt.Println(perm.PairsFrom(5, 2))
	// Output:
	// 3
}
