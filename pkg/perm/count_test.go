package perm

import (
	"testing"

	"gonum.org/v1/gonum/stat/combin"
)

func TestPairs(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{-1, 0},
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 3},
		{4, 6},
		{6, 15},
		{10, 45},
	}

	for _, tt := range tests {
		if got := Pairs(tt.n); got != tt.want {
			t.Errorf("Pairs(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestPairsMatchesBinomial(t *testing.T) {
	for n := 2; n <= 12; n++ {
		if got, want := Pairs(n), combin.Binomial(n, 2); got != want {
			t.Errorf("Pairs(%d) = %d, want C(%d,2) = %d", n, got, n, want)
		}
	}
}

func TestPairsFrom(t *testing.T) {
	tests := []struct {
		n, min int
		want   int
	}{
		{4, 0, 6},  // all pairs
		{4, 1, 3},  // (1,2) (1,3) (2,3)
		{4, 2, 1},  // (2,3)
		{4, 3, 0},  // no first index left
		{4, 9, 0},  // floor beyond range
		{4, -5, 6}, // negative floor counts everything
		{0, 0, 0},
		{1, 0, 0},
	}

	for _, tt := range tests {
		if got := PairsFrom(tt.n, tt.min); got != tt.want {
			t.Errorf("PairsFrom(%d, %d) = %d, want %d", tt.n, tt.min, got, tt.want)
		}
	}
}

func TestPairsBelow(t *testing.T) {
	tests := []struct {
		n, max int
		want   int
	}{
		{4, 0, 0},
		{4, 1, 3},  // (0,1) (0,2) (0,3)
		{4, 2, 5},  // everything except (2,3)
		{4, 3, 6},  // all pairs
		{4, 9, 6},  // max beyond range still counts all
		{4, -1, 0}, // nothing below a negative split
		{0, 2, 0},
	}

	for _, tt := range tests {
		if got := PairsBelow(tt.n, tt.max); got != tt.want {
			t.Errorf("PairsBelow(%d, %d) = %d, want %d", tt.n, tt.max, got, tt.want)
		}
	}
}

func TestPairsSplitIsExact(t *testing.T) {
	// Any split point partitions the pair set exactly.
	for n := 0; n <= 8; n++ {
		for split := -1; split <= n+1; split++ {
			below, from := PairsBelow(n, split), PairsFrom(n, split)
			if below+from != Pairs(n) {
				t.Errorf("n=%d split=%d: below %d + from %d != total %d",
					n, split, below, from, Pairs(n))
			}
		}
	}
}

func TestPlansKnownLevels(t *testing.T) {
	tests := []struct {
		n    int
		want []int // counts for levels 0..n-1
	}{
		{1, []int{1}},
		{2, []int{1, 1}},
		{3, []int{1, 3, 2}},
		{4, []int{1, 6, 11, 6}},
		{5, []int{1, 10, 35, 50, 24}},
		{6, []int{1, 15, 85, 225, 274, 120}},
	}

	for _, tt := range tests {
		for l, want := range tt.want {
			if got := Plans(tt.n, l); got != want {
				t.Errorf("Plans(%d, %d) = %d, want %d", tt.n, l, got, want)
			}
		}
	}
}

func TestPlansEdges(t *testing.T) {
	tests := []struct {
		n, l int
		want int
	}{
		{0, 0, 1},  // level 0 is always the identity
		{5, 0, 1},
		{5, -1, 0}, // no negative levels
		{5, 5, 0},  // levels stop at n-1
		{5, 99, 0},
		{1, 1, 0},
	}

	for _, tt := range tests {
		if got := Plans(tt.n, tt.l); got != tt.want {
			t.Errorf("Plans(%d, %d) = %d, want %d", tt.n, tt.l, got, tt.want)
		}
	}
}

func TestPlansLevelOneIsPairs(t *testing.T) {
	for n := 1; n <= 10; n++ {
		if got, want := Plans(n, 1), Pairs(n); got != want {
			t.Errorf("Plans(%d, 1) = %d, want Pairs(%d) = %d", n, got, n, want)
		}
	}
}

func TestPlansSumToFactorial(t *testing.T) {
	// Each of the n! arrangements is produced by exactly one plan at
	// exactly one level, so the level counts must total n!.
	for n := 1; n <= 8; n++ {
		total := 0
		for l := 0; l < n; l++ {
			total += Plans(n, l)
		}
		if total != Factorial(n) {
			t.Errorf("n=%d: level counts sum to %d, want %d", n, total, Factorial(n))
		}
	}
}

func TestPlansFrom(t *testing.T) {
	tests := []struct {
		n, l, min int
		want      int
	}{
		{4, 1, 0, 6}, // no floor: every single swap
		{4, 1, 1, 3},
		{4, 1, 2, 1},
		{4, 1, 3, 0}, // floor beyond last usable first index
		{4, 2, 1, 2}, // P(1,2)P(2,3) and P(1,3)P(2,3)
		{4, 0, 3, 1}, // level 0 ignores the floor
		{4, -1, 0, 0},
		{6, 2, 0, 85},
	}

	for _, tt := range tests {
		if got := PlansFrom(tt.n, tt.l, tt.min); got != tt.want {
			t.Errorf("PlansFrom(%d, %d, %d) = %d, want %d", tt.n, tt.l, tt.min, got, tt.want)
		}
	}
}

func TestPlansFromUnbounded(t *testing.T) {
	// With the floor at 0 (or below), PlansFrom counts the whole level.
	for n := 1; n <= 7; n++ {
		for l := 1; l < n; l++ {
			if got, want := PlansFrom(n, l, 0), Plans(n, l); got != want {
				t.Errorf("PlansFrom(%d, %d, 0) = %d, want %d", n, l, got, want)
			}
			if got, want := PlansFrom(n, l, -3), Plans(n, l); got != want {
				t.Errorf("PlansFrom(%d, %d, -3) = %d, want %d", n, l, got, want)
			}
		}
	}
}

func TestFactorial(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{-1, 1},
		{0, 1},
		{1, 1},
		{4, 24},
		{6, 720},
		{10, 3628800},
	}

	for _, tt := range tests {
		if got := Factorial(tt.n); got != tt.want {
			t.Errorf("Factorial(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestSeq(t *testing.T) {
	seq := Seq(4)
	want := []int{0, 1, 2, 3}
	if len(seq) != len(want) {
		t.Fatalf("Seq(4) length = %d, want %d", len(seq), len(want))
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Errorf("Seq(4)[%d] = %d, want %d", i, seq[i], want[i])
		}
	}

	if got := Seq(0); len(got) != 0 {
		t.Errorf("Seq(0) should be empty, got %v", got)
	}
	if got := Seq(-2); len(got) != 0 {
		t.Errorf("Seq(-2) should be empty, got %v", got)
	}
}
