package perm

import (
	"errors"
	"slices"
	"testing"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		plan Plan
		want []int
	}{
		{
			name: "identity",
			in:   []int{0, 1, 2, 3},
			plan: Plan{},
			want: []int{0, 1, 2, 3},
		},
		{
			name: "single swap",
			in:   []int{0, 1, 2, 3},
			plan: Plan{{First: 0, Second: 1}},
			want: []int{1, 0, 2, 3},
		},
		{
			name: "two swaps chain",
			in:   []int{0, 1, 2, 3},
			plan: Plan{{First: 0, Second: 1}, {First: 1, Second: 2}},
			want: []int{1, 2, 0, 3},
		},
		{
			name: "swap at far end",
			in:   []int{0, 1, 2, 3},
			plan: Plan{{First: 2, Second: 3}},
			want: []int{0, 1, 3, 2},
		},
		{
			name: "full reversal of three",
			in:   []int{0, 1, 2},
			plan: Plan{{First: 0, Second: 2}},
			want: []int{2, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.in, tt.plan)
			if err != nil {
				t.Fatalf("Apply returned error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Apply(%v, %s) = %v, want %v", tt.in, tt.plan, got, tt.want)
			}
		})
	}
}

func TestApplyStrings(t *testing.T) {
	in := []string{"red", "green", "blue"}
	got, err := Apply(in, Plan{{First: 0, Second: 1}, {First: 1, Second: 2}})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	want := []string{"green", "blue", "red"}
	if !slices.Equal(got, want) {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}

func TestApplyDoesNotMutate(t *testing.T) {
	in := []int{0, 1, 2, 3}
	if _, err := Apply(in, Plan{{First: 0, Second: 3}, {First: 1, Second: 2}}); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !slices.Equal(in, []int{0, 1, 2, 3}) {
		t.Errorf("input mutated to %v", in)
	}
}

func TestApplyOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		plan Plan
	}{
		{"second beyond end", Plan{{First: 0, Second: 3}}},
		{"first beyond end", Plan{{First: 5, Second: 6}}},
		{"negative first", Plan{{First: -1, Second: 1}}},
		{"valid then invalid", Plan{{First: 0, Second: 1}, {First: 1, Second: 9}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []int{0, 1, 2}
			out, err := Apply(in, tt.plan)
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("Apply error = %v, want ErrIndexOutOfRange", err)
			}
			if out != nil {
				t.Errorf("Apply returned %v on error, want nil", out)
			}
			if !slices.Equal(in, []int{0, 1, 2}) {
				t.Errorf("input mutated to %v on rejected plan", in)
			}
		})
	}
}

func TestPlanValidate(t *testing.T) {
	tests := []struct {
		name    string
		plan    Plan
		n       int
		wantErr bool
	}{
		{"empty plan always fits", Plan{}, 0, false},
		{"fits exactly", Plan{{First: 0, Second: 2}}, 3, false},
		{"second out of bounds", Plan{{First: 0, Second: 3}}, 3, true},
		{"negative index", Plan{{First: -2, Second: 1}}, 3, true},
		{"later pair out of bounds", Plan{{First: 0, Second: 1}, {First: 2, Second: 4}}, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate(tt.n)
			if tt.wantErr && !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("Validate(%d) error = %v, want ErrIndexOutOfRange", tt.n, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate(%d) returned unexpected error: %v", tt.n, err)
			}
		})
	}
}

func TestPairString(t *testing.T) {
	if got, want := (Pair{First: 0, Second: 1}).String(), "P(0,1)"; got != want {
		t.Errorf("Pair.String() = %q, want %q", got, want)
	}
	if got, want := (Pair{First: 12, Second: 19}).String(), "P(12,19)"; got != want {
		t.Errorf("Pair.String() = %q, want %q", got, want)
	}
}

func TestPlanString(t *testing.T) {
	tests := []struct {
		plan Plan
		want string
	}{
		{Plan{}, "identity"},
		{nil, "identity"},
		{Plan{{First: 0, Second: 1}}, "P(0,1)"},
		{Plan{{First: 0, Second: 2}, {First: 1, Second: 2}}, "P(0,2) P(1,2)"},
	}

	for _, tt := range tests {
		if got := tt.plan.String(); got != tt.want {
			t.Errorf("Plan.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPlanLevel(t *testing.T) {
	if got := (Plan{}).Level(); got != 0 {
		t.Errorf("empty plan level = %d, want 0", got)
	}
	if got := (Plan{{First: 0, Second: 1}, {First: 1, Second: 3}}).Level(); got != 2 {
		t.Errorf("two swap plan level = %d, want 2", got)
	}
}
