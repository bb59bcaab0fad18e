package perm

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for plan generation and execution.
var (
	// ErrInvalidDimension is returned when plan generation is requested for
	// dimensions that define no plan set: n < 1, l < 0, or l >= n.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrIndexOutOfRange is returned when a plan references an index outside
	// the bounds of the sequence it is applied to.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidPair is returned when a decoded pair violates the structural
	// form 0 <= First < Second.
	ErrInvalidPair = errors.New("invalid pair")
)

// Pair identifies two sequence positions to exchange. In generated plans
// First is always the smaller of the two indices.
type Pair struct {
	First  int `json:"first"`
	Second int `json:"second"`
}

// String renders the pair in swap notation, e.g. "P(0,1)".
func (p Pair) String() string {
	return fmt.Sprintf("P(%d,%d)", p.First, p.Second)
}

// Plan is an ordered sequence of index swaps, applied left to right.
//
// Generated plans are canonical: their first indices strictly increase in
// stored order. Hand-built plans may have any shape; [Apply] only requires
// indices to be in bounds.
//
// The zero-length Plan is the identity and leaves any sequence unchanged.
type Plan []Pair

// Level returns the number of swaps in the plan.
func (p Plan) Level() int {
	return len(p)
}

// String renders the plan as its swaps in application order, e.g.
// "P(0,1) P(1,2)". The empty plan renders as "identity".
func (p Plan) String() string {
	if len(p) == 0 {
		return "identity"
	}
	parts := make([]string, len(p))
	for i, pair := range p {
		parts[i] = pair.String()
	}
	return strings.Join(parts, " ")
}

// Validate checks that every pair addresses a valid position of a sequence
// with n elements. It returns an error wrapping ErrIndexOutOfRange for the
// first violating pair, or nil if the plan can be applied.
func (p Plan) Validate(n int) error {
	for i, pair := range p {
		if pair.First < 0 || pair.First >= n || pair.Second < 0 || pair.Second >= n {
			return fmt.Errorf("pair %d %s exceeds bounds [0, %d]: %w", i, pair, n-1, ErrIndexOutOfRange)
		}
	}
	return nil
}

// checkShape verifies the structural invariant of canonical pairs,
// 0 <= First < Second. Used when decoding plans from external data.
func (p Plan) checkShape() error {
	for i, pair := range p {
		if pair.First < 0 || pair.Second <= pair.First {
			return fmt.Errorf("pair %d %s: %w", i, pair, ErrInvalidPair)
		}
	}
	return nil
}
