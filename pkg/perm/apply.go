package perm

import "slices"

// Apply returns a copy of s with the plan's swaps applied left to right.
//
// The input slice is never modified. Every pair is validated against len(s)
// before any swap happens, so a failed Apply does no partial work; the
// returned error wraps ErrIndexOutOfRange. The empty plan returns an
// unmodified copy.
//
// Apply is generic over the element type:
//
//	out, err := perm.Apply([]string{"a", "b", "c"}, plan)
//
// Swap sequences are executed exactly as written; Apply does not detect or
// cancel redundant swaps such as P(0,1) P(0,1).
func Apply[S ~[]E, E any](s S, plan Plan) (S, error) {
	if err := plan.Validate(len(s)); err != nil {
		return nil, err
	}

	out := slices.Clone(s)
	for _, p := range plan {
		out[p.First], out[p.Second] = out[p.Second], out[p.First]
	}
	return out, nil
}
