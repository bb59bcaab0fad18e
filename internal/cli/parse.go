package cli

import (
	"io"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/matzehuels/swapstack/pkg/errors"
	"github.com/matzehuels/swapstack/pkg/perm"
	"github.com/matzehuels/swapstack/pkg/pipeline"
)

// parsePlan parses a plan string like "0:1 1:2" into a sequence of swap
// pairs. Pairs are separated by whitespace; each pair is two element indices
// separated by a colon, applied left to right. An empty string yields the
// empty (identity) plan.
func parsePlan(s string) (perm.Plan, error) {
	fields := strings.Fields(s)
	plan := make(perm.Plan, 0, len(fields))

	for _, field := range fields {
		first, second, ok := strings.Cut(field, ":")
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidPlan,
				"bad pair %q (expected first:second)", field)
		}
		a, err := strconv.Atoi(first)
		if err != nil {
			return nil, apperrors.New(apperrors.ErrCodeInvalidPlan,
				"bad index %q in pair %q", first, field)
		}
		b, err := strconv.Atoi(second)
		if err != nil {
			return nil, apperrors.New(apperrors.ErrCodeInvalidPlan,
				"bad index %q in pair %q", second, field)
		}
		if a < 0 || b < 0 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidPlan,
				"negative index in pair %q", field)
		}
		if a == b {
			return nil, apperrors.New(apperrors.ErrCodeInvalidPlan,
				"pair %q swaps an index with itself", field)
		}
		plan = append(plan, perm.Pair{First: a, Second: b})
	}

	return plan, nil
}

// parseItems splits a comma-separated item list, trimming whitespace around
// each item. Empty entries are dropped; an empty string yields nil.
func parseItems(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			items = append(items, t)
		}
	}
	return items
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeArtifact writes data to path, creating or truncating the file.
func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.Write(data)
	return err
}
