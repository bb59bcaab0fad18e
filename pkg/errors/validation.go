package errors

import (
	"strings"
	"unicode"
)

// MaxElements caps the element count accepted from user input. Factorials
// past 20 overflow int64, so counts and totals stop being exact there.
const MaxElements = 20

// MaxItemLength caps the length of a single item label from user input.
const MaxItemLength = 256

// ValidateElementCount validates an element count from user input.
//
// Counts must be at least 1 and at most [MaxElements]. The library packages
// accept larger counts; this bound exists so CLI and API requests cannot
// trigger overflowing totals or runaway plan sets.
func ValidateElementCount(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidDimension, "element count must be at least 1, got %d", n)
	}
	if n > MaxElements {
		return New(ErrCodeInvalidDimension, "element count must be at most %d, got %d", MaxElements, n)
	}
	return nil
}

// ValidateLevel validates a plan level for n elements. Levels run 0..n-1.
func ValidateLevel(n, l int) error {
	if err := ValidateElementCount(n); err != nil {
		return err
	}
	if l < 0 || l > n-1 {
		return New(ErrCodeInvalidDimension, "level must be in 0..%d for %d elements, got %d", n-1, n, l)
	}
	return nil
}

// ValidateItems validates a user-supplied item list.
//
// The validation rules are intentionally conservative:
//   - At least 1 and at most [MaxElements] items
//   - No empty items
//   - No control characters
//   - Maximum item length of [MaxItemLength] characters
func ValidateItems(items []string) error {
	if len(items) == 0 {
		return New(ErrCodeInvalidItems, "item list cannot be empty")
	}
	if len(items) > MaxElements {
		return New(ErrCodeInvalidItems, "too many items (max %d, got %d)", MaxElements, len(items))
	}

	for i, item := range items {
		if item == "" {
			return New(ErrCodeInvalidItems, "item %d is empty", i)
		}
		if len(item) > MaxItemLength {
			return New(ErrCodeInvalidItems, "item %d too long (max %d characters)", i, MaxItemLength)
		}
		for _, r := range item {
			if unicode.IsControl(r) {
				return New(ErrCodeInvalidItems, "item %d contains invalid control characters", i)
			}
		}
	}

	return nil
}

// ValidateLimit validates a result limit. Zero means unlimited.
func ValidateLimit(limit int) error {
	if limit < 0 {
		return New(ErrCodeInvalidInput, "limit cannot be negative, got %d", limit)
	}
	return nil
}

// ValidateFormat checks a requested output format against the allowed set.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (allowed: %s)", format, strings.Join(allowed, ", "))
}
