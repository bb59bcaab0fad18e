package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several deployments share one Redis or MongoDB
// instance and need separate cache namespaces.
//
// Example usage:
//
//	// Staging keys, isolated from production
//	stagingKeyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
//
//	// Shared keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// CountKey generates a prefixed key for count table caching.
func (k *ScopedKeyer) CountKey(n int) string {
	return k.prefix + k.inner.CountKey(n)
}

// PlanKey generates a prefixed key for plan set caching.
func (k *ScopedKeyer) PlanKey(n, l int, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(n, l, opts)
}

// TreeKey generates a prefixed key for plan tree artifact caching.
func (k *ScopedKeyer) TreeKey(n, l int, opts TreeKeyOpts) string {
	return k.prefix + k.inner.TreeKey(n, l, opts)
}
