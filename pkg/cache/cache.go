// Package cache provides pluggable caching for computed plan sets and
// rendered artifacts.
//
// Four backends implement the Cache interface:
//   - FileCache: on-disk cache for CLI usage
//   - RedisCache: Redis-backed cache for multi-instance server deployments
//   - MongoCache: MongoDB-backed cache with server-side expiry
//   - NullCache: no-op cache for tests or disabled caching
//
// Keys are generated through a Keyer so the CLI and the API agree on key
// layout. All cached values are opaque byte slices; serialization is the
// caller's concern.
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value from the cache. The bool reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of zero stores the
	// value without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// TTLs per cached stage. Counts and plan sets are deterministic, so these
// exist for cache hygiene rather than freshness.
const (
	// TTLCounts is the TTL for per-level count tables.
	TTLCounts = 30 * 24 * time.Hour

	// TTLPlans is the TTL for generated plan sets.
	TTLPlans = 30 * 24 * time.Hour

	// TTLArtifact is the TTL for rendered plan tree artifacts, which are
	// larger and cheap to regenerate from a cached plan set.
	TTLArtifact = 7 * 24 * time.Hour
)

// PlanKeyOpts captures the options that shape a generated plan set.
type PlanKeyOpts struct {
	Limit int // 0 means the full set
}

// TreeKeyOpts captures the options that shape a rendered plan tree.
type TreeKeyOpts struct {
	Format string   // "dot" or "svg"
	Labels []string // element labels baked into the artifact
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// CountKey generates a key for the per-level count table of n elements.
	CountKey(n int) string

	// PlanKey generates a key for the level-l plan set of n elements.
	PlanKey(n, l int, opts PlanKeyOpts) string

	// TreeKey generates a key for a rendered plan tree artifact.
	TreeKey(n, l int, opts TreeKeyOpts) string
}

// DefaultKeyer generates stage-prefixed keys that hash all inputs affecting
// the cached value.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// CountKey generates a key for count table caching.
func (k *DefaultKeyer) CountKey(n int) string {
	return hashKey("counts", n)
}

// PlanKey generates a key for plan set caching.
func (k *DefaultKeyer) PlanKey(n, l int, opts PlanKeyOpts) string {
	return hashKey("plans", n, l, opts)
}

// TreeKey generates a key for plan tree artifact caching.
func (k *DefaultKeyer) TreeKey(n, l int, opts TreeKeyOpts) string {
	return hashKey("tree", n, l, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
