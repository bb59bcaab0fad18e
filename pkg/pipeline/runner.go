package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/swapstack/pkg/cache"
	"github.com/matzehuels/swapstack/pkg/observability"
	"github.com/matzehuels/swapstack/pkg/perm"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete count → generate → apply pipeline with caching.
// Plan tree artifacts are rendered as well when opts.Formats is set.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	renderTree := len(opts.Formats) > 0

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Count
	countStart := time.Now()
	counts, countHit, err := r.CountWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	result.Counts = counts
	result.Stats.CountTime = time.Since(countStart)
	result.CacheInfo.CountHit = countHit

	r.Logger.Info("counted plan levels",
		"elements", counts.Elements,
		"total", counts.Total,
		"duration", result.Stats.CountTime)

	// Stage 2: Generate
	generateStart := time.Now()
	plans, plansHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Plans = plans
	result.Stats.GenerateTime = time.Since(generateStart)
	result.Stats.PlanCount = len(plans)
	result.CacheInfo.PlansHit = plansHit

	r.Logger.Info("generated plans",
		"level", opts.Level,
		"count", len(plans),
		"duration", result.Stats.GenerateTime)

	// Stage 3: Apply (only when items were given)
	if len(opts.Items) > 0 {
		applyStart := time.Now()
		rows, err := r.Apply(plans, opts)
		if err != nil {
			return nil, fmt.Errorf("apply: %w", err)
		}
		result.Rows = rows
		result.Stats.ApplyTime = time.Since(applyStart)

		r.Logger.Info("applied plans",
			"items", len(opts.Items),
			"rows", len(rows),
			"duration", result.Stats.ApplyTime)
	}

	// Stage 4: Render plan tree (only when formats were requested)
	if renderTree {
		renderStart := time.Now()
		artifacts, treeHit, err := r.RenderTreeWithCacheInfo(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Artifacts = artifacts
		result.Stats.RenderTime = time.Since(renderStart)
		result.CacheInfo.TreeHit = treeHit

		r.Logger.Info("rendered plan tree",
			"formats", opts.Formats,
			"duration", result.Stats.RenderTime)
	}

	return result, nil
}

// CountWithCacheInfo computes the count table with caching and returns cache
// hit info.
func (r *Runner) CountWithCacheInfo(ctx context.Context, opts Options) (*Counts, bool, error) {
	if err := opts.ValidateForCount(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnCountStart(ctx, opts.Elements)
	start := time.Now()

	cacheKey := r.Keyer.CountKey(opts.Elements)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Counts
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "counts")
				hooks.OnCountComplete(ctx, opts.Elements, cached.Total, time.Since(start), nil)
				return &cached, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "counts")
	}

	counts := computeCounts(opts.Elements)

	// Cache the result
	if data, err := json.Marshal(counts); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLCounts)
		observability.Cache().OnCacheSet(ctx, "counts", len(data))
	}

	hooks.OnCountComplete(ctx, opts.Elements, counts.Total, time.Since(start), nil)
	return counts, false, nil // Cache miss
}

// Count is a convenience wrapper that calls CountWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Count(ctx context.Context, opts Options) (*Counts, error) {
	counts, _, err := r.CountWithCacheInfo(ctx, opts)
	return counts, err
}

// GenerateWithCacheInfo generates the plan set with caching and returns cache
// hit info.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) ([]perm.Plan, bool, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.Elements, opts.Level)
	start := time.Now()

	cacheKey := r.Keyer.PlanKey(opts.Elements, opts.Level, opts.PlanKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			plans, err := perm.UnmarshalPlans(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "plans")
				hooks.OnGenerateComplete(ctx, opts.Elements, opts.Level, len(plans), time.Since(start), nil)
				return plans, true, nil // Cache hit
			}
			// If deserialization fails, fall through to regenerate
		}
		observability.Cache().OnCacheMiss(ctx, "plans")
	}

	plans, err := generatePlans(ctx, opts)
	if err != nil {
		hooks.OnGenerateComplete(ctx, opts.Elements, opts.Level, 0, time.Since(start), err)
		return nil, false, err
	}

	// Cache the result
	if data, err := perm.MarshalPlans(plans); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPlans)
		observability.Cache().OnCacheSet(ctx, "plans", len(data))
	}

	hooks.OnGenerateComplete(ctx, opts.Elements, opts.Level, len(plans), time.Since(start), nil)
	return plans, false, nil // Cache miss
}

// Generate is a convenience wrapper that calls GenerateWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) ([]perm.Plan, error) {
	plans, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return plans, err
}

// generatePlans runs the generator matching the options: streaming with an
// early stop when a limit caps the set, parallel when workers were requested,
// sequential otherwise.
func generatePlans(ctx context.Context, opts Options) ([]perm.Plan, error) {
	n, l := opts.Elements, opts.Level

	if opts.Limit > 0 && opts.Limit < perm.Plans(n, l) {
		opts.Logger.Debug("capping plan set", "limit", opts.Limit, "full", perm.Plans(n, l))
		plans := make([]perm.Plan, 0, opts.Limit)
		_, err := perm.GenerateFunc(n, l, func(p perm.Plan) bool {
			plans = append(plans, slices.Clone(p))
			return len(plans) < opts.Limit
		})
		if err != nil {
			return nil, err
		}
		return plans, nil
	}

	if opts.Workers > 1 {
		opts.Logger.Debug("sharding generation", "workers", opts.Workers)
		return perm.GenerateParallel(ctx, n, l, opts.Workers)
	}
	return perm.Generate(n, l)
}

// Apply applies every plan to the item sequence, one output row per plan.
// Results are pure functions of their inputs and cheap relative to
// generation, so this stage is not cached.
func (r *Runner) Apply(plans []perm.Plan, opts Options) ([][]string, error) {
	if err := opts.ValidateForApply(); err != nil {
		return nil, err
	}

	rows := make([][]string, len(plans))
	for i, plan := range plans {
		row, err := perm.Apply(opts.Items, plan)
		if err != nil {
			return nil, fmt.Errorf("apply plan %d (%s): %w", i, plan, err)
		}
		rows[i] = row
	}
	return rows, nil
}

// RenderTreeWithCacheInfo renders plan tree artifacts with caching and
// returns cache hit info.
func (r *Runner) RenderTreeWithCacheInfo(ctx context.Context, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Try to get all formats from cache
	if !opts.Refresh {
		allCached := true
		artifacts := make(map[string][]byte)

		for _, format := range opts.Formats {
			cacheKey := r.Keyer.TreeKey(opts.Elements, opts.Level, opts.TreeKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Render all formats
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			var dot string
			dot, err = perm.ToDOT(opts.Elements, opts.Level, opts.Items)
			data = []byte(dot)
		case FormatSVG:
			data, err = perm.RenderSVG(opts.Elements, opts.Level, opts.Items)
		}
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		rendered[format] = data
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.TreeKey(opts.Elements, opts.Level, opts.TreeKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return rendered, false, nil // Cache miss
}

// RenderTree is a convenience wrapper that calls RenderTreeWithCacheInfo and
// discards the cache hit info.
func (r *Runner) RenderTree(ctx context.Context, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderTreeWithCacheInfo(ctx, opts)
	return artifacts, err
}

// computeCounts builds the per-level count table for n elements.
func computeCounts(n int) *Counts {
	levels := make([]int, n)
	total := 0
	for l := 0; l < n; l++ {
		levels[l] = perm.Plans(n, l)
		total += levels[l]
	}
	return &Counts{
		Elements: n,
		Levels:   levels,
		Total:    total,
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
