// Package pipeline provides the core enumeration pipeline for Swapstack.
//
// This package implements the complete count → generate → apply pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Count: Compute the per-level plan count table for n elements
//  2. Generate: Enumerate the level-l plan set (optionally in parallel)
//  3. Apply: Apply each plan to an item sequence, producing one row per plan
//
// A fourth, independent stage renders the plan tree as DOT or SVG artifacts.
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Elements: 4,
//	    Level:    2,
//	    Items:    []string{"a", "b", "c", "d"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, plan := range result.Plans {
//	    fmt.Println(plan, result.Rows[i])
//	}
//
// Run individual stages:
//
//	// Count only
//	counts, err := runner.Count(ctx, opts)
//
//	// Generate only
//	plans, err := runner.Generate(ctx, opts)
//
//	// Render the plan tree
//	artifacts, err := runner.RenderTree(ctx, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/swapstack/pkg/cache"
	apperrors "github.com/matzehuels/swapstack/pkg/errors"
	"github.com/matzehuels/swapstack/pkg/perm"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultElements is the element count used when neither Elements nor
	// Items is given. Small enough that every level fits on a screen.
	DefaultElements = 4

	// DefaultWorkers is the worker count for generation. Values <= 1 run
	// the sequential generator; the parallel generator only pays off for
	// large plan sets.
	DefaultWorkers = 1
)

// Format constants for plan tree artifacts.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = []string{FormatDOT, FormatSVG}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the enumeration pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Enumeration options
	Elements int  `json:"elements,omitempty"` // inferred from Items when omitted
	Level    int  `json:"level"`
	Limit    int  `json:"limit,omitempty"`   // cap on generated plans, 0 = full set
	Workers  int  `json:"workers,omitempty"` // generation goroutines, <= 1 = sequential
	Refresh  bool `json:"refresh,omitempty"` // bypass cache reads, recompute and restore

	// Apply options
	Items []string `json:"items,omitempty"` // item sequence to rearrange

	// Render options
	Formats []string `json:"formats,omitempty"` // plan tree artifact formats

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Counts is the per-level count table for the element count.
	Counts *Counts

	// Plans is the generated plan set, possibly capped by Limit.
	Plans []perm.Plan

	// Rows holds each plan applied to Items, aligned with Plans.
	// Nil when no items were given.
	Rows [][]string

	// Artifacts contains rendered plan trees keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Counts is the per-level count table for a fixed element count.
type Counts struct {
	Elements int   `json:"elements"`
	Levels   []int `json:"levels"` // Levels[l] = number of level-l plans
	Total    int   `json:"total"`  // sum over all levels, equals Elements!
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PlanCount    int
	CountTime    time.Duration
	GenerateTime time.Duration
	ApplyTime    time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	CountHit bool // Whether the count table came from cache
	PlansHit bool // Whether the plan set came from cache
	TreeHit  bool // Whether all tree artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if len(o.Items) > 0 {
		if err := o.ValidateForApply(); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// ValidateForCount checks required fields for the count stage.
// The element count is inferred from Items when omitted.
func (o *Options) ValidateForCount() error {
	if o.Elements == 0 && len(o.Items) > 0 {
		o.Elements = len(o.Items)
	}
	if o.Elements == 0 {
		o.Elements = DefaultElements
	}
	if err := apperrors.ValidateElementCount(o.Elements); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForGenerate validates and sets defaults for plan generation.
func (o *Options) ValidateForGenerate() error {
	if err := o.ValidateForCount(); err != nil {
		return err
	}
	if err := apperrors.ValidateLevel(o.Elements, o.Level); err != nil {
		return err
	}
	if err := apperrors.ValidateLimit(o.Limit); err != nil {
		return err
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	return nil
}

// ValidateForApply validates the item sequence for the apply stage.
func (o *Options) ValidateForApply() error {
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := apperrors.ValidateItems(o.Items); err != nil {
		return err
	}
	if len(o.Items) != o.Elements {
		return apperrors.New(apperrors.ErrCodeInvalidItems,
			"got %d items for %d elements", len(o.Items), o.Elements)
	}
	return nil
}

// ValidateForRender validates and sets defaults for plan tree rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatDOT}
	}
	for _, f := range o.Formats {
		if err := apperrors.ValidateFormat(f, ValidFormats...); err != nil {
			return err
		}
	}
	return nil
}

// PlanKeyOpts returns cache key options for the generate stage.
func (o *Options) PlanKeyOpts() cache.PlanKeyOpts {
	return cache.PlanKeyOpts{
		Limit: o.Limit,
	}
}

// TreeKeyOpts returns cache key options for one plan tree artifact format.
func (o *Options) TreeKeyOpts(format string) cache.TreeKeyOpts {
	return cache.TreeKeyOpts{
		Format: format,
		Labels: o.Items,
	}
}
