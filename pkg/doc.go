// Package pkg provides the core libraries for swapstack plan enumeration.
//
// # Overview
//
// Swapstack treats a permutation as the outcome of a swap plan: an ordered
// sequence of pairwise index swaps applied to a row of elements. The pkg
// directory is organized into four main areas:
//
//  1. [perm] - Domain logic (counting, generation, application, plan trees)
//  2. [pipeline] - Orchestration with caching (count → generate → apply → render)
//  3. [cache] - Cache backends (file, Redis, MongoDB, null)
//  4. [errors] - Shared error codes and input validation
//
// # Architecture
//
// The typical data flow through swapstack:
//
//	Elements + Level
//	         ↓
//	    [perm] package (count and generate plans)
//	         ↓
//	    [pipeline] package (cache lookups, orchestration)
//	         ↓
//	    CLI table / JSON / DOT / SVG output
//
// # Quick Start
//
// Generate the level-2 plans for four elements and apply one:
//
//	import "github.com/matzehuels/swapstack/pkg/perm"
//
//	plans, _ := perm.Generate(4, 2)
//	fmt.Println(len(plans)) // 11
//
//	row, _ := perm.Apply([]string{"a", "b", "c", "d"}, plans[0])
//
// Or run the cached pipeline the way the CLI and API do:
//
//	import "github.com/matzehuels/swapstack/pkg/pipeline"
//
//	runner := pipeline.NewRunner(nil, nil, nil) // nil cache = no caching
//	defer runner.Close()
//	result, _ := runner.Execute(ctx, pipeline.Options{Elements: 4, Level: 2})
//
// # Main Packages
//
// [perm] - Swap plan enumeration. Counts plans per level without
// enumerating, generates canonical plan sets without duplicates (optionally
// sharded across workers), applies plans to arbitrary element slices, and
// renders the plan tree as DOT or SVG.
//
// [pipeline] - Complete enumeration pipeline used by CLI and API. Wraps the
// perm package with option validation, cache lookups, and structured logging
// so every entry point behaves the same.
//
// [cache] - Cache backends behind a single Cache interface: FileCache for
// the CLI (filesystem), RedisCache and MongoCache for server deployments,
// NullCache for tests and --no-cache runs. Keyer builds the cache keys.
//
// [errors] - Coded errors shared by all layers. Codes map onto HTTP status
// ranges in the API and onto user-facing messages in the CLI.
//
// [observability] - Hook interfaces for pipeline stages, cache traffic, and
// HTTP requests. Deployments register collectors at startup; the default
// hooks are no-ops.
//
// [buildinfo] - Version metadata injected at build time via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/perm/...     # Specific package
//	go test -run Example       # Examples only
//
// [perm]: https://pkg.go.dev/github.com/matzehuels/swapstack/pkg/perm
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/swapstack/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/swapstack/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/swapstack/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/swapstack/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/swapstack/pkg/buildinfo
package pkg
