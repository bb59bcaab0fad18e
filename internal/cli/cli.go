// Package cli implements the swapstack command-line interface.
//
// This package provides commands for counting and generating pairwise swap
// plans, applying them to element sequences, browsing plan sets
// interactively, rendering derivation trees, and serving the HTTP API. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - count: Count swap plans per level for n elements
//   - plans: Generate the plan set of one level
//   - apply: Apply a single plan to a list of items
//   - browse: Step through a plan set in an interactive TUI
//   - graph: Render the plan derivation tree as DOT or SVG
//   - serve: Run the HTTP API
//   - cache: Manage the local result cache
//
// # Configuration
//
// Settings are read from a TOML file at ~/.config/swapstack/config.toml
// (or --config). Flags override config values; config overrides built-in
// defaults.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/swapstack/pkg/buildinfo"
	"github.com/matzehuels/swapstack/pkg/cache"
	apperrors "github.com/matzehuels/swapstack/pkg/errors"
	"github.com/matzehuels/swapstack/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "swapstack"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// cfg returns the loaded config, or an empty config when the root command's
// PersistentPreRunE has not run (direct command construction in tests).
func (c *CLI) cfg() *Config {
	if c.Config == nil {
		return &Config{}
	}
	return c.Config
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "swapstack",
		Short: "Swapstack enumerates and applies pairwise swap plans",
		Long: `Swapstack explores permutations as sequences of pairwise swaps: it counts
the swap plans of each level, generates the plan sets without duplicates,
applies plans to element sequences, and renders the derivation tree.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configFile)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.config/swapstack/config.toml)")

	// Register all subcommands
	root.AddCommand(c.countCommand())
	root.AddCommand(c.plansCommand())
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, c.keyer(), c.Logger), nil
}

// keyer returns the cache keyer matching the config. A configured prefix
// scopes keys so deployments can share one redis or mongo instance.
func (c *CLI) keyer() cache.Keyer {
	if prefix := c.cfg().Cache.Prefix; prefix != "" {
		return cache.NewScopedKeyer(nil, prefix)
	}
	return nil
}

// newCache builds the cache backend selected by config. When the file
// backend cannot resolve a directory the cache degrades to a null cache;
// an explicitly configured redis or mongo backend fails loudly instead.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	cfg := c.cfg()
	switch cfg.Cache.Backend {
	case BackendOff:
		return cache.NewNullCache(), nil

	case BackendRedis:
		addr := cfg.Cache.RedisAddr
		if addr == "" {
			addr = "localhost:6379"
		}
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     addr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})

	case BackendMongo:
		uri := cfg.Cache.MongoURI
		if uri == "" {
			uri = "mongodb://localhost:27017"
		}
		return cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:      uri,
			Database: cfg.Cache.MongoDatabase,
		})

	case "", BackendFile:
		dir, err := c.resolveCacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)

	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
			"unknown cache backend %q (use file, redis, mongo, or off)", cfg.Cache.Backend)
	}
}

// =============================================================================
// Paths
// =============================================================================

// resolveCacheDir returns the file cache directory, honoring the configured
// override before falling back to the XDG default.
func (c *CLI) resolveCacheDir() (string, error) {
	if dir := c.cfg().Cache.Dir; dir != "" {
		return dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/swapstack/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configPath returns the config file path using XDG standard
// (~/.config/swapstack/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
