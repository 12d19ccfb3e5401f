// Package cli implements the bpmndot command-line interface.
//
// The root command converts a BPMN process definition into a Graphviz
// diagram; the cache and completion subcommands manage the render cache and
// generate shell completions. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Options
//
// Every conversion switch can also be set in a TOML or YAML file passed with
// --config. Flags given explicitly on the command line win over the file,
// and the file wins over the built-in defaults.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bpmndot/pkg/buildinfo"
	"github.com/matzehuels/bpmndot/pkg/cache"
	"github.com/matzehuels/bpmndot/pkg/config"
	"github.com/matzehuels/bpmndot/pkg/observability"
	"github.com/matzehuels/bpmndot/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "bpmndot"

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

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself performs the conversion.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.convertCommand()
	root.Version = buildinfo.Version
	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (.toml, .yaml or .yml)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if c.Logger.GetLevel() <= log.DebugLevel {
			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
		}
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the --config file. Without one an empty config is
// returned, so callers never deal with nil.
func (c *CLI) loadConfig() (*config.File, error) {
	if c.configPath == "" {
		return &config.File{}, nil
	}
	return config.Load(c.configPath)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg *config.File, noCache bool) (*pipeline.Runner, error) {
	c, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(c, artifactKeyer(), loggerFromContext(ctx)), nil
}

// artifactKeyer scopes artifact keys to the build version, so a release
// never serves an image laid out by another one.
func artifactKeyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, buildinfo.Version+":")
}

func newCache(ctx context.Context, cfg *config.File, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	switch cfg.CacheBackend() {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.Redis.Options())
		if err != nil {
			return nil, err
		}
		return rc, nil
	}

	dir, err := fileCacheDir(cfg)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/bpmndot/).
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

// fileCacheDir returns the configured cache directory, falling back to cacheDir.
func fileCacheDir(cfg *config.File) (string, error) {
	if cfg != nil && cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cacheDir()
}
