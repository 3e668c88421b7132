package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/permgroup/pkg/cache"
	"github.com/matzehuels/permgroup/pkg/pipeline"
	"github.com/matzehuels/permgroup/pkg/provider"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "permgroup"

	// configFile is the name of the config file inside the config directory.
	configFile = "config.toml"
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

	// Config is loaded before any command runs; flags already override it.
	Config Config

	configPath string
	noCache    bool
	refresh    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.Config.Cache.KeyPrefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.Config.Cache.KeyPrefix)
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case cacheBackendNone:
		return cache.NewNullCache(), nil
	case cacheBackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:   c.Config.Cache.RedisAddr,
			Prefix: appName + ":cache:",
		})
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// pipelineOptions returns build options from the loaded config.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Provider:     provider.Kind(c.Config.Provider),
		PoolCapacity: c.Config.PoolCapacity,
		Refresh:      c.refresh,
		Logger:       c.Logger,
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/permgroup/).
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

// configDir returns the config directory using XDG standard (~/.config/permgroup/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
