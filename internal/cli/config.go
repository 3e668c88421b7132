package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/permgroup/pkg/errors"
	"github.com/matzehuels/permgroup/pkg/provider"
	"github.com/matzehuels/permgroup/pkg/server"
	"github.com/matzehuels/permgroup/pkg/store"
)

// Cache backends accepted in the config file.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"
)

// Config is the content of config.toml.
//
//	provider = "pooled"
//	pool_capacity = 256
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	key_prefix = "staging:"
//
//	[server]
//	addr = ":8080"
//	max_live = 64
//	max_degree = 128
//
//	[store]
//	backend = "sqlite"
//	path = "/var/lib/permgroup/groups.db"
type Config struct {
	Provider     string `toml:"provider"`
	PoolCapacity int    `toml:"pool_capacity"`

	Cache  CacheConfig   `toml:"cache"`
	Server server.Config `toml:"server"`
	Store  store.Config  `toml:"store"`
}

// CacheConfig selects the summary cache.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	RedisAddr string `toml:"redis_addr"`

	// KeyPrefix scopes cache keys, so several installations can share one
	// Redis database.
	KeyPrefix string `toml:"key_prefix"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{
		Provider: string(provider.KindHeap),
		Cache:    CacheConfig{Backend: cacheBackendFile},
		Server: server.Config{
			Addr:           server.DefaultAddr,
			MaxLive:        server.DefaultMaxLive,
			RequestTimeout: server.DefaultRequestTimeout,
			MaxDegree:      server.DefaultMaxDegree,
		},
		Store: store.Config{Backend: store.BackendMemory},
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if !slices.Contains(provider.Kinds(), c.Provider) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown provider %q", c.Provider)
	}
	if c.PoolCapacity < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "pool capacity must not be negative")
	}
	switch c.Cache.Backend {
	case cacheBackendFile, cacheBackendRedis, cacheBackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	if !slices.Contains(store.Backends(), c.Store.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// loadConfig reads path over the defaults. A missing file is not an error
// unless the path was given explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		if !explicit {
			return DefaultConfig(), nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultConfigPath returns the config.toml path in the config directory.
func defaultConfigPath() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configFile)
}
