// Package config loads the service configuration with koanf: struct defaults
// first, then an optional YAML file, then CATALOG_-prefixed environment
// variables, each layer overriding the previous one.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// CATALOG_REDIS_ADDR overrides redis.addr.
const EnvPrefix = "CATALOG_"

// Config is the full service configuration.
type Config struct {
	Server        ServerConfig  `koanf:"server"`
	Redis         RedisConfig   `koanf:"redis"`
	Elasticsearch ElasticConfig `koanf:"elasticsearch"`
	Cache         CacheConfig   `koanf:"cache"`
	API           APIConfig     `koanf:"api"`
	Log           LogConfig     `koanf:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// RedisConfig configures the cache store connection.
type RedisConfig struct {
	Addr      string `koanf:"addr"`
	Password  string `koanf:"password"`
	DB        int    `koanf:"db"`
	KeyPrefix string `koanf:"key_prefix"`
}

// ElasticConfig configures the document store connection.
type ElasticConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// CacheConfig selects the cache backend and per-collection TTLs.
type CacheConfig struct {
	// Backend is "redis" or "memory".
	Backend string `koanf:"backend"`

	// Per-collection entry lifetimes.
	FilmTTL   time.Duration `koanf:"film_ttl"`
	GenreTTL  time.Duration `koanf:"genre_ttl"`
	PersonTTL time.Duration `koanf:"person_ttl"`

	// Memory backend sizing; ignored for the redis backend.
	MemoryCapacity  int `koanf:"memory_capacity"`
	MemoryNumShards int `koanf:"memory_num_shards"`
}

// APIConfig configures pagination limits for the HTTP API.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level"`
}

// Default returns the configuration defaults applied before file and env
// layers.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Redis: RedisConfig{
			Addr:      "127.0.0.1:6379",
			DB:        0,
			KeyPrefix: "catalog",
		},
		Elasticsearch: ElasticConfig{
			URL:     "http://127.0.0.1:9200",
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Backend:         "redis",
			FilmTTL:         5 * time.Minute,
			GenreTTL:        5 * time.Minute,
			PersonTTL:       5 * time.Minute,
			MemoryCapacity:  10000,
			MemoryNumShards: 256,
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is non-empty and the file exists), and environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, errors.Wrap(err, "config: load defaults")
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "config: load %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "config: stat %s", path)
		}
	}

	// CATALOG_SERVER_PORT -> server.port. Only the first underscore becomes
	// a level separator; the remainder stays joined so keys like
	// cache.film_ttl remain addressable.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, "config: load env")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(s, "_", ".", 1)
}

// Validate checks the loaded configuration for values the service cannot
// start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Newf("config: invalid server.port %d", c.Server.Port)
	}
	switch c.Cache.Backend {
	case "redis", "memory":
	default:
		return errors.Newf("config: cache.backend must be redis or memory, got %q", c.Cache.Backend)
	}
	for name, ttl := range map[string]time.Duration{
		"cache.film_ttl":   c.Cache.FilmTTL,
		"cache.genre_ttl":  c.Cache.GenreTTL,
		"cache.person_ttl": c.Cache.PersonTTL,
	} {
		if ttl <= 0 {
			return errors.Newf("config: %s must be positive", name)
		}
	}
	if c.Elasticsearch.URL == "" {
		return errors.New("config: elasticsearch.url is required")
	}
	if c.API.DefaultPageSize <= 0 || c.API.MaxPageSize < c.API.DefaultPageSize {
		return errors.Newf("config: invalid api page sizes (default %d, max %d)",
			c.API.DefaultPageSize, c.API.MaxPageSize)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Newf("config: invalid log.level %q", c.Log.Level)
	}
	return nil
}
