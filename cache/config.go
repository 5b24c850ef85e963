package cache

import (
	"time"

	"github.com/filmstack/catalog/internal/cacheinfra"
)

// MemoryConfig exposes configuration for the in-process Store backend.
type MemoryConfig struct {
	// Capacity is the maximum number of entries the store holds.
	Capacity int
	// NumShards controls shard count for concurrent access.
	NumShards int
	// MaxTTL is the upper bound the backend enforces on entry lifetime.
	// Per-entry TTLs passed to Set are honored up to this bound.
	MaxTTL time.Duration
	// EvictionPercentage is the share of entries evicted when at capacity.
	EvictionPercentage int
	// EvictionInterval sets how often expired entries are collected.
	// Zero uses the backend default.
	EvictionInterval time.Duration
}

// DefaultMemoryConfig returns a MemoryConfig with sensible defaults.
func DefaultMemoryConfig() MemoryConfig {
	return convertFromInternal(cacheinfra.DefaultConfig())
}

// Validate checks whether the configuration values are valid.
func (c MemoryConfig) Validate() error {
	return c.toInternal().Validate()
}

// NewMemoryStore constructs the in-process Store backend from the
// configuration.
func NewMemoryStore(cfg MemoryConfig) (Store, error) {
	return cacheinfra.NewMemoryStore(cfg.toInternal())
}

func (c MemoryConfig) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		MaxTTL:             c.MaxTTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}

func convertFromInternal(cfg cacheinfra.Config) MemoryConfig {
	return MemoryConfig{
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		MaxTTL:             cfg.MaxTTL,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
	}
}
