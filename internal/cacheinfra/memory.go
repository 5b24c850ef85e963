// Package cacheinfra holds backend implementations of the cache.Store
// interface: an in-process sturdyc-backed store and a Redis store.
package cacheinfra

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

// Config holds the configuration for the in-process store backend.
type Config struct {
	// Capacity defines the maximum number of entries that the store can hold.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of shards for concurrent access.
	// Higher values improve concurrency but increase memory overhead.
	// Must be greater than 0. Default: 256
	NumShards int

	// MaxTTL is the upper bound on entry lifetime enforced by the backend.
	// Per-entry TTLs passed to Set are honored up to this bound.
	// Must be greater than 0.
	MaxTTL time.Duration

	// EvictionPercentage specifies what percentage of entries to evict
	// when the store reaches its capacity. Must be between 1-100.
	// Default: 10 (evict 10% of entries)
	EvictionPercentage int

	// EvictionInterval sets how often the store checks for expired entries.
	// Zero value uses the default interval.
	EvictionInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          256,
		MaxTTL:             time.Hour,
		EvictionPercentage: 10,
		EvictionInterval:   0, // Use default
	}
}

// ToSturdycOptions converts the Config to sturdyc.Option slice.
// Capacity, NumShards, MaxTTL, and EvictionPercentage are passed directly to
// sturdyc.New() and are not included in the options.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option

	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}

	return options
}

// Validate checks if the configuration values are valid.
// Returns an error if any configuration parameter is invalid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}

	if c.MaxTTL <= 0 {
		return &ConfigError{Field: "MaxTTL", Message: "must be greater than 0"}
	}

	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// memoryEntry carries the stored value with its expiry deadline. sturdyc
// itself only supports a client-wide TTL, so the per-entry TTL the Store
// contract requires is enforced here on read.
type memoryEntry struct {
	value    []byte
	deadline time.Time
}

// memoryStore is an in-process store backed by a sturdyc client. sturdyc
// handles sharding, capacity limits, and background eviction; this adapter
// uses it as a plain key-value store and layers per-entry deadlines on top.
type memoryStore struct {
	client *sturdyc.Client[memoryEntry]
	now    func() time.Time
}

// NewMemoryStore creates a new in-process store backend.
// It validates the configuration and initializes a sturdyc client with the
// provided settings.
func NewMemoryStore(cfg Config) (*memoryStore, error) {
	return newMemoryStoreWithClock(cfg, time.Now)
}

// newMemoryStoreWithClock injects the clock used for deadline checks.
// Tests use it to simulate TTL expiry without sleeping.
func newMemoryStoreWithClock(cfg Config, now func() time.Time) (*memoryStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[memoryEntry](
		cfg.Capacity,
		cfg.NumShards,
		cfg.MaxTTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	return &memoryStore{client: client, now: now}, nil
}

// Get implements cache.Store. An entry past its deadline is deleted and
// reported as a miss, indistinguishable from one the backend already evicted.
func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	entry, ok := s.client.Get(key)
	if !ok {
		return nil, false, nil
	}
	if s.now().After(entry.deadline) {
		s.client.Delete(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set implements cache.Store. The TTL must be positive: entries are never
// stored without an expiry.
func (s *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return &ConfigError{Field: "ttl", Message: "must be greater than 0"}
	}
	s.client.Set(key, memoryEntry{value: value, deadline: s.now().Add(ttl)})
	return nil
}
