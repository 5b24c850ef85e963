package cacheinfra

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

// DefaultQueryTimeout is the per-operation timeout applied on top of the
// caller's context. It prevents indefinite hangs on a slow or unresponsive
// Redis without tying the bound to the caller's overall deadline.
const DefaultQueryTimeout = 5 * time.Second

// RedisOption configures the Redis store backend.
type RedisOption func(*redisStore)

// WithKeyPrefix namespaces every key under prefix. Empty means no prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *redisStore) { s.prefix = prefix }
}

// WithQueryTimeout overrides DefaultQueryTimeout for Get and Set operations.
func WithQueryTimeout(d time.Duration) RedisOption {
	return func(s *redisStore) { s.queryTimeout = d }
}

// redisStore implements cache.Store over a shared Redis client. The caller
// owns the client lifecycle; the store never closes it. Values are written
// with SET ... EX so every entry carries an expiry.
type redisStore struct {
	client       *redis.Client
	prefix       string
	queryTimeout time.Duration
}

// NewRedisStore creates a Redis-backed store using the provided client.
func NewRedisStore(client *redis.Client, opts ...RedisOption) *redisStore {
	s := &redisStore{
		client:       client,
		queryTimeout: DefaultQueryTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *redisStore) queryCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, s.queryTimeout)
}

func (s *redisStore) prefixKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

// Get implements cache.Store. A redis.Nil reply is an ordinary miss; any
// other error means the backend could not be consulted.
func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()

	data, err := s.client.Get(qctx, s.prefixKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "cacheinfra: redis get %q", key)
	}
	return data, true, nil
}

// Set implements cache.Store.
func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return &ConfigError{Field: "ttl", Message: "must be greater than 0"}
	}

	qctx, cancel := s.queryCtx(ctx)
	defer cancel()

	if err := s.client.Set(qctx, s.prefixKey(key), value, ttl).Err(); err != nil {
		return errors.Wrapf(err, "cacheinfra: redis set %q", key)
	}
	return nil
}
