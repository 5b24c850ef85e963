package cache

import (
	"context"
	"time"
)

// Store is the narrow interface to a key-value cache with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); an error signals the backend could
// not be consulted at all. Backends may expire entries earlier than their TTL
// under memory pressure, which callers must treat as an ordinary miss.
//
// Set stores the value with the given TTL. A non-positive TTL is invalid:
// entries are never written without an expiry. Last write wins; no
// transactional guarantees are made.
//
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
