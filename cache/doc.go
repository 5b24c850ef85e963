// Package cache provides the cache-store boundary and key derivation for
// read-through caching of catalog entities.
//
// # Overview
//
// This package exports three building blocks:
//
//   - Store: a narrow key-value interface with per-entry TTL
//   - Fingerprint: deterministic content-addressed keys for search queries
//   - the envelope codec: serialization of single entities and ordered
//     entity lists under a shared opaque key space
//
// Backend implementations of Store live in internal/cacheinfra (Redis and an
// in-process sturdyc-backed store). The read-through orchestration that ties
// a Store to a document store lives in the readthrough package.
//
// # Keys
//
// Identity lookups use collection-scoped keys built with EntityKey, so two
// collections whose documents share an id value never collide. Search results
// are cached under QueryKey, which embeds a Fingerprint of the query's
// canonical form: structurally equal queries always map to the same entry,
// and any change to term, pagination, sort, or a filter yields a new key.
//
// # Error handling
//
// A Store miss is never an error: Get reports (nil, false, nil) and early
// eviction by the backend is indistinguishable from ordinary expiry. Decode
// failures are reported via ErrDecode so callers can treat stale or
// incompatible payloads as misses and fall through to the source of truth.
package cache
