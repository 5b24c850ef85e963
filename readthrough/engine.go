// Package readthrough implements the cache-aside orchestration between the
// key-value cache store and the document search backend.
//
// An Engine is bound at construction to one collection and one entity type.
// Both operations consult the cache first and fall through to the document
// store on a miss, populating the cache with confirmed positive results only:
// a not-found outcome is never cached, so repeated misses always reach the
// source of truth and newly created documents become visible immediately.
//
// Cache population is best-effort. A failed cache write is logged and counted
// but never fails the request; the fetched data is still returned. A cached
// payload that no longer decodes (schema drift, corruption) is treated as a
// miss and overwritten by the refetched value.
//
// Engines hold no mutable state after construction and are safe for
// unsynchronized concurrent use. Two concurrent requests for the same
// uncached key may both reach the document store; there is no request
// coalescing.
package readthrough

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"

	"github.com/filmstack/catalog/cache"
	"github.com/filmstack/catalog/search"
)

const (
	opGetByID = "get_by_id"
	opSearch  = "search"
)

// Engine is the generic read-through cache engine for one collection.
type Engine[T any] struct {
	collection string
	store      cache.Store
	docs       search.DocumentStore
	ttl        time.Duration
	logger     *slog.Logger
	metrics    *Metrics
}

// Option configures an Engine.
type Option[T any] func(*Engine[T])

// WithLogger sets the logger used for absorbed failures (cache write errors,
// decode-as-miss fallbacks). Defaults to slog.Default().
func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(e *Engine[T]) { e.logger = l }
}

// WithMetrics attaches shared engine counters. Nil metrics are a no-op.
func WithMetrics[T any](m *Metrics) Option[T] {
	return func(e *Engine[T]) { e.metrics = m }
}

// New constructs an Engine bound to a collection, a cache store, a document
// store, and the TTL applied to every cache entry it writes.
func New[T any](collection string, store cache.Store, docs search.DocumentStore, ttl time.Duration, opts ...Option[T]) *Engine[T] {
	e := &Engine[T]{
		collection: collection,
		store:      store,
		docs:       docs,
		ttl:        ttl,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Collection returns the bound collection name.
func (e *Engine[T]) Collection() string { return e.collection }

// GetByID returns the entity with the given id, serving from cache when
// possible. It returns ErrNotFound when the document does not exist and
// ErrStoreUnavailable when the document store cannot be consulted. At most
// one document-store round trip is made.
func (e *Engine[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	key := cache.EntityKey(e.collection, id)

	if payload, ok := e.cacheGet(ctx, key, opGetByID); ok {
		entity, err := cache.DecodeEntity[T](payload)
		if err == nil {
			e.metrics.hit(e.collection, opGetByID)
			return entity, nil
		}
		// Stale or incompatible entry. Fall through and refetch.
		e.logger.DebugContext(ctx, "cached entity no longer decodes, refetching",
			"collection", e.collection, "key", key, "error", err)
	}
	e.metrics.miss(e.collection, opGetByID)

	raw, err := e.docs.GetByID(ctx, e.collection, id)
	if err != nil {
		if errors.Is(err, search.ErrDocumentNotFound) {
			return zero, ErrNotFound
		}
		e.metrics.storeError(e.collection, opGetByID)
		return zero, errors.Mark(err, ErrStoreUnavailable)
	}

	var entity T
	if err := json.Unmarshal(raw, &entity); err != nil {
		e.logger.WarnContext(ctx, "document source does not match entity schema",
			"collection", e.collection, "id", id, "error", err)
		return zero, errors.Mark(err, ErrNotFound)
	}

	if payload, err := cache.EncodeEntity(entity); err == nil {
		e.cacheSet(ctx, key, payload, opGetByID)
	}

	return entity, nil
}

// Search returns the entities matching q in the document store's ranking
// order, serving the whole page from cache when possible. An empty result is
// ErrNotFound and is never cached. At most one document-store round trip is
// made, and the cached sequence replays in exactly the order the store
// returned it.
func (e *Engine[T]) Search(ctx context.Context, q search.Query) ([]T, error) {
	key := cache.QueryKey(e.collection, q)

	if payload, ok := e.cacheGet(ctx, key, opSearch); ok {
		entities, err := cache.DecodeList[T](payload)
		if err == nil {
			e.metrics.hit(e.collection, opSearch)
			return entities, nil
		}
		e.logger.DebugContext(ctx, "cached result list no longer decodes, refetching",
			"collection", e.collection, "key", key, "error", err)
	}
	e.metrics.miss(e.collection, opSearch)

	raws, err := e.docs.Search(ctx, e.collection, q)
	if err != nil {
		e.metrics.storeError(e.collection, opSearch)
		return nil, errors.Mark(err, ErrStoreUnavailable)
	}
	if len(raws) == 0 {
		return nil, ErrNotFound
	}

	entities := make([]T, 0, len(raws))
	for _, raw := range raws {
		var entity T
		if err := json.Unmarshal(raw, &entity); err != nil {
			e.logger.WarnContext(ctx, "search hit does not match entity schema",
				"collection", e.collection, "error", err)
			return nil, errors.Mark(err, ErrNotFound)
		}
		entities = append(entities, entity)
	}

	if payload, err := cache.EncodeList(entities); err == nil {
		e.cacheSet(ctx, key, payload, opSearch)
	}

	return entities, nil
}

// cacheGet consults the cache store. A backend error is absorbed as a miss:
// the source of truth can still serve the request.
func (e *Engine[T]) cacheGet(ctx context.Context, key, op string) ([]byte, bool) {
	payload, ok, err := e.store.Get(ctx, key)
	if err != nil {
		e.logger.WarnContext(ctx, "cache read failed, falling through to document store",
			"collection", e.collection, "op", op, "error", err)
		return nil, false
	}
	return payload, ok
}

// cacheSet populates the cache best-effort. Failures are logged and counted,
// never propagated: the caller already holds the fetched data.
func (e *Engine[T]) cacheSet(ctx context.Context, key string, payload []byte, op string) {
	if err := e.store.Set(ctx, key, payload, e.ttl); err != nil {
		e.metrics.cacheWriteFailure(e.collection, op)
		e.logger.WarnContext(ctx, "cache write failed",
			"collection", e.collection, "op", op, "error", err)
	}
}
