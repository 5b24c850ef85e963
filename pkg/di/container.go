// Package di wires the service's long-lived collaborators: the cache store
// backend, the document store client, and one read-through cache per entity
// type. Everything is constructed once at boot and shared by reference; there
// are no package-level singletons.
package di

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/filmstack/catalog/cache"
	"github.com/filmstack/catalog/catalog"
	"github.com/filmstack/catalog/internal/cacheinfra"
	"github.com/filmstack/catalog/internal/config"
	"github.com/filmstack/catalog/model"
	"github.com/filmstack/catalog/readthrough"
	"github.com/filmstack/catalog/search"
)

// Container holds the singleton instances the request handlers depend on.
type Container struct {
	cfg    *config.Config
	logger *slog.Logger

	redisClient *redis.Client
	store       cache.Store
	docs        search.DocumentStore
	metrics     *readthrough.Metrics

	films   *catalog.FilmCache
	genres  *catalog.GenreCache
	persons *catalog.PersonCache
}

// New builds the container from configuration. The context bounds the initial
// Redis connectivity check when the redis backend is selected.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*Container, error) {
	c := &Container{cfg: cfg, logger: logger}

	switch cfg.Cache.Backend {
	case "redis":
		c.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := c.redisClient.Ping(ctx).Err(); err != nil {
			return nil, errors.Wrapf(err, "di: redis ping %s", cfg.Redis.Addr)
		}
		c.store = cacheinfra.NewRedisStore(c.redisClient,
			cacheinfra.WithKeyPrefix(cfg.Redis.KeyPrefix),
		)
	case "memory":
		memCfg := cache.DefaultMemoryConfig()
		memCfg.Capacity = cfg.Cache.MemoryCapacity
		memCfg.NumShards = cfg.Cache.MemoryNumShards
		store, err := cache.NewMemoryStore(memCfg)
		if err != nil {
			return nil, errors.Wrap(err, "di: memory store")
		}
		c.store = store
	default:
		return nil, errors.Newf("di: unknown cache backend %q", cfg.Cache.Backend)
	}

	c.docs = search.NewElasticStore(cfg.Elasticsearch.URL, cfg.Elasticsearch.Timeout)

	if reg != nil {
		c.metrics = readthrough.NewMetrics(reg)
	}

	c.films = catalog.NewFilmCache(c.store, c.docs, cfg.Cache.FilmTTL,
		readthrough.WithLogger[model.Film](logger),
		readthrough.WithMetrics[model.Film](c.metrics),
	)
	c.genres = catalog.NewGenreCache(c.store, c.docs, cfg.Cache.GenreTTL,
		readthrough.WithLogger[model.Genre](logger),
		readthrough.WithMetrics[model.Genre](c.metrics),
	)
	c.persons = catalog.NewPersonCache(c.store, c.docs, cfg.Cache.PersonTTL,
		readthrough.WithLogger[model.Person](logger),
		readthrough.WithMetrics[model.Person](c.metrics),
	)

	return c, nil
}

// Films returns the process-wide film cache.
func (c *Container) Films() *catalog.FilmCache { return c.films }

// Genres returns the process-wide genre cache.
func (c *Container) Genres() *catalog.GenreCache { return c.genres }

// Persons returns the process-wide person cache.
func (c *Container) Persons() *catalog.PersonCache { return c.persons }

// Store returns the underlying cache store.
func (c *Container) Store() cache.Store { return c.store }

// DocumentStore returns the underlying document store.
func (c *Container) DocumentStore() search.DocumentStore { return c.docs }

// Config returns the configuration the container was built from.
func (c *Container) Config() *config.Config { return c.cfg }

// Close releases owned connections. Safe to call once at shutdown.
func (c *Container) Close() error {
	if c.redisClient != nil {
		return c.redisClient.Close()
	}
	return nil
}
