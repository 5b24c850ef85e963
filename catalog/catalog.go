// Package catalog binds the generic read-through engine to the concrete
// entity types and their collections.
//
// Each cache is a pure specialization of the engine with a collection name,
// an entity type, and a TTL. One instance per entity type is constructed at
// boot (see pkg/di) and shared by reference across every request path, so
// caching benefits accrue across call sites.
package catalog

import (
	"time"

	"github.com/filmstack/catalog/cache"
	"github.com/filmstack/catalog/model"
	"github.com/filmstack/catalog/readthrough"
	"github.com/filmstack/catalog/search"
)

// Collection names, matching the document store indices.
const (
	CollectionFilms   = "movies"
	CollectionGenres  = "genre"
	CollectionPersons = "person"
)

// FilmCache serves Film entities from the "movies" collection.
type FilmCache = readthrough.Engine[model.Film]

// GenreCache serves Genre entities from the "genre" collection.
type GenreCache = readthrough.Engine[model.Genre]

// PersonCache serves Person entities from the "person" collection.
type PersonCache = readthrough.Engine[model.Person]

// NewFilmCache constructs the film cache bound to CollectionFilms.
func NewFilmCache(store cache.Store, docs search.DocumentStore, ttl time.Duration, opts ...readthrough.Option[model.Film]) *FilmCache {
	return readthrough.New(CollectionFilms, store, docs, ttl, opts...)
}

// NewGenreCache constructs the genre cache bound to CollectionGenres.
func NewGenreCache(store cache.Store, docs search.DocumentStore, ttl time.Duration, opts ...readthrough.Option[model.Genre]) *GenreCache {
	return readthrough.New(CollectionGenres, store, docs, ttl, opts...)
}

// NewPersonCache constructs the person cache bound to CollectionPersons.
func NewPersonCache(store cache.Store, docs search.DocumentStore, ttl time.Duration, opts ...readthrough.Option[model.Person]) *PersonCache {
	return readthrough.New(CollectionPersons, store, docs, ttl, opts...)
}
