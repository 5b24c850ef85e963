// Package httpapi exposes the catalog over HTTP. It is thin translation
// glue: request parameters become search queries, engine results become
// response models, and the engine's error taxonomy maps onto status codes
// (not found -> 404, store unavailable -> 503).
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/filmstack/catalog/catalog"
	"github.com/filmstack/catalog/internal/config"
)

// API holds the per-entity caches and pagination policy for the HTTP layer.
// The caches are the process-wide instances from the DI container; the API
// never constructs its own.
type API struct {
	films   *catalog.FilmCache
	genres  *catalog.GenreCache
	persons *catalog.PersonCache
	logger  *slog.Logger
	paging  config.APIConfig
}

// New creates the HTTP API over the given entity caches.
func New(films *catalog.FilmCache, genres *catalog.GenreCache, persons *catalog.PersonCache, paging config.APIConfig, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		films:   films,
		genres:  genres,
		persons: persons,
		logger:  logger,
		paging:  paging,
	}
}

// Routes builds the router for the full API surface.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", a.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/films", func(r chi.Router) {
			r.Get("/search", a.handleFilmSearch)
			r.Get("/{id}", a.handleFilmDetails)
		})
		r.Route("/genres", func(r chi.Router) {
			r.Get("/", a.handleGenreList)
			r.Get("/{id}", a.handleGenreDetails)
		})
		r.Route("/persons", func(r chi.Router) {
			r.Get("/search", a.handlePersonSearch)
			r.Get("/{id}", a.handlePersonDetails)
			r.Get("/{id}/film", a.handlePersonFilms)
		})
	})

	return r
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
