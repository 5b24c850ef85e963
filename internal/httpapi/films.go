package httpapi

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"

	"github.com/filmstack/catalog/model"
	"github.com/filmstack/catalog/readthrough"
	"github.com/filmstack/catalog/search"
)

// ShortFilm is the compact film representation returned by search.
type ShortFilm struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	IMDBRating float64 `json:"imdb_rating"`
}

// handleFilmDetails serves GET /api/v1/films/{id} with the full film.
func (a *API) handleFilmDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	film, err := a.films.GetByID(r.Context(), id)
	if err != nil {
		a.respondEngineError(w, r, err, "film not found")
		return
	}

	respondJSON(w, http.StatusOK, film)
}

// handleFilmSearch serves GET /api/v1/films/search with free-text search,
// genre filtering, sorting, and pagination.
func (a *API) handleFilmSearch(w http.ResponseWriter, r *http.Request) {
	from, size, err := a.parsePage(r)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	opts := []search.QueryOption{
		search.WithTerm(r.URL.Query().Get(paramQuery)),
		search.WithPage(from, size),
	}

	if raw := r.URL.Query().Get(paramSort); raw != "" {
		sortOpt, err := parseSort(raw)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		opts = append(opts, sortOpt)
	}

	// The genre filter arrives as a genre id; films index genres by name, so
	// the id is resolved through the genre cache first (read-through as well).
	if genreID := r.URL.Query().Get(paramGenre); genreID != "" {
		genre, err := a.genres.GetByID(r.Context(), genreID)
		if err != nil {
			if errors.Is(err, readthrough.ErrNotFound) {
				respondError(w, http.StatusNotFound, "genre not found")
				return
			}
			a.respondEngineError(w, r, err, "genre not found")
			return
		}
		opts = append(opts, search.WithFilter("genre", genre.Name))
	}

	films, err := a.films.Search(r.Context(), search.NewQuery(opts...))
	if err != nil {
		a.respondEngineError(w, r, err, "films not found")
		return
	}

	out := make([]ShortFilm, 0, len(films))
	for _, f := range films {
		out = append(out, shortFilm(f))
	}
	respondJSON(w, http.StatusOK, out)
}

func shortFilm(f model.Film) ShortFilm {
	return ShortFilm{ID: f.ID, Title: f.Title, IMDBRating: f.IMDBRating}
}
