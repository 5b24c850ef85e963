package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/filmstack/catalog/search"
)

// handleGenreDetails serves GET /api/v1/genres/{id}.
func (a *API) handleGenreDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	genre, err := a.genres.GetByID(r.Context(), id)
	if err != nil {
		a.respondEngineError(w, r, err, "genre not found")
		return
	}

	respondJSON(w, http.StatusOK, genre)
}

// handleGenreList serves GET /api/v1/genres/ with the full genre listing
// (match-all search, paginated).
func (a *API) handleGenreList(w http.ResponseWriter, r *http.Request) {
	from, size, err := a.parsePage(r)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	genres, err := a.genres.Search(r.Context(), search.NewQuery(
		search.WithPage(from, size),
	))
	if err != nil {
		a.respondEngineError(w, r, err, "genres not found")
		return
	}

	respondJSON(w, http.StatusOK, genres)
}
