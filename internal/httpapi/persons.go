package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/filmstack/catalog/search"
)

// handlePersonDetails serves GET /api/v1/persons/{id}.
func (a *API) handlePersonDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	person, err := a.persons.GetByID(r.Context(), id)
	if err != nil {
		a.respondEngineError(w, r, err, "person not found")
		return
	}

	respondJSON(w, http.StatusOK, person)
}

// handlePersonFilms serves GET /api/v1/persons/{id}/film with the person's
// film credits, projected to the short film shape.
func (a *API) handlePersonFilms(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	person, err := a.persons.GetByID(r.Context(), id)
	if err != nil {
		a.respondEngineError(w, r, err, "person not found")
		return
	}

	out := make([]ShortFilm, 0, len(person.Films))
	for _, f := range person.Films {
		out = append(out, ShortFilm{ID: f.ID, Title: f.Title, IMDBRating: f.IMDBRating})
	}
	respondJSON(w, http.StatusOK, out)
}

// handlePersonSearch serves GET /api/v1/persons/search with free-text search
// and pagination.
func (a *API) handlePersonSearch(w http.ResponseWriter, r *http.Request) {
	from, size, err := a.parsePage(r)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	persons, err := a.persons.Search(r.Context(), search.NewQuery(
		search.WithTerm(r.URL.Query().Get(paramQuery)),
		search.WithPage(from, size),
	))
	if err != nil {
		a.respondEngineError(w, r, err, "persons not found")
		return
	}

	respondJSON(w, http.StatusOK, persons)
}
