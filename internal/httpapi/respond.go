package httpapi

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"

	"github.com/filmstack/catalog/readthrough"
)

// errorResponse is the error payload shape: {"detail": "..."}.
type errorResponse struct {
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, errorResponse{Detail: detail})
}

// respondEngineError maps the engine's error taxonomy to status codes.
// notFoundDetail is the 404 message for this resource.
func (a *API) respondEngineError(w http.ResponseWriter, r *http.Request, err error, notFoundDetail string) {
	switch {
	case errors.Is(err, readthrough.ErrNotFound):
		respondError(w, http.StatusNotFound, notFoundDetail)
	case errors.Is(err, readthrough.ErrStoreUnavailable):
		a.logger.ErrorContext(r.Context(), "document store unavailable",
			"path", r.URL.Path, "error", err)
		respondError(w, http.StatusServiceUnavailable, "search backend unavailable")
	default:
		a.logger.ErrorContext(r.Context(), "unexpected error",
			"path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
