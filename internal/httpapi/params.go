package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/filmstack/catalog/search"
)

// Query parameter names follow the original public API:
// ?query=...&sort=-imdb_rating&filter[genre]=<id>&page[number]=1&page[size]=50
const (
	paramQuery      = "query"
	paramSort       = "sort"
	paramPageNumber = "page[number]"
	paramPageSize   = "page[size]"
	paramGenre      = "filter[genre]"
)

// sortableFields lists the fields a client may sort films by.
var sortableFields = map[string]bool{
	"imdb_rating": true,
}

// parsePage reads 1-based page[number] and page[size], applies the configured
// default and cap, and returns the search offset and limit.
func (a *API) parsePage(r *http.Request) (from, size int, err error) {
	size = a.paging.DefaultPageSize
	if raw := r.URL.Query().Get(paramPageSize); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return 0, 0, errors.Newf("invalid %s: %q", paramPageSize, raw)
		}
		if size > a.paging.MaxPageSize {
			size = a.paging.MaxPageSize
		}
	}

	number := 1
	if raw := r.URL.Query().Get(paramPageNumber); raw != "" {
		number, err = strconv.Atoi(raw)
		if err != nil || number <= 0 {
			return 0, 0, errors.Newf("invalid %s: %q", paramPageNumber, raw)
		}
	}

	return (number - 1) * size, size, nil
}

// parseSort reads a sort directive of the form "field" or "-field".
func parseSort(raw string) (search.QueryOption, error) {
	order := search.SortAsc
	field := raw
	if strings.HasPrefix(raw, "-") {
		order = search.SortDesc
		field = strings.TrimPrefix(raw, "-")
	}
	if !sortableFields[field] {
		return nil, errors.Newf("invalid sort field: %q", field)
	}
	return search.WithSort(field, order), nil
}
