package search

import (
	"sort"
)

// SortOrder is the direction of a sort directive.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filter is a single structural term filter, e.g. field "genre" equals "Sci-Fi".
type Filter struct {
	Field string
	Value string
}

// Sort is a single-field sort directive.
type Sort struct {
	Field string
	Order SortOrder
}

// Query is an immutable search request: an optional free-text term, optional
// pagination, at most one sort directive, and zero or more term filters.
//
// Queries built with the same parameters are equal values regardless of the
// order filters were supplied in: the constructor canonicalizes filter order,
// so Query is safe to fingerprint and to use as a cache identity.
type Query struct {
	term    string
	from    int
	size    int
	hasPage bool
	sortBy  *Sort
	filters []Filter
}

// QueryOption configures a Query under construction.
type QueryOption func(*Query)

// WithTerm sets the free-text search term.
func WithTerm(term string) QueryOption {
	return func(q *Query) { q.term = term }
}

// WithPage sets pagination. from is the result offset, size the page length.
func WithPage(from, size int) QueryOption {
	return func(q *Query) {
		q.from = from
		q.size = size
		q.hasPage = true
	}
}

// WithSort sets the sort directive. At most one is honored; the last wins.
func WithSort(field string, order SortOrder) QueryOption {
	return func(q *Query) { q.sortBy = &Sort{Field: field, Order: order} }
}

// WithFilter adds a term filter. Filters may be supplied in any order.
func WithFilter(field, value string) QueryOption {
	return func(q *Query) { q.filters = append(q.filters, Filter{Field: field, Value: value}) }
}

// NewQuery builds an immutable Query from the supplied options.
func NewQuery(opts ...QueryOption) Query {
	var q Query
	for _, opt := range opts {
		opt(&q)
	}
	// Canonical filter order makes structurally equal queries equal values.
	sort.Slice(q.filters, func(i, j int) bool {
		if q.filters[i].Field != q.filters[j].Field {
			return q.filters[i].Field < q.filters[j].Field
		}
		return q.filters[i].Value < q.filters[j].Value
	})
	return q
}

// Term returns the free-text term, empty when unset.
func (q Query) Term() string { return q.term }

// Page returns the pagination offset and size. ok is false when the query
// carries no explicit pagination and the backend default applies.
func (q Query) Page() (from, size int, ok bool) { return q.from, q.size, q.hasPage }

// SortBy returns the sort directive, or ok=false when none is set.
func (q Query) SortBy() (Sort, bool) {
	if q.sortBy == nil {
		return Sort{}, false
	}
	return *q.sortBy, true
}

// Filters returns the canonically ordered filters. The returned slice is a
// copy; mutating it does not affect the query.
func (q Query) Filters() []Filter {
	if len(q.filters) == 0 {
		return nil
	}
	out := make([]Filter, len(q.filters))
	copy(out, q.filters)
	return out
}

// Body renders the query as a search-engine request body. The shape follows
// the engine's bool/multi_match/term DSL: the free-text term becomes a
// multi_match clause, each filter a term clause, sort and pagination map to
// their top-level keys. A term-less query renders match_all instead of an
// empty multi_match, which the engine analyzes to zero terms and matches
// nothing; listings and filter-only queries must still match documents.
func (q Query) Body() map[string]any {
	var first map[string]any
	if q.term != "" {
		first = map[string]any{"multi_match": map[string]any{"query": q.term}}
	} else {
		first = map[string]any{"match_all": map[string]any{}}
	}
	must := []any{first}
	for _, f := range q.filters {
		must = append(must, map[string]any{
			"bool": map[string]any{
				"filter": map[string]any{
					"bool": map[string]any{
						"must": map[string]any{
							"term": map[string]any{f.Field: f.Value},
						},
					},
				},
			},
		})
	}

	body := map[string]any{
		"query": map[string]any{"bool": map[string]any{"must": must}},
	}
	if q.hasPage {
		body["from"] = q.from
		body["size"] = q.size
	}
	if q.sortBy != nil {
		body["sort"] = []any{
			map[string]any{q.sortBy.Field: string(q.sortBy.Order)},
		}
	}
	return body
}
