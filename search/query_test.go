package search

import (
	"reflect"
	"testing"
)

func TestNewQuery_CanonicalFilterOrder(t *testing.T) {
	q1 := NewQuery(
		WithFilter("genre", "scifi"),
		WithFilter("director", "lynch"),
	)
	q2 := NewQuery(
		WithFilter("director", "lynch"),
		WithFilter("genre", "scifi"),
	)

	if !reflect.DeepEqual(q1.Filters(), q2.Filters()) {
		t.Errorf("filter order depends on construction order:\nq1: %+v\nq2: %+v", q1.Filters(), q2.Filters())
	}

	want := []Filter{
		{Field: "director", Value: "lynch"},
		{Field: "genre", Value: "scifi"},
	}
	if got := q1.Filters(); !reflect.DeepEqual(got, want) {
		t.Errorf("Filters() = %+v, want %+v", got, want)
	}
}

func TestQuery_Accessors(t *testing.T) {
	q := NewQuery(
		WithTerm("dune"),
		WithPage(20, 10),
		WithSort("imdb_rating", SortDesc),
	)

	if q.Term() != "dune" {
		t.Errorf("Term() = %q, want %q", q.Term(), "dune")
	}
	from, size, ok := q.Page()
	if !ok || from != 20 || size != 10 {
		t.Errorf("Page() = (%d, %d, %v), want (20, 10, true)", from, size, ok)
	}
	s, ok := q.SortBy()
	if !ok || s.Field != "imdb_rating" || s.Order != SortDesc {
		t.Errorf("SortBy() = (%+v, %v), want imdb_rating desc", s, ok)
	}
}

func TestQuery_ZeroValueDefaults(t *testing.T) {
	q := NewQuery()

	if q.Term() != "" {
		t.Errorf("Term() = %q, want empty", q.Term())
	}
	if _, _, ok := q.Page(); ok {
		t.Error("Page() reports pagination on an empty query")
	}
	if _, ok := q.SortBy(); ok {
		t.Error("SortBy() reports a sort on an empty query")
	}
	if q.Filters() != nil {
		t.Errorf("Filters() = %+v, want nil", q.Filters())
	}
}

func TestQuery_FiltersReturnsCopy(t *testing.T) {
	q := NewQuery(WithFilter("genre", "drama"))
	fs := q.Filters()
	fs[0].Value = "mutated"

	if got := q.Filters()[0].Value; got != "drama" {
		t.Errorf("query filters mutated through returned slice: %q", got)
	}
}

func TestQuery_Body(t *testing.T) {
	q := NewQuery(
		WithTerm("war"),
		WithPage(10, 50),
		WithSort("imdb_rating", SortDesc),
		WithFilter("genre", "Sci-Fi"),
	)

	body := q.Body()

	if body["from"] != 10 || body["size"] != 50 {
		t.Errorf("pagination keys = from:%v size:%v, want 10/50", body["from"], body["size"])
	}

	sortClause, ok := body["sort"].([]any)
	if !ok || len(sortClause) != 1 {
		t.Fatalf("sort clause = %v, want one directive", body["sort"])
	}
	directive := sortClause[0].(map[string]any)
	if directive["imdb_rating"] != "desc" {
		t.Errorf("sort directive = %v, want imdb_rating desc", directive)
	}

	must := body["query"].(map[string]any)["bool"].(map[string]any)["must"].([]any)
	if len(must) != 2 {
		t.Fatalf("must has %d clauses, want multi_match + one filter", len(must))
	}
	match := must[0].(map[string]any)["multi_match"].(map[string]any)
	if match["query"] != "war" {
		t.Errorf("multi_match query = %v, want war", match["query"])
	}
}

func TestQuery_BodyEmptyTermMatchesAll(t *testing.T) {
	// A listing query carries no term; it must render match_all, not a
	// multi_match over the empty string, which matches no documents.
	body := NewQuery(WithPage(0, 10)).Body()

	must := body["query"].(map[string]any)["bool"].(map[string]any)["must"].([]any)
	if len(must) != 1 {
		t.Fatalf("must has %d clauses, want just match_all", len(must))
	}
	first := must[0].(map[string]any)
	if _, ok := first["match_all"]; !ok {
		t.Errorf("first clause = %v, want match_all", first)
	}
	if _, ok := first["multi_match"]; ok {
		t.Error("term-less query must not render a multi_match clause")
	}

	// Filter-only queries keep the filter clause alongside match_all.
	filtered := NewQuery(WithFilter("genre", "Drama")).Body()
	filteredMust := filtered["query"].(map[string]any)["bool"].(map[string]any)["must"].([]any)
	if len(filteredMust) != 2 {
		t.Fatalf("must has %d clauses, want match_all + one filter", len(filteredMust))
	}
	if _, ok := filteredMust[0].(map[string]any)["match_all"]; !ok {
		t.Errorf("first clause = %v, want match_all", filteredMust[0])
	}
}

func TestQuery_BodyOmitsAbsentFields(t *testing.T) {
	body := NewQuery(WithTerm("dune")).Body()

	for _, key := range []string{"from", "size", "sort"} {
		if _, present := body[key]; present {
			t.Errorf("body includes %q for a query without it", key)
		}
	}
}
