package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestElasticStore_GetByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movies/_doc/f1" {
			t.Errorf("path = %q, want /movies/_doc/f1", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"found":   true,
			"_source": map[string]any{"id": "f1", "title": "Dune"},
		})
	}))
	defer srv.Close()

	store := NewElasticStore(srv.URL, time.Second)
	raw, err := store.GetByID(context.Background(), "movies", "f1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	var doc struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal source: %v", err)
	}
	if doc.ID != "f1" || doc.Title != "Dune" {
		t.Errorf("source = %+v, want f1/Dune", doc)
	}
}

func TestElasticStore_GetByID_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"found": false})
	}))
	defer srv.Close()

	store := NewElasticStore(srv.URL, time.Second)
	_, err := store.GetByID(context.Background(), "movies", "missing")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("err = %v, want ErrDocumentNotFound", err)
	}
}

func TestElasticStore_GetByID_BackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := NewElasticStore(srv.URL, time.Second)
	_, err := store.GetByID(context.Background(), "movies", "f1")
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
	if errors.Is(err, ErrDocumentNotFound) {
		t.Error("backend failure must not be reported as not-found")
	}
}

func TestElasticStore_Search(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movies/_search" {
			t.Errorf("path = %q, want /movies/_search", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"hits": map[string]any{
				"hits": []any{
					map[string]any{"_source": map[string]any{"id": "f1", "title": "Dune"}},
					map[string]any{"_source": map[string]any{"id": "f2", "title": "Dune: Part Two"}},
				},
			},
		})
	}))
	defer srv.Close()

	store := NewElasticStore(srv.URL, time.Second)
	q := NewQuery(WithTerm("dune"), WithPage(0, 10))

	docs, err := store.Search(context.Background(), "movies", q)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d hits, want 2", len(docs))
	}

	// Hit order must match the response order.
	var first struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(docs[0], &first); err != nil {
		t.Fatalf("unmarshal first hit: %v", err)
	}
	if first.ID != "f1" {
		t.Errorf("first hit id = %q, want f1", first.ID)
	}

	if _, ok := gotBody["query"]; !ok {
		t.Error("request body missing the query clause")
	}
	if gotBody["size"] != float64(10) {
		t.Errorf("request size = %v, want 10", gotBody["size"])
	}
}

func TestElasticStore_Search_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"hits": map[string]any{"hits": []any{}},
		})
	}))
	defer srv.Close()

	store := NewElasticStore(srv.URL, time.Second)
	docs, err := store.Search(context.Background(), "movies", NewQuery(WithTerm("zzz")))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("got %d hits, want 0 (empty result is not an error)", len(docs))
	}
}

func TestElasticStore_Search_Unreachable(t *testing.T) {
	store := NewElasticStore("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := store.Search(context.Background(), "movies", NewQuery())
	if err == nil {
		t.Fatal("expected a transport error")
	}
	if errors.Is(err, ErrDocumentNotFound) {
		t.Error("transport failure must not be reported as not-found")
	}
}
