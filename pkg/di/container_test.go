package di

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/filmstack/catalog/internal/config"
)

// newSearchBackend fakes the document store's REST API and counts requests.
func newSearchBackend(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/movies/_doc/f1":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"found":   true,
				"_source": map[string]any{"id": "f1", "title": "Dune", "imdb_rating": 8.0},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func memoryConfig(esURL string) *config.Config {
	cfg := config.Default()
	cfg.Cache.Backend = "memory"
	cfg.Elasticsearch.URL = esURL
	return &cfg
}

func TestContainer_MemoryBackendEndToEnd(t *testing.T) {
	var hits atomic.Int64
	backend := newSearchBackend(t, &hits)
	defer backend.Close()

	c, err := New(context.Background(), memoryConfig(backend.URL), slog.Default(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	film, err := c.Films().GetByID(context.Background(), "f1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if film.Title != "Dune" {
		t.Errorf("title = %q, want Dune", film.Title)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("backend hit %d times, want 1", got)
	}

	// Served from cache: no further backend traffic.
	if _, err := c.Films().GetByID(context.Background(), "f1"); err != nil {
		t.Fatalf("second GetByID: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("backend hit %d times after cached lookup, want 1", got)
	}
}

func TestContainer_SharedInstances(t *testing.T) {
	var hits atomic.Int64
	backend := newSearchBackend(t, &hits)
	defer backend.Close()

	c, err := New(context.Background(), memoryConfig(backend.URL), slog.Default(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	if c.Films() != c.Films() {
		t.Error("Films() must return the same instance on every call")
	}
	if c.Genres() == nil || c.Persons() == nil {
		t.Error("all entity caches must be constructed")
	}
	if c.Store() == nil || c.DocumentStore() == nil {
		t.Error("store accessors must expose the wired backends")
	}
}

func TestContainer_UnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Backend = "invalid"

	if _, err := New(context.Background(), &cfg, slog.Default(), nil); err == nil {
		t.Error("New with unknown backend succeeded, want error")
	}
}
