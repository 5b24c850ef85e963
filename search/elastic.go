package search

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
)

// DefaultRequestTimeout bounds a single document-store round trip when the
// caller's context carries no earlier deadline.
const DefaultRequestTimeout = 10 * time.Second

// ElasticStore talks to an Elasticsearch-compatible backend over its REST API.
// A collection maps 1:1 to an index. The embedded http.Client pools
// connections and is safe for concurrent use across requests.
type ElasticStore struct {
	baseURL    string
	httpClient *http.Client
}

var _ DocumentStore = (*ElasticStore)(nil)

// NewElasticStore creates a store adapter for the backend at baseURL
// (e.g. http://localhost:9200). A zero timeout uses DefaultRequestTimeout.
func NewElasticStore(baseURL string, timeout time.Duration) *ElasticStore {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &ElasticStore{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// getResponse is the envelope of GET /{index}/_doc/{id}.
type getResponse struct {
	Found  bool            `json:"found"`
	Source json.RawMessage `json:"_source"`
}

// searchResponse is the envelope of POST /{index}/_search.
type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// GetByID implements DocumentStore.
func (s *ElasticStore) GetByID(ctx context.Context, collection, id string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/%s/_doc/%s", s.baseURL, collection, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "search: build get request")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "search: get %s/%s", collection, id)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrDocumentNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "get", collection)
	}

	var out getResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrapf(err, "search: decode get response for %s/%s", collection, id)
	}
	if !out.Found || len(out.Source) == 0 {
		return nil, ErrDocumentNotFound
	}
	return out.Source, nil
}

// Search implements DocumentStore. Hit order is the backend's ranking order
// and is preserved in the returned slice.
func (s *ElasticStore) Search(ctx context.Context, collection string, q Query) ([][]byte, error) {
	payload, err := json.Marshal(q.Body())
	if err != nil {
		return nil, errors.Wrap(err, "search: marshal query body")
	}

	endpoint := fmt.Sprintf("%s/%s/_search", s.baseURL, collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "search: build search request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "search: search %s", collection)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "search", collection)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrapf(err, "search: decode search response for %s", collection)
	}

	docs := make([][]byte, 0, len(out.Hits.Hits))
	for _, hit := range out.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, nil
}

// statusError builds an error for a non-2xx backend response, carrying a
// truncated body for diagnostics.
func statusError(resp *http.Response, op, collection string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return errors.Newf("search: %s %s returned status %d: %s", op, collection, resp.StatusCode, string(body))
}
