// Package search defines the document-store boundary: the immutable Query
// value, the narrow DocumentStore interface the cache engine reads through,
// and an Elasticsearch-compatible REST adapter.
package search

import (
	"context"

	"github.com/cockroachdb/errors"
)

// ErrDocumentNotFound reports that the store holds no document for the given
// id or query. It is an expected outcome, distinct from transport or backend
// failures, which are returned as ordinary errors.
var ErrDocumentNotFound = errors.New("search: document not found")

// DocumentStore is the narrow read interface to the searchable backend.
//
// Both methods return raw document sources; decoding into entity types is the
// caller's concern. Search returns sources in the backend's ranking order.
// Implementations must be safe for concurrent use.
type DocumentStore interface {
	// GetByID fetches a single document source by collection and id.
	// Returns ErrDocumentNotFound when the document does not exist.
	GetByID(ctx context.Context, collection, id string) ([]byte, error)

	// Search executes the query against a collection and returns the matching
	// document sources in rank order. An empty result is not an error.
	Search(ctx context.Context, collection string, q Query) ([][]byte, error)
}
