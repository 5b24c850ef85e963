package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/filmstack/catalog/search"
)

// KeySeparator delimits segments of a cache key and of the canonical query
// form fed to the fingerprint hash.
const KeySeparator = "::"

// EntityKey builds the collection-scoped identity key for a single entity.
// Scoping by collection prevents id collisions between collections that
// share an id value space.
func EntityKey(collection, id string) string {
	return collection + ":" + id
}

// QueryKey builds the cache key for a search query against a collection.
func QueryKey(collection string, q search.Query) string {
	return collection + ":q:" + Fingerprint(q)
}

// Fingerprint maps a query to a deterministic, collision-resistant hex key.
//
// The hash input is an explicit canonical rendering of every query field in a
// fixed order, with presence markers for optional fields. It never passes the
// query through a map, so the result cannot depend on iteration order; two
// structurally equal queries always fingerprint identically, and changing any
// single field changes the result with overwhelming probability (SHA-256).
// Total over any well-formed Query.
func Fingerprint(q search.Query) string {
	var b strings.Builder

	b.WriteString("term=")
	writeString(&b, q.Term())

	b.WriteString(KeySeparator)
	b.WriteString("page=")
	if from, size, ok := q.Page(); ok {
		b.WriteString(strconv.Itoa(from))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(size))
	} else {
		b.WriteString("default")
	}

	b.WriteString(KeySeparator)
	b.WriteString("sort=")
	if s, ok := q.SortBy(); ok {
		writeString(&b, s.Field)
		b.WriteByte(':')
		b.WriteString(string(s.Order))
	} else {
		b.WriteString("none")
	}

	// Filters are already canonically ordered by the Query constructor.
	for _, f := range q.Filters() {
		b.WriteString(KeySeparator)
		b.WriteString("filter=")
		writeString(&b, f.Field)
		b.WriteByte('=')
		writeString(&b, f.Value)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// writeString length-prefixes free-form values so a value containing the
// separator or delimiter bytes cannot render identically to a different
// query's canonical form.
func writeString(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte('#')
	b.WriteString(s)
}
