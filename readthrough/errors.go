package readthrough

import "github.com/cockroachdb/errors"

// ErrNotFound reports that no document exists for the given id or that a
// search matched nothing. It is an expected, non-exceptional outcome.
var ErrNotFound = errors.New("readthrough: not found")

// ErrStoreUnavailable reports that the document store could not be reached or
// returned a failure. Callers can retry or degrade; it is never conflated
// with ErrNotFound.
var ErrStoreUnavailable = errors.New("readthrough: document store unavailable")
