package querydsl

import "errors"

// Sentinel errors returned (wrapped) by the builders.
var (
	// ErrMultipleQueries is returned when a single-query scope receives a second query.
	ErrMultipleQueries = errors.New("only one query can be specified")

	// ErrNoQuery is returned when a single-query scope is built empty.
	ErrNoQuery = errors.New("a query must be specified")

	// ErrInvalidQuery wraps structural validation failures of a finished tree.
	ErrInvalidQuery = errors.New("invalid query")
)
