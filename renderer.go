package querydsl

import (
	"fmt"

	"github.com/guenzelsen/querydsl/internal/types"
)

// Renderer defines the interface for backend-specific rendering.
// Implementations convert a query tree into the query body of a search backend.
type Renderer interface {
	// Render converts a query tree to a QueryResult.
	Render(q *types.Query) (*types.QueryResult, error)
}

// Render validates q and renders it with r.
func Render(q *Query, r Renderer) (*QueryResult, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer cannot be nil")
	}
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return r.Render(q)
}
