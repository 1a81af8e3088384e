package querydsl

import (
	"fmt"

	"github.com/guenzelsen/querydsl/internal/types"
)

// scope holds the single child query of a nested, has_child or has_parent
// query.
type scope struct {
	query *types.Query
	err   error
	name  string
}

// GetError returns the internal error (for use by loader packages).
func (s *scope) GetError() error {
	return s.err
}

// SetError sets the internal error unless one is already recorded.
func (s *scope) SetError(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *scope) set(block func(*QueryBuilder)) {
	if s.err != nil {
		return
	}
	qb := New()
	if block != nil {
		block(qb)
	}
	q, err := qb.result()
	if err != nil {
		s.err = fmt.Errorf("%s.query: %w", s.name, err)
		return
	}
	if s.query != nil {
		s.err = fmt.Errorf("%w inside %s.query: use a bool query if multiple conditions are required", ErrMultipleQueries, s.name)
		return
	}
	s.query = q
}

func (s *scope) result() (*types.Query, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.query == nil {
		return nil, fmt.Errorf("%w for %s", ErrNoQuery, s.name)
	}
	return s.query, nil
}

// NestedQueryBuilder builds a nested query on a path.
type NestedQueryBuilder struct {
	scope
	nested *types.NestedQuery
}

func buildNested(path string, block func(*NestedQueryBuilder)) (*types.Query, error) {
	b := &NestedQueryBuilder{
		scope:  scope{name: "nested"},
		nested: &types.NestedQuery{Path: path},
	}
	if block != nil {
		block(b)
	}
	q, err := b.result()
	if err != nil {
		return nil, err
	}
	b.nested.Query = q
	return &types.Query{Kind: types.KindNested, Nested: b.nested}, nil
}

// Query defines the query run against the nested objects.
// Only one root-level query is allowed; use Bool for several conditions.
func (b *NestedQueryBuilder) Query(block func(*QueryBuilder)) *NestedQueryBuilder {
	b.set(block)
	return b
}

// ScoreMode sets how matching nested objects affect the root score.
func (b *NestedQueryBuilder) ScoreMode(mode ScoreMode) *NestedQueryBuilder {
	b.nested.ScoreMode = mode
	return b
}

// IgnoreUnmapped makes an unmapped path match nothing instead of failing.
func (b *NestedQueryBuilder) IgnoreUnmapped(ignore bool) *NestedQueryBuilder {
	b.nested.IgnoreUnmapped = ignore
	return b
}

// Boost sets the boost of the nested query.
func (b *NestedQueryBuilder) Boost(boost float64) *NestedQueryBuilder {
	b.nested.Boost = &boost
	return b
}

// Name sets the _name of the nested query.
func (b *NestedQueryBuilder) Name(name string) *NestedQueryBuilder {
	b.nested.Name = name
	return b
}

// HasChildQueryBuilder builds a has_child query for a child type.
type HasChildQueryBuilder struct {
	scope
	hasChild *types.HasChildQuery
}

func buildHasChild(childType string, block func(*HasChildQueryBuilder)) (*types.Query, error) {
	b := &HasChildQueryBuilder{
		scope:    scope{name: "hasChild"},
		hasChild: &types.HasChildQuery{Type: childType},
	}
	if block != nil {
		block(b)
	}
	q, err := b.result()
	if err != nil {
		return nil, err
	}
	b.hasChild.Query = q
	return &types.Query{Kind: types.KindHasChild, HasChild: b.hasChild}, nil
}

// Query defines the query run against the child documents.
// Only one root-level query is allowed; use Bool for several conditions.
func (b *HasChildQueryBuilder) Query(block func(*QueryBuilder)) *HasChildQueryBuilder {
	b.set(block)
	return b
}

// ScoreMode sets how matching children affect the parent score.
func (b *HasChildQueryBuilder) ScoreMode(mode ScoreMode) *HasChildQueryBuilder {
	b.hasChild.ScoreMode = mode
	return b
}

// MinChildren sets the minimum number of matching children.
func (b *HasChildQueryBuilder) MinChildren(n int) *HasChildQueryBuilder {
	b.hasChild.MinChildren = &n
	return b
}

// MaxChildren sets the maximum number of matching children.
func (b *HasChildQueryBuilder) MaxChildren(n int) *HasChildQueryBuilder {
	b.hasChild.MaxChildren = &n
	return b
}

// Boost sets the boost of the has_child query.
func (b *HasChildQueryBuilder) Boost(boost float64) *HasChildQueryBuilder {
	b.hasChild.Boost = &boost
	return b
}

// Name sets the _name of the has_child query.
func (b *HasChildQueryBuilder) Name(name string) *HasChildQueryBuilder {
	b.hasChild.Name = name
	return b
}

// HasParentQueryBuilder builds a has_parent query for a parent type.
type HasParentQueryBuilder struct {
	scope
	hasParent *types.HasParentQuery
}

func buildHasParent(parentType string, block func(*HasParentQueryBuilder)) (*types.Query, error) {
	b := &HasParentQueryBuilder{
		scope:     scope{name: "hasParent"},
		hasParent: &types.HasParentQuery{ParentType: parentType},
	}
	if block != nil {
		block(b)
	}
	q, err := b.result()
	if err != nil {
		return nil, err
	}
	b.hasParent.Query = q
	return &types.Query{Kind: types.KindHasParent, HasParent: b.hasParent}, nil
}

// Query defines the query run against the parent documents.
// Only one root-level query is allowed; use Bool for several conditions.
func (b *HasParentQueryBuilder) Query(block func(*QueryBuilder)) *HasParentQueryBuilder {
	b.set(block)
	return b
}

// Score makes the parent's relevance score flow into matching children.
func (b *HasParentQueryBuilder) Score(score bool) *HasParentQueryBuilder {
	b.hasParent.Score = score
	return b
}

// IgnoreUnmapped makes an unmapped parent type match nothing instead of failing.
func (b *HasParentQueryBuilder) IgnoreUnmapped(ignore bool) *HasParentQueryBuilder {
	b.hasParent.IgnoreUnmapped = ignore
	return b
}

// Boost sets the boost of the has_parent query.
func (b *HasParentQueryBuilder) Boost(boost float64) *HasParentQueryBuilder {
	b.hasParent.Boost = &boost
	return b
}

// Name sets the _name of the has_parent query.
func (b *HasParentQueryBuilder) Name(name string) *HasParentQueryBuilder {
	b.hasParent.Name = name
	return b
}
