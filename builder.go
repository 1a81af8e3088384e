package querydsl

import (
	"fmt"

	"github.com/guenzelsen/querydsl/internal/types"
)

// QueryBuilder builds exactly one query. To combine queries, use Bool.
type QueryBuilder struct {
	query *types.Query
	err   error
}

// New creates an empty root query builder.
func New() *QueryBuilder {
	return &QueryBuilder{}
}

// Build runs block against a new QueryBuilder and returns its validated query.
func Build(block func(*QueryBuilder)) (*Query, error) {
	b := New()
	if block != nil {
		block(b)
	}
	return b.Build()
}

// MustBuild is Build that panics on error.
func MustBuild(block func(*QueryBuilder)) *Query {
	q, err := Build(block)
	if err != nil {
		panic(err)
	}
	return q
}

// GetError returns the internal error (for use by loader packages).
func (b *QueryBuilder) GetError() error {
	return b.err
}

// SetError sets the internal error unless one is already recorded.
func (b *QueryBuilder) SetError(err error) {
	if b.err == nil {
		b.err = err
	}
}

// set stores q as the scope's query, or records why it cannot.
func (b *QueryBuilder) set(q *types.Query, err error) *QueryBuilder {
	if b.err != nil {
		return b
	}
	if err != nil {
		b.err = err
		return b
	}
	if b.query != nil {
		b.err = fmt.Errorf("%w at the root level: to combine queries, use a bool query", ErrMultipleQueries)
		return b
	}
	b.query = q
	return b
}

// Match adds a match query for a string value.
func (b *QueryBuilder) Match(field, value string, opts ...MatchOption) *QueryBuilder {
	return b.set(newMatch(field, types.String(value), opts), nil)
}

// MatchInt adds a match query for an integer value.
func (b *QueryBuilder) MatchInt(field string, value int64, opts ...MatchOption) *QueryBuilder {
	return b.set(newMatch(field, types.Int(value), opts), nil)
}

// MatchBool adds a match query for a boolean value.
func (b *QueryBuilder) MatchBool(field string, value bool, opts ...MatchOption) *QueryBuilder {
	return b.set(newMatch(field, types.Bool(value), opts), nil)
}

// MatchValue adds a match query for an already typed value.
func (b *QueryBuilder) MatchValue(field string, value FieldValue, opts ...MatchOption) *QueryBuilder {
	return b.set(newMatch(field, value, opts), nil)
}

// Term adds a term query for a string value.
func (b *QueryBuilder) Term(field, value string, opts ...TermOption) *QueryBuilder {
	return b.set(newTerm(field, types.String(value), opts), nil)
}

// TermInt adds a term query for an integer value.
func (b *QueryBuilder) TermInt(field string, value int64, opts ...TermOption) *QueryBuilder {
	return b.set(newTerm(field, types.Int(value), opts), nil)
}

// TermBool adds a term query for a boolean value.
func (b *QueryBuilder) TermBool(field string, value bool, opts ...TermOption) *QueryBuilder {
	return b.set(newTerm(field, types.Bool(value), opts), nil)
}

// TermValue adds a term query for an already typed value.
func (b *QueryBuilder) TermValue(field string, value FieldValue, opts ...TermOption) *QueryBuilder {
	return b.set(newTerm(field, value, opts), nil)
}

// Terms adds a terms query; a document matches if the field contains any of values.
func (b *QueryBuilder) Terms(field string, values []string, opts ...TermsOption) *QueryBuilder {
	return b.set(newTerms(field, stringValues(values), opts), nil)
}

// TermsValues adds a terms query for already typed values.
func (b *QueryBuilder) TermsValues(field string, values []FieldValue, opts ...TermsOption) *QueryBuilder {
	return b.set(newTerms(field, values, opts), nil)
}

// Wildcard adds a wildcard query.
func (b *QueryBuilder) Wildcard(field, pattern string, opts ...WildcardOption) *QueryBuilder {
	return b.set(newWildcard(field, pattern, opts), nil)
}

// SimpleQueryString adds a simple_query_string query over fields.
func (b *QueryBuilder) SimpleQueryString(query string, fields []string, opts ...SimpleQueryStringOption) *QueryBuilder {
	return b.set(newSimpleQueryString(query, fields, opts), nil)
}

// MatchAll adds a match_all query.
func (b *QueryBuilder) MatchAll(opts ...MatchAllOption) *QueryBuilder {
	return b.set(newMatchAll(opts), nil)
}

// Nested adds a nested query on path.
func (b *QueryBuilder) Nested(path string, block func(*NestedQueryBuilder)) *QueryBuilder {
	if b.err != nil {
		return b
	}
	return b.set(buildNested(path, block))
}

// Bool adds a bool query.
func (b *QueryBuilder) Bool(block func(*BoolQueryBuilder)) *QueryBuilder {
	if b.err != nil {
		return b
	}
	return b.set(buildBool(block))
}

// HasChild adds a has_child query for children of childType.
func (b *QueryBuilder) HasChild(childType string, block func(*HasChildQueryBuilder)) *QueryBuilder {
	if b.err != nil {
		return b
	}
	return b.set(buildHasChild(childType, block))
}

// HasParent adds a has_parent query for parents of parentType.
func (b *QueryBuilder) HasParent(parentType string, block func(*HasParentQueryBuilder)) *QueryBuilder {
	if b.err != nil {
		return b
	}
	return b.set(buildHasParent(parentType, block))
}

// result returns the scope's query without validating the tree.
func (b *QueryBuilder) result() (*types.Query, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.query == nil {
		return nil, ErrNoQuery
	}
	return b.query, nil
}

// Build returns the validated query or the first recorded error.
func (b *QueryBuilder) Build() (*Query, error) {
	q, err := b.result()
	if err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return q, nil
}

// MustBuild returns the query or panics on error.
func (b *QueryBuilder) MustBuild() *Query {
	q, err := b.Build()
	if err != nil {
		panic(err)
	}
	return q
}
