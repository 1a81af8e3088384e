package querydsl

import "github.com/guenzelsen/querydsl/internal/types"

// QueryListBuilder collects any number of queries in call order.
// It is the scope handed to bool clauses.
type QueryListBuilder struct {
	queries []*types.Query
	err     error
}

func (l *QueryListBuilder) add(q *types.Query, err error) *QueryListBuilder {
	if l.err != nil {
		return l
	}
	if err != nil {
		l.err = err
		return l
	}
	l.queries = append(l.queries, q)
	return l
}

// GetError returns the internal error (for use by loader packages).
func (l *QueryListBuilder) GetError() error {
	return l.err
}

// SetError sets the internal error unless one is already recorded.
func (l *QueryListBuilder) SetError(err error) {
	if l.err == nil {
		l.err = err
	}
}

// Len returns the number of queries collected so far.
func (l *QueryListBuilder) Len() int {
	return len(l.queries)
}

// Match adds a match query for a string value.
func (l *QueryListBuilder) Match(field, value string, opts ...MatchOption) *QueryListBuilder {
	return l.add(newMatch(field, types.String(value), opts), nil)
}

// MatchInt adds a match query for an integer value.
func (l *QueryListBuilder) MatchInt(field string, value int64, opts ...MatchOption) *QueryListBuilder {
	return l.add(newMatch(field, types.Int(value), opts), nil)
}

// MatchBool adds a match query for a boolean value.
func (l *QueryListBuilder) MatchBool(field string, value bool, opts ...MatchOption) *QueryListBuilder {
	return l.add(newMatch(field, types.Bool(value), opts), nil)
}

// MatchValue adds a match query for an already typed value.
func (l *QueryListBuilder) MatchValue(field string, value FieldValue, opts ...MatchOption) *QueryListBuilder {
	return l.add(newMatch(field, value, opts), nil)
}

// Term adds a term query for a string value.
func (l *QueryListBuilder) Term(field, value string, opts ...TermOption) *QueryListBuilder {
	return l.add(newTerm(field, types.String(value), opts), nil)
}

// TermInt adds a term query for an integer value.
func (l *QueryListBuilder) TermInt(field string, value int64, opts ...TermOption) *QueryListBuilder {
	return l.add(newTerm(field, types.Int(value), opts), nil)
}

// TermBool adds a term query for a boolean value.
func (l *QueryListBuilder) TermBool(field string, value bool, opts ...TermOption) *QueryListBuilder {
	return l.add(newTerm(field, types.Bool(value), opts), nil)
}

// TermValue adds a term query for an already typed value.
func (l *QueryListBuilder) TermValue(field string, value FieldValue, opts ...TermOption) *QueryListBuilder {
	return l.add(newTerm(field, value, opts), nil)
}

// Terms adds a terms query.
func (l *QueryListBuilder) Terms(field string, values []string, opts ...TermsOption) *QueryListBuilder {
	return l.add(newTerms(field, stringValues(values), opts), nil)
}

// TermsValues adds a terms query for already typed values.
func (l *QueryListBuilder) TermsValues(field string, values []FieldValue, opts ...TermsOption) *QueryListBuilder {
	return l.add(newTerms(field, values, opts), nil)
}

// Wildcard adds a wildcard query.
func (l *QueryListBuilder) Wildcard(field, pattern string, opts ...WildcardOption) *QueryListBuilder {
	return l.add(newWildcard(field, pattern, opts), nil)
}

// SimpleQueryString adds a simple_query_string query over fields.
func (l *QueryListBuilder) SimpleQueryString(query string, fields []string, opts ...SimpleQueryStringOption) *QueryListBuilder {
	return l.add(newSimpleQueryString(query, fields, opts), nil)
}

// MatchAll adds a match_all query.
func (l *QueryListBuilder) MatchAll(opts ...MatchAllOption) *QueryListBuilder {
	return l.add(newMatchAll(opts), nil)
}

// Nested adds a nested query on path.
func (l *QueryListBuilder) Nested(path string, block func(*NestedQueryBuilder)) *QueryListBuilder {
	if l.err != nil {
		return l
	}
	return l.add(buildNested(path, block))
}

// Bool adds a bool query.
func (l *QueryListBuilder) Bool(block func(*BoolQueryBuilder)) *QueryListBuilder {
	if l.err != nil {
		return l
	}
	return l.add(buildBool(block))
}

// HasChild adds a has_child query.
func (l *QueryListBuilder) HasChild(childType string, block func(*HasChildQueryBuilder)) *QueryListBuilder {
	if l.err != nil {
		return l
	}
	return l.add(buildHasChild(childType, block))
}

// HasParent adds a has_parent query.
func (l *QueryListBuilder) HasParent(parentType string, block func(*HasParentQueryBuilder)) *QueryListBuilder {
	if l.err != nil {
		return l
	}
	return l.add(buildHasParent(parentType, block))
}

func (l *QueryListBuilder) result() ([]*types.Query, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.queries, nil
}
