package querydsl

import "github.com/guenzelsen/querydsl/internal/types"

// Leaf constructors shared by QueryBuilder and QueryListBuilder.

func newMatch(field string, value types.FieldValue, opts []MatchOption) *types.Query {
	m := &types.MatchQuery{Field: field, Value: value}
	for _, opt := range opts {
		opt(m)
	}
	return &types.Query{Kind: types.KindMatch, Match: m}
}

func newTerm(field string, value types.FieldValue, opts []TermOption) *types.Query {
	t := &types.TermQuery{Field: field, Value: value}
	for _, opt := range opts {
		opt(t)
	}
	return &types.Query{Kind: types.KindTerm, Term: t}
}

func stringValues(values []string) []types.FieldValue {
	fv := make([]types.FieldValue, len(values))
	for i, v := range values {
		fv[i] = types.String(v)
	}
	return fv
}

func newTerms(field string, values []types.FieldValue, opts []TermsOption) *types.Query {
	t := &types.TermsQuery{Field: field, Values: append([]types.FieldValue(nil), values...)}
	for _, opt := range opts {
		opt(t)
	}
	return &types.Query{Kind: types.KindTerms, Terms: t}
}

func newWildcard(field, pattern string, opts []WildcardOption) *types.Query {
	w := &types.WildcardQuery{Field: field, Value: pattern}
	for _, opt := range opts {
		opt(w)
	}
	return &types.Query{Kind: types.KindWildcard, Wildcard: w}
}

func newSimpleQueryString(query string, fields []string, opts []SimpleQueryStringOption) *types.Query {
	s := &types.SimpleQueryStringQuery{Query: query, Fields: append([]string(nil), fields...)}
	for _, opt := range opts {
		opt(s)
	}
	return &types.Query{Kind: types.KindSimpleQueryString, SimpleQueryString: s}
}

func newMatchAll(opts []MatchAllOption) *types.Query {
	m := &types.MatchAllQuery{}
	for _, opt := range opts {
		opt(m)
	}
	return &types.Query{Kind: types.KindMatchAll, MatchAll: m}
}
