package types

import "fmt"

// Kind identifies the variant held by a Query.
type Kind string

const (
	KindMatch             Kind = "match"
	KindTerm              Kind = "term"
	KindTerms             Kind = "terms"
	KindNested            Kind = "nested"
	KindBool              Kind = "bool"
	KindWildcard          Kind = "wildcard"
	KindSimpleQueryString Kind = "simple_query_string"
	KindHasChild          Kind = "has_child"
	KindHasParent         Kind = "has_parent"
	KindMatchAll          Kind = "match_all"
)

// Constants for tree handling.
const (
	MaxDepth = 32 // Prevent runaway recursion in renderers
)

// Query is a node of the query tree. Exactly one variant is set and it
// matches Kind.
// This is exported from the internal package so providers can use it,
// but external users cannot import this package.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type Query struct {
	Kind              Kind
	Match             *MatchQuery
	Term              *TermQuery
	Terms             *TermsQuery
	Nested            *NestedQuery
	Bool              *BoolQuery
	Wildcard          *WildcardQuery
	SimpleQueryString *SimpleQueryStringQuery
	HasChild          *HasChildQuery
	HasParent         *HasParentQuery
	MatchAll          *MatchAllQuery
}

// Common holds the settings every query variant accepts.
type Common struct {
	Boost *float64 // Relevance multiplier
	Name  string   // Rendered as _name
}

// MatchQuery is a full-text match on a single field.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type MatchQuery struct {
	Common
	Field              string
	Value              FieldValue
	Operator           Operator
	Analyzer           string
	Fuzziness          string
	MinimumShouldMatch string
	Lenient            bool
}

// TermQuery is an exact match on a single field.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type TermQuery struct {
	Common
	Field string
	Value FieldValue
}

// TermsQuery matches documents containing any of Values in Field.
type TermsQuery struct {
	Common
	Field  string
	Values []FieldValue
}

// NestedQuery runs Query against the nested objects under Path.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type NestedQuery struct {
	Common
	Path           string
	Query          *Query
	ScoreMode      ScoreMode
	IgnoreUnmapped bool
}

// BoolQuery combines child queries with boolean clauses.
// Clause order is call order.
type BoolQuery struct {
	Common
	Must               []*Query
	Should             []*Query
	MustNot            []*Query
	Filter             []*Query
	MinimumShouldMatch string
}

// IsEmpty reports whether the bool query has no clauses at all.
func (b *BoolQuery) IsEmpty() bool {
	return len(b.Must) == 0 && len(b.Should) == 0 && len(b.MustNot) == 0 && len(b.Filter) == 0
}

// WildcardQuery matches Field against a pattern using * and ?.
type WildcardQuery struct {
	Common
	Field   string
	Value   string
	Rewrite string
}

// SimpleQueryStringQuery parses Query with the simple query string syntax.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type SimpleQueryStringQuery struct {
	Common
	Query              string
	Fields             []string
	DefaultOperator    Operator
	Analyzer           string
	Flags              string
	MinimumShouldMatch string
	AnalyzeWildcard    bool
	Lenient            bool
}

// HasChildQuery matches parents whose children of Type match Query.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type HasChildQuery struct {
	Common
	Type        string
	Query       *Query
	ScoreMode   ScoreMode
	MinChildren *int
	MaxChildren *int
}

// HasParentQuery matches children whose parent of ParentType matches Query.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type HasParentQuery struct {
	Common
	ParentType     string
	Query          *Query
	Score          bool
	IgnoreUnmapped bool
}

// MatchAllQuery matches every document.
type MatchAllQuery struct {
	Common
}

// Validate performs structural validation on the whole tree.
func (q *Query) Validate() error {
	return q.validate(0)
}

func (q *Query) validate(depth int) error {
	if q == nil {
		return fmt.Errorf("query is nil")
	}
	if depth >= MaxDepth {
		return fmt.Errorf("maximum query depth (%d) exceeded", MaxDepth)
	}

	switch q.Kind {
	case KindMatch:
		if q.Match == nil {
			return variantMissing(q.Kind)
		}
		if q.Match.Field == "" {
			return fmt.Errorf("match query requires a field")
		}
		if err := q.Match.Operator.Validate(); err != nil {
			return fmt.Errorf("match query on '%s': %w", q.Match.Field, err)
		}
	case KindTerm:
		if q.Term == nil {
			return variantMissing(q.Kind)
		}
		if q.Term.Field == "" {
			return fmt.Errorf("term query requires a field")
		}
	case KindTerms:
		if q.Terms == nil {
			return variantMissing(q.Kind)
		}
		if q.Terms.Field == "" {
			return fmt.Errorf("terms query requires a field")
		}
	case KindWildcard:
		if q.Wildcard == nil {
			return variantMissing(q.Kind)
		}
		if q.Wildcard.Field == "" {
			return fmt.Errorf("wildcard query requires a field")
		}
	case KindSimpleQueryString:
		if q.SimpleQueryString == nil {
			return variantMissing(q.Kind)
		}
		for _, f := range q.SimpleQueryString.Fields {
			if f == "" {
				return fmt.Errorf("simple_query_string fields cannot contain an empty name")
			}
		}
		if err := q.SimpleQueryString.DefaultOperator.Validate(); err != nil {
			return fmt.Errorf("simple_query_string: %w", err)
		}
	case KindMatchAll:
		if q.MatchAll == nil {
			return variantMissing(q.Kind)
		}
	case KindNested:
		if q.Nested == nil {
			return variantMissing(q.Kind)
		}
		if q.Nested.Path == "" {
			return fmt.Errorf("nested query requires a path")
		}
		if err := q.Nested.ScoreMode.Validate(); err != nil {
			return fmt.Errorf("nested query on '%s': %w", q.Nested.Path, err)
		}
		if err := child(q.Nested.Query, "nested", depth); err != nil {
			return err
		}
	case KindHasChild:
		if q.HasChild == nil {
			return variantMissing(q.Kind)
		}
		if q.HasChild.Type == "" {
			return fmt.Errorf("has_child query requires a type")
		}
		if err := q.HasChild.ScoreMode.Validate(); err != nil {
			return fmt.Errorf("has_child query on '%s': %w", q.HasChild.Type, err)
		}
		hc := q.HasChild
		if hc.MinChildren != nil && *hc.MinChildren < 0 {
			return fmt.Errorf("has_child query on '%s': min_children cannot be negative: %d", hc.Type, *hc.MinChildren)
		}
		if hc.MaxChildren != nil && *hc.MaxChildren < 0 {
			return fmt.Errorf("has_child query on '%s': max_children cannot be negative: %d", hc.Type, *hc.MaxChildren)
		}
		if hc.MinChildren != nil && hc.MaxChildren != nil && *hc.MinChildren > *hc.MaxChildren {
			return fmt.Errorf("has_child query on '%s': min_children %d exceeds max_children %d", hc.Type, *hc.MinChildren, *hc.MaxChildren)
		}
		if err := child(q.HasChild.Query, "has_child", depth); err != nil {
			return err
		}
	case KindHasParent:
		if q.HasParent == nil {
			return variantMissing(q.Kind)
		}
		if q.HasParent.ParentType == "" {
			return fmt.Errorf("has_parent query requires a parent type")
		}
		if err := child(q.HasParent.Query, "has_parent", depth); err != nil {
			return err
		}
	case KindBool:
		if q.Bool == nil {
			return variantMissing(q.Kind)
		}
		for _, clause := range q.Bool.clauses() {
			for i, c := range clause.queries {
				if c == nil {
					return fmt.Errorf("bool %s clause %d is nil", clause.name, i)
				}
				if err := c.validate(depth + 1); err != nil {
					return err
				}
			}
		}
	default:
		return fmt.Errorf("unsupported query kind: %q", q.Kind)
	}

	if q.variantCount() != 1 {
		return fmt.Errorf("%s query must hold exactly one variant, found %d", q.Kind, q.variantCount())
	}

	return nil
}

func child(q *Query, scope string, depth int) error {
	if q == nil {
		return fmt.Errorf("a query must be specified for %s", scope)
	}
	return q.validate(depth + 1)
}

func variantMissing(k Kind) error {
	return fmt.Errorf("%s query has no %s body", k, k)
}

func (q *Query) variantCount() int {
	n := 0
	for _, set := range []bool{
		q.Match != nil, q.Term != nil, q.Terms != nil, q.Nested != nil, q.Bool != nil,
		q.Wildcard != nil, q.SimpleQueryString != nil, q.HasChild != nil,
		q.HasParent != nil, q.MatchAll != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

type namedClause struct {
	name    string
	queries []*Query
}

// clauses returns the bool clauses in rendering order.
func (b *BoolQuery) clauses() []namedClause {
	return []namedClause{
		{"must", b.Must},
		{"should", b.Should},
		{"must_not", b.MustNot},
		{"filter", b.Filter},
	}
}
