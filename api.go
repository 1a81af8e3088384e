// Package querydsl provides a fluent, type-safe builder for search engine
// query documents.
//
// The package assembles a query tree (match, term, terms, bool, nested,
// wildcard, simple_query_string, has_child, has_parent, match_all) from
// nested builder callbacks, validates it, and hands it to a Renderer that
// turns it into the query objects of a search client library.
//
// # Basic Usage
//
//	query, err := querydsl.Build(func(q *querydsl.QueryBuilder) {
//		q.Bool(func(b *querydsl.BoolQueryBuilder) {
//			b.Must(func(l *querydsl.QueryListBuilder) {
//				l.Match("title", "search engines")
//				l.Match("content", "query dsl")
//			})
//			b.Filter(func(l *querydsl.QueryListBuilder) {
//				l.Term("status", "published")
//			})
//		})
//	})
//
// # Scopes
//
// A QueryBuilder holds exactly one query. Calling a second query method on
// the same QueryBuilder is an error: combine conditions with a bool query,
// whose clauses receive a QueryListBuilder that accepts any number of
// queries in call order. Nested, has_child and has_parent scopes each wrap
// exactly one child query.
//
// Errors are recorded on the builder the first time they happen; later
// calls are ignored and Build returns the error.
//
// # Rendering
//
// The opensearch package renders queries into olivere/elastic query objects
// and typed go-elasticsearch search requests. The bleve package renders
// them into bleve queries for in-process search.
//
//	result, err := querydsl.Render(query, opensearch.New())
//	// result.JSON: {"bool":{"filter":{"term":{"status":"published"}},"must":[...]}}
//
// # Schema-Validated Usage
//
// For compile-time-like safety, create a Schema from a DBML project where
// tables are document types and columns are fields:
//
//	schema, err := querydsl.NewFromDBML(project)
//	title := schema.F("title") // panics if the field is unknown
//	query, err := schema.Build(func(q *querydsl.QueryBuilder) { q.Match(title, "go") })
package querydsl

import "github.com/guenzelsen/querydsl/internal/types"

// Query is a node of the query tree.
// This is re-exported from internal/types for use by consumers.
type Query = types.Query

// QueryResult contains a rendered query body.
type QueryResult = types.QueryResult

// Kind identifies the variant held by a Query.
type Kind = types.Kind

// Re-export kind constants for public API.
const (
	KindMatch             = types.KindMatch
	KindTerm              = types.KindTerm
	KindTerms             = types.KindTerms
	KindNested            = types.KindNested
	KindBool              = types.KindBool
	KindWildcard          = types.KindWildcard
	KindSimpleQueryString = types.KindSimpleQueryString
	KindHasChild          = types.KindHasChild
	KindHasParent         = types.KindHasParent
	KindMatchAll          = types.KindMatchAll
)

// Query variants.
type (
	MatchQuery             = types.MatchQuery
	TermQuery              = types.TermQuery
	TermsQuery             = types.TermsQuery
	NestedQuery            = types.NestedQuery
	BoolQuery              = types.BoolQuery
	WildcardQuery          = types.WildcardQuery
	SimpleQueryStringQuery = types.SimpleQueryStringQuery
	HasChildQuery          = types.HasChildQuery
	HasParentQuery         = types.HasParentQuery
	MatchAllQuery          = types.MatchAllQuery
)

// Common holds the boost and _name settings shared by every query variant.
type Common = types.Common

// FieldValue is a typed scalar used by match and term queries.
type FieldValue = types.FieldValue

// StringValue creates a string FieldValue.
func StringValue(s string) FieldValue { return types.String(s) }

// IntValue creates an integer FieldValue.
func IntValue(i int64) FieldValue { return types.Int(i) }

// BoolValue creates a boolean FieldValue.
func BoolValue(b bool) FieldValue { return types.Bool(b) }

// Operator represents how the terms of a full-text query are combined.
type Operator = types.Operator

// Re-export operator constants for public API.
const (
	AND = types.OperatorAnd
	OR  = types.OperatorOr
)

// ScoreMode controls how child scores affect nested and has_child queries.
type ScoreMode = types.ScoreMode

// Re-export score mode constants for public API.
const (
	ScoreAvg  = types.ScoreModeAvg
	ScoreMax  = types.ScoreModeMax
	ScoreMin  = types.ScoreModeMin
	ScoreNone = types.ScoreModeNone
	ScoreSum  = types.ScoreModeSum
)

// MaxDepth is the deepest tree Validate accepts.
const MaxDepth = types.MaxDepth

// Options customize a leaf query before it is added to its scope.
type (
	MatchOption             func(*MatchQuery)
	TermOption              func(*TermQuery)
	TermsOption             func(*TermsQuery)
	WildcardOption          func(*WildcardQuery)
	SimpleQueryStringOption func(*SimpleQueryStringQuery)
	MatchAllOption          func(*MatchAllQuery)
)

// Ptr returns a pointer to v, for optional settings such as Boost.
func Ptr[T any](v T) *T {
	return &v
}
