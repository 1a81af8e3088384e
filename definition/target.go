package definition

import "github.com/guenzelsen/querydsl"

// target is the scope a parsed query is added to: the single-query
// QueryBuilder or the many-query QueryListBuilder of a bool clause.
type target interface {
	match(field string, value querydsl.FieldValue, opt querydsl.MatchOption)
	term(field string, value querydsl.FieldValue, opt querydsl.TermOption)
	terms(field string, values []querydsl.FieldValue, opt querydsl.TermsOption)
	wildcard(field, pattern string, opt querydsl.WildcardOption)
	simpleQueryString(query string, fields []string, opt querydsl.SimpleQueryStringOption)
	matchAll(opt querydsl.MatchAllOption)
	nested(path string, block func(*querydsl.NestedQueryBuilder))
	boolQuery(block func(*querydsl.BoolQueryBuilder))
	hasChild(childType string, block func(*querydsl.HasChildQueryBuilder))
	hasParent(parentType string, block func(*querydsl.HasParentQueryBuilder))
	fail(err error)
}

type rootTarget struct{ b *querydsl.QueryBuilder }

func (t rootTarget) match(field string, value querydsl.FieldValue, opt querydsl.MatchOption) {
	t.b.MatchValue(field, value, opt)
}

func (t rootTarget) term(field string, value querydsl.FieldValue, opt querydsl.TermOption) {
	t.b.TermValue(field, value, opt)
}

func (t rootTarget) terms(field string, values []querydsl.FieldValue, opt querydsl.TermsOption) {
	t.b.TermsValues(field, values, opt)
}

func (t rootTarget) wildcard(field, pattern string, opt querydsl.WildcardOption) {
	t.b.Wildcard(field, pattern, opt)
}

func (t rootTarget) simpleQueryString(query string, fields []string, opt querydsl.SimpleQueryStringOption) {
	t.b.SimpleQueryString(query, fields, opt)
}

func (t rootTarget) matchAll(opt querydsl.MatchAllOption) {
	t.b.MatchAll(opt)
}

func (t rootTarget) nested(path string, block func(*querydsl.NestedQueryBuilder)) {
	t.b.Nested(path, block)
}

func (t rootTarget) boolQuery(block func(*querydsl.BoolQueryBuilder)) {
	t.b.Bool(block)
}

func (t rootTarget) hasChild(childType string, block func(*querydsl.HasChildQueryBuilder)) {
	t.b.HasChild(childType, block)
}

func (t rootTarget) hasParent(parentType string, block func(*querydsl.HasParentQueryBuilder)) {
	t.b.HasParent(parentType, block)
}

func (t rootTarget) fail(err error) {
	t.b.SetError(err)
}

type listTarget struct{ l *querydsl.QueryListBuilder }

func (t listTarget) match(field string, value querydsl.FieldValue, opt querydsl.MatchOption) {
	t.l.MatchValue(field, value, opt)
}

func (t listTarget) term(field string, value querydsl.FieldValue, opt querydsl.TermOption) {
	t.l.TermValue(field, value, opt)
}

func (t listTarget) terms(field string, values []querydsl.FieldValue, opt querydsl.TermsOption) {
	t.l.TermsValues(field, values, opt)
}

func (t listTarget) wildcard(field, pattern string, opt querydsl.WildcardOption) {
	t.l.Wildcard(field, pattern, opt)
}

func (t listTarget) simpleQueryString(query string, fields []string, opt querydsl.SimpleQueryStringOption) {
	t.l.SimpleQueryString(query, fields, opt)
}

func (t listTarget) matchAll(opt querydsl.MatchAllOption) {
	t.l.MatchAll(opt)
}

func (t listTarget) nested(path string, block func(*querydsl.NestedQueryBuilder)) {
	t.l.Nested(path, block)
}

func (t listTarget) boolQuery(block func(*querydsl.BoolQueryBuilder)) {
	t.l.Bool(block)
}

func (t listTarget) hasChild(childType string, block func(*querydsl.HasChildQueryBuilder)) {
	t.l.HasChild(childType, block)
}

func (t listTarget) hasParent(parentType string, block func(*querydsl.HasParentQueryBuilder)) {
	t.l.HasParent(parentType, block)
}

func (t listTarget) fail(err error) {
	t.l.SetError(err)
}
