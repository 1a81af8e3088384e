// Package opensearch provides the OpenSearch/Elasticsearch renderer for querydsl.
//
// Query trees are converted into olivere/elastic query objects, which own
// the wire format. SearchRequest wraps a tree into a typed go-elasticsearch
// search request and Search runs it with an olivere client.
package opensearch

import (
	"encoding/json"
	"fmt"

	"github.com/guenzelsen/querydsl/internal/render"
	"github.com/guenzelsen/querydsl/internal/types"
	"github.com/olivere/elastic/v7"
)

// Dialect is the name reported in results and errors.
const Dialect = "opensearch"

// Renderer implements the OpenSearch query DSL renderer.
type Renderer struct{}

// New creates a new OpenSearch renderer.
func New() *Renderer {
	return &Renderer{}
}

// Capabilities returns the features this renderer supports.
func (*Renderer) Capabilities() render.Capabilities {
	return render.Full
}

// Render converts a query tree to a QueryResult holding the query JSON.
func (r *Renderer) Render(q *types.Query) (*types.QueryResult, error) {
	eq, err := r.Query(q)
	if err != nil {
		return nil, err
	}
	src, err := eq.Source()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize query: %w", err)
	}
	return newResult(src)
}

// Query converts a validated query tree to an olivere/elastic query.
func (r *Renderer) Query(q *types.Query) (elastic.Query, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	return r.convert(q)
}

func newResult(src interface{}) (*types.QueryResult, error) {
	body, err := json.Marshal(src)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode query: %w", err)
	}
	return &types.QueryResult{
		JSON:    string(body),
		Source:  decoded,
		Dialect: Dialect,
	}, nil
}

func (r *Renderer) convert(q *types.Query) (elastic.Query, error) {
	switch q.Kind {
	case types.KindMatch:
		return r.renderMatch(q.Match), nil
	case types.KindTerm:
		return r.renderTerm(q.Term), nil
	case types.KindTerms:
		return r.renderTerms(q.Terms), nil
	case types.KindWildcard:
		return r.renderWildcard(q.Wildcard), nil
	case types.KindSimpleQueryString:
		return r.renderSimpleQueryString(q.SimpleQueryString), nil
	case types.KindMatchAll:
		return r.renderMatchAll(q.MatchAll), nil
	case types.KindBool:
		return r.renderBool(q.Bool)
	case types.KindNested:
		return r.renderNested(q.Nested)
	case types.KindHasChild:
		return r.renderHasChild(q.HasChild)
	case types.KindHasParent:
		return r.renderHasParent(q.HasParent)
	default:
		return nil, fmt.Errorf("unsupported query kind: %q", q.Kind)
	}
}

func (r *Renderer) renderMatch(m *types.MatchQuery) elastic.Query {
	eq := elastic.NewMatchQuery(m.Field, m.Value.Interface())
	if m.Operator != types.OperatorDefault {
		eq = eq.Operator(string(m.Operator))
	}
	if m.Analyzer != "" {
		eq = eq.Analyzer(m.Analyzer)
	}
	if m.Fuzziness != "" {
		eq = eq.Fuzziness(m.Fuzziness)
	}
	if m.MinimumShouldMatch != "" {
		eq = eq.MinimumShouldMatch(m.MinimumShouldMatch)
	}
	if m.Lenient {
		eq = eq.Lenient(true)
	}
	if m.Boost != nil {
		eq = eq.Boost(*m.Boost)
	}
	if m.Name != "" {
		eq = eq.QueryName(m.Name)
	}
	return eq
}

func (r *Renderer) renderTerm(t *types.TermQuery) elastic.Query {
	eq := elastic.NewTermQuery(t.Field, t.Value.Interface())
	if t.Boost != nil {
		eq = eq.Boost(*t.Boost)
	}
	if t.Name != "" {
		eq = eq.QueryName(t.Name)
	}
	return eq
}

func (r *Renderer) renderTerms(t *types.TermsQuery) elastic.Query {
	values := make([]interface{}, len(t.Values))
	for i, v := range t.Values {
		values[i] = v.Interface()
	}
	eq := elastic.NewTermsQuery(t.Field, values...)
	if t.Boost != nil {
		eq = eq.Boost(*t.Boost)
	}
	if t.Name != "" {
		eq = eq.QueryName(t.Name)
	}
	return eq
}

func (r *Renderer) renderWildcard(w *types.WildcardQuery) elastic.Query {
	eq := elastic.NewWildcardQuery(w.Field, w.Value)
	if w.Rewrite != "" {
		eq = eq.Rewrite(w.Rewrite)
	}
	if w.Boost != nil {
		eq = eq.Boost(*w.Boost)
	}
	if w.Name != "" {
		eq = eq.QueryName(w.Name)
	}
	return eq
}

func (r *Renderer) renderSimpleQueryString(s *types.SimpleQueryStringQuery) elastic.Query {
	eq := elastic.NewSimpleQueryStringQuery(s.Query)
	for _, f := range s.Fields {
		eq = eq.Field(f)
	}
	if s.DefaultOperator != types.OperatorDefault {
		eq = eq.DefaultOperator(string(s.DefaultOperator))
	}
	if s.Analyzer != "" {
		eq = eq.Analyzer(s.Analyzer)
	}
	if s.Flags != "" {
		eq = eq.Flags(s.Flags)
	}
	if s.MinimumShouldMatch != "" {
		eq = eq.MinimumShouldMatch(s.MinimumShouldMatch)
	}
	if s.AnalyzeWildcard {
		eq = eq.AnalyzeWildcard(true)
	}
	if s.Lenient {
		eq = eq.Lenient(true)
	}
	if s.Boost != nil {
		eq = eq.Boost(*s.Boost)
	}
	if s.Name != "" {
		eq = eq.QueryName(s.Name)
	}
	return eq
}

func (r *Renderer) renderMatchAll(m *types.MatchAllQuery) elastic.Query {
	eq := elastic.NewMatchAllQuery()
	if m.Boost != nil {
		eq = eq.Boost(*m.Boost)
	}
	if m.Name != "" {
		eq = eq.QueryName(m.Name)
	}
	return eq
}

// renderClause converts the queries of one bool clause in order.
func (r *Renderer) renderClause(queries []*types.Query) ([]elastic.Query, error) {
	out := make([]elastic.Query, 0, len(queries))
	for _, q := range queries {
		eq, err := r.convert(q)
		if err != nil {
			return nil, err
		}
		out = append(out, eq)
	}
	return out, nil
}

func (r *Renderer) renderBool(b *types.BoolQuery) (elastic.Query, error) {
	eq := elastic.NewBoolQuery()

	must, err := r.renderClause(b.Must)
	if err != nil {
		return nil, err
	}
	should, err := r.renderClause(b.Should)
	if err != nil {
		return nil, err
	}
	mustNot, err := r.renderClause(b.MustNot)
	if err != nil {
		return nil, err
	}
	filter, err := r.renderClause(b.Filter)
	if err != nil {
		return nil, err
	}

	eq = eq.Must(must...).Should(should...).MustNot(mustNot...).Filter(filter...)
	if b.MinimumShouldMatch != "" {
		eq = eq.MinimumShouldMatch(b.MinimumShouldMatch)
	}
	if b.Boost != nil {
		eq = eq.Boost(*b.Boost)
	}
	if b.Name != "" {
		eq = eq.QueryName(b.Name)
	}
	return eq, nil
}

func (r *Renderer) renderNested(n *types.NestedQuery) (elastic.Query, error) {
	inner, err := r.convert(n.Query)
	if err != nil {
		return nil, err
	}
	eq := elastic.NewNestedQuery(n.Path, inner)
	if n.ScoreMode != types.ScoreModeDefault {
		eq = eq.ScoreMode(string(n.ScoreMode))
	}
	if n.IgnoreUnmapped {
		eq = eq.IgnoreUnmapped(true)
	}
	if n.Boost != nil {
		eq = eq.Boost(*n.Boost)
	}
	if n.Name != "" {
		eq = eq.QueryName(n.Name)
	}
	return eq, nil
}

func (r *Renderer) renderHasChild(h *types.HasChildQuery) (elastic.Query, error) {
	inner, err := r.convert(h.Query)
	if err != nil {
		return nil, err
	}
	eq := elastic.NewHasChildQuery(h.Type, inner)
	if h.ScoreMode != types.ScoreModeDefault {
		eq = eq.ScoreMode(string(h.ScoreMode))
	}
	if h.MinChildren != nil {
		eq = eq.MinChildren(*h.MinChildren)
	}
	if h.MaxChildren != nil {
		eq = eq.MaxChildren(*h.MaxChildren)
	}
	if h.Boost != nil {
		eq = eq.Boost(*h.Boost)
	}
	if h.Name != "" {
		eq = eq.QueryName(h.Name)
	}
	return eq, nil
}

func (r *Renderer) renderHasParent(h *types.HasParentQuery) (elastic.Query, error) {
	inner, err := r.convert(h.Query)
	if err != nil {
		return nil, err
	}
	eq := elastic.NewHasParentQuery(h.ParentType, inner)
	if h.Score {
		eq = eq.Score(true)
	}
	if h.IgnoreUnmapped {
		eq = eq.IgnoreUnmapped(true)
	}
	if h.Boost != nil {
		eq = eq.Boost(*h.Boost)
	}
	if h.Name != "" {
		eq = eq.QueryName(h.Name)
	}
	return eq, nil
}
