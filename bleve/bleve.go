// Package bleve provides the bleve renderer for querydsl.
//
// Query trees are converted into bleve query objects so they can run
// in-process against a bleve index. Bleve has no nested documents and no
// parent/child joins; those queries fail with an UnsupportedFeatureError.
package bleve

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	blevesearch "github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/guenzelsen/querydsl/internal/render"
	"github.com/guenzelsen/querydsl/internal/types"
)

// Dialect is the name reported in results and errors.
const Dialect = "bleve"

// maxFuzziness is the largest edit distance bleve accepts.
const maxFuzziness = 2

// Renderer implements the bleve query renderer.
type Renderer struct{}

// New creates a new bleve renderer.
func New() *Renderer {
	return &Renderer{}
}

// Capabilities returns the features this renderer supports.
func (*Renderer) Capabilities() render.Capabilities {
	return render.Capabilities{
		Nested:            false,
		Joins:             false,
		SimpleQueryString: true,
		Wildcard:          true,
	}
}

// Render converts a query tree to a QueryResult holding the bleve query JSON.
func (r *Renderer) Render(q *types.Query) (*types.QueryResult, error) {
	bq, err := r.Query(q)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(bq)
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

// Query converts a validated query tree to a bleve query.
func (r *Renderer) Query(q *types.Query) (query.Query, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	if err := render.Check(Dialect, r.Capabilities(), q); err != nil {
		return nil, err
	}
	return r.convert(q)
}

// Search runs q against index and returns at most size hits.
func Search(ctx context.Context, index blevesearch.Index, q *types.Query, size int) (*blevesearch.SearchResult, error) {
	if index == nil {
		return nil, fmt.Errorf("index cannot be nil")
	}
	if size < 0 {
		return nil, fmt.Errorf("size cannot be negative: %d", size)
	}
	bq, err := New().Query(q)
	if err != nil {
		return nil, err
	}
	req := blevesearch.NewSearchRequestOptions(bq, size, 0, false)
	res, err := index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return res, nil
}

func (r *Renderer) convert(q *types.Query) (query.Query, error) {
	switch q.Kind {
	case types.KindMatch:
		return r.renderMatch(q.Match)
	case types.KindTerm:
		return r.renderTerm(q.Term), nil
	case types.KindTerms:
		return r.renderTerms(q.Terms), nil
	case types.KindWildcard:
		return r.renderWildcard(q.Wildcard)
	case types.KindSimpleQueryString:
		return r.renderSimpleQueryString(q.SimpleQueryString)
	case types.KindMatchAll:
		return r.renderMatchAll(q.MatchAll), nil
	case types.KindBool:
		return r.renderBool(q.Bool)
	default:
		// Nested and join kinds never get here: Check rejects them.
		return nil, render.NewUnsupportedFeatureError(Dialect, string(q.Kind)+" query")
	}
}

// boostable is implemented by every bleve query that accepts a boost.
type boostable interface {
	query.Query
	SetBoost(b float64)
}

func withBoost[Q boostable](bq Q, c types.Common) Q {
	if c.Boost != nil {
		bq.SetBoost(*c.Boost)
	}
	return bq
}

// valueQuery matches a single typed value exactly: terms for strings, an
// inclusive numeric range for integers and a bool field query for booleans.
func valueQuery(field string, v types.FieldValue) boostable {
	switch v.Type() {
	case types.ValueInt:
		n, _ := v.IntValue()
		f := float64(n)
		inclusive := true
		nq := blevesearch.NewNumericRangeInclusiveQuery(&f, &f, &inclusive, &inclusive)
		nq.SetField(field)
		return nq
	case types.ValueBool:
		b, _ := v.BoolValue()
		bq := blevesearch.NewBoolFieldQuery(b)
		bq.SetField(field)
		return bq
	default:
		s, _ := v.StringValue()
		tq := blevesearch.NewTermQuery(s)
		tq.SetField(field)
		return tq
	}
}

// unsupportedSetting fails on the first setting that is set, since bleve
// has no equivalent for any of them.
func unsupportedSetting(kind string, settings ...setting) error {
	for _, st := range settings {
		if st.set {
			return render.NewUnsupportedFeatureError(Dialect, kind+" "+st.name)
		}
	}
	return nil
}

type setting struct {
	name string
	set  bool
}

func (r *Renderer) renderMatch(m *types.MatchQuery) (query.Query, error) {
	if err := unsupportedSetting("match",
		setting{"minimum_should_match", m.MinimumShouldMatch != ""},
		setting{"lenient", m.Lenient},
	); err != nil {
		return nil, err
	}
	if m.Value.Type() != types.ValueString {
		return withBoost(valueQuery(m.Field, m.Value), m.Common), nil
	}

	text, _ := m.Value.StringValue()
	mq := blevesearch.NewMatchQuery(text)
	mq.SetField(m.Field)
	mq.Analyzer = m.Analyzer
	if m.Operator == types.OperatorAnd {
		mq.SetOperator(query.MatchQueryOperatorAnd)
	}
	if m.Fuzziness != "" {
		fuzziness, err := parseFuzziness(m.Fuzziness)
		if err != nil {
			return nil, err
		}
		mq.SetFuzziness(fuzziness)
	}
	return withBoost(mq, m.Common), nil
}

// parseFuzziness maps an edit distance or AUTO onto bleve's fuzziness.
func parseFuzziness(s string) (int, error) {
	if strings.HasPrefix(strings.ToUpper(s), "AUTO") {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > maxFuzziness {
		return 0, render.NewUnsupportedFeatureError(Dialect, fmt.Sprintf("fuzziness %q", s), "use AUTO, 0, 1 or 2")
	}
	return n, nil
}

func (r *Renderer) renderTerm(t *types.TermQuery) query.Query {
	return withBoost(valueQuery(t.Field, t.Value), t.Common)
}

func (r *Renderer) renderTerms(t *types.TermsQuery) query.Query {
	disjuncts := make([]query.Query, len(t.Values))
	for i, v := range t.Values {
		disjuncts[i] = valueQuery(t.Field, v)
	}
	return withBoost(blevesearch.NewDisjunctionQuery(disjuncts...), t.Common)
}

func (r *Renderer) renderWildcard(w *types.WildcardQuery) (query.Query, error) {
	if err := unsupportedSetting("wildcard", setting{"rewrite", w.Rewrite != ""}); err != nil {
		return nil, err
	}
	wq := blevesearch.NewWildcardQuery(w.Value)
	wq.SetField(w.Field)
	return withBoost(wq, w.Common), nil
}

// renderSimpleQueryString uses bleve's query string syntax when no fields
// are given, and a disjunction of per-field match queries otherwise.
// Without fields, default_operator and analyzer have no place in a bleve
// query string query either.
func (r *Renderer) renderSimpleQueryString(s *types.SimpleQueryStringQuery) (query.Query, error) {
	const kind = "simple_query_string"
	if err := unsupportedSetting(kind,
		setting{"flags", s.Flags != ""},
		setting{"minimum_should_match", s.MinimumShouldMatch != ""},
		setting{"analyze_wildcard", s.AnalyzeWildcard},
		setting{"lenient", s.Lenient},
	); err != nil {
		return nil, err
	}

	if len(s.Fields) == 0 {
		if err := unsupportedSetting(kind+" without fields",
			setting{"default_operator", s.DefaultOperator != types.OperatorDefault},
			setting{"analyzer", s.Analyzer != ""},
		); err != nil {
			return nil, err
		}
		return withBoost(blevesearch.NewQueryStringQuery(s.Query), s.Common), nil
	}

	disjuncts := make([]query.Query, 0, len(s.Fields))
	for _, f := range s.Fields {
		field, boost := splitFieldBoost(f)
		mq := blevesearch.NewMatchQuery(s.Query)
		mq.SetField(field)
		mq.Analyzer = s.Analyzer
		if s.DefaultOperator == types.OperatorAnd {
			mq.SetOperator(query.MatchQueryOperatorAnd)
		}
		if boost != nil {
			mq.SetBoost(*boost)
		}
		disjuncts = append(disjuncts, mq)
	}
	return withBoost(blevesearch.NewDisjunctionQuery(disjuncts...), s.Common), nil
}

// splitFieldBoost splits "title^2" into its field and boost.
func splitFieldBoost(f string) (string, *float64) {
	caret := strings.IndexByte(f, '^')
	if caret == -1 {
		return f, nil
	}
	boost, err := strconv.ParseFloat(f[caret+1:], 64)
	if err != nil {
		return f[:caret], nil
	}
	return f[:caret], &boost
}

func (r *Renderer) renderMatchAll(m *types.MatchAllQuery) query.Query {
	return withBoost(blevesearch.NewMatchAllQuery(), m.Common)
}

func (r *Renderer) renderClause(queries []*types.Query) ([]query.Query, error) {
	out := make([]query.Query, 0, len(queries))
	for _, q := range queries {
		bq, err := r.convert(q)
		if err != nil {
			return nil, err
		}
		out = append(out, bq)
	}
	return out, nil
}

// renderBool maps filter clauses onto must, since bleve has no
// non-scoring context. An empty bool matches every document.
func (r *Renderer) renderBool(b *types.BoolQuery) (query.Query, error) {
	if b.IsEmpty() {
		return withBoost(blevesearch.NewMatchAllQuery(), b.Common), nil
	}

	must, err := r.renderClause(b.Must)
	if err != nil {
		return nil, err
	}
	filter, err := r.renderClause(b.Filter)
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

	bq := blevesearch.NewBooleanQuery()
	if len(must)+len(filter) > 0 {
		bq.AddMust(append(must, filter...)...)
	}
	if len(should) > 0 {
		bq.AddShould(should...)
	}
	if len(mustNot) > 0 {
		bq.AddMustNot(mustNot...)
	}
	if b.MinimumShouldMatch != "" && len(should) > 0 {
		n, err := strconv.Atoi(b.MinimumShouldMatch)
		if err != nil || n < 0 {
			return nil, render.NewUnsupportedFeatureError(Dialect,
				fmt.Sprintf("minimum_should_match %q", b.MinimumShouldMatch),
				"only non-negative integer counts are supported")
		}
		bq.SetMinShould(float64(n))
	}
	return withBoost(bq, b.Common), nil
}
