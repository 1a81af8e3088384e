package bleve

import (
	"context"
	"errors"
	"sort"
	"testing"

	blevesearch "github.com/blevesearch/bleve/v2"
	"github.com/guenzelsen/querydsl"
	"github.com/guenzelsen/querydsl/internal/render"
	"github.com/guenzelsen/querydsl/internal/types"
)

// newIndex creates an in-memory index holding a few blog posts.
func newIndex(t *testing.T) blevesearch.Index {
	t.Helper()
	index, err := blevesearch.NewMemOnly(blevesearch.NewIndexMapping())
	if err != nil {
		t.Fatalf("NewMemOnly() error = %v", err)
	}
	t.Cleanup(func() { _ = index.Close() })

	docs := map[string]map[string]any{
		"1": {"title": "kotlin dsl guide", "content": "building queries with a dsl", "status": "published", "views": 120, "draft": false},
		"2": {"title": "go concurrency", "content": "channels and goroutines", "status": "published", "views": 80, "draft": false},
		"3": {"title": "kotlin coroutines", "content": "structured concurrency", "status": "draft", "views": 5, "draft": true},
	}
	for id, doc := range docs {
		if err := index.Index(id, doc); err != nil {
			t.Fatalf("Index(%s) error = %v", id, err)
		}
	}
	return index
}

func search(t *testing.T, index blevesearch.Index, block func(*querydsl.QueryBuilder)) []string {
	t.Helper()
	q, err := querydsl.Build(block)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	res, err := Search(context.Background(), index, q, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ids = append(ids, hit.ID)
	}
	sort.Strings(ids)
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNew(t *testing.T) {
	r := New()
	if r == nil {
		t.Fatal("New() returned nil")
	}
	caps := r.Capabilities()
	if caps.Nested || caps.Joins {
		t.Errorf("Capabilities() = %+v, want no nested or join support", caps)
	}
}

func TestSearch(t *testing.T) {
	index := newIndex(t)

	tests := []struct {
		name  string
		block func(*querydsl.QueryBuilder)
		want  []string
	}{
		{
			name:  "match",
			block: func(q *querydsl.QueryBuilder) { q.Match("title", "kotlin") },
			want:  []string{"1", "3"},
		},
		{
			name: "match and operator",
			block: func(q *querydsl.QueryBuilder) {
				q.Match("title", "kotlin guide", func(m *querydsl.MatchQuery) { m.Operator = querydsl.AND })
			},
			want: []string{"1"},
		},
		{
			name: "match fuzziness",
			block: func(q *querydsl.QueryBuilder) {
				q.Match("title", "kotlim", func(m *querydsl.MatchQuery) { m.Fuzziness = "1" })
			},
			want: []string{"1", "3"},
		},
		{
			name:  "term",
			block: func(q *querydsl.QueryBuilder) { q.Term("status", "published") },
			want:  []string{"1", "2"},
		},
		{
			name:  "term int",
			block: func(q *querydsl.QueryBuilder) { q.TermInt("views", 80) },
			want:  []string{"2"},
		},
		{
			name:  "term bool",
			block: func(q *querydsl.QueryBuilder) { q.TermBool("draft", true) },
			want:  []string{"3"},
		},
		{
			name:  "terms",
			block: func(q *querydsl.QueryBuilder) { q.Terms("title", []string{"go", "coroutines"}) },
			want:  []string{"2", "3"},
		},
		{
			name:  "wildcard",
			block: func(q *querydsl.QueryBuilder) { q.Wildcard("title", "kot*") },
			want:  []string{"1", "3"},
		},
		{
			name:  "simple_query_string with fields",
			block: func(q *querydsl.QueryBuilder) { q.SimpleQueryString("concurrency", []string{"title", "content"}) },
			want:  []string{"2", "3"},
		},
		{
			name:  "simple_query_string without fields",
			block: func(q *querydsl.QueryBuilder) { q.SimpleQueryString("+title:kotlin -status:draft", nil) },
			want:  []string{"1"},
		},
		{
			name:  "match_all",
			block: func(q *querydsl.QueryBuilder) { q.MatchAll() },
			want:  []string{"1", "2", "3"},
		},
		{
			name:  "empty bool",
			block: func(q *querydsl.QueryBuilder) { q.Bool(func(*querydsl.BoolQueryBuilder) {}) },
			want:  []string{"1", "2", "3"},
		},
		{
			name: "bool must and filter",
			block: func(q *querydsl.QueryBuilder) {
				q.Bool(func(b *querydsl.BoolQueryBuilder) {
					b.Must(func(l *querydsl.QueryListBuilder) { l.Match("title", "kotlin") })
					b.Filter(func(l *querydsl.QueryListBuilder) { l.Term("status", "published") })
				})
			},
			want: []string{"1"},
		},
		{
			name: "bool must_not only",
			block: func(q *querydsl.QueryBuilder) {
				q.Bool(func(b *querydsl.BoolQueryBuilder) {
					b.MustNot(func(l *querydsl.QueryListBuilder) { l.TermBool("draft", true) })
				})
			},
			want: []string{"1", "2"},
		},
		{
			name: "bool should",
			block: func(q *querydsl.QueryBuilder) {
				q.Bool(func(b *querydsl.BoolQueryBuilder) {
					b.Should(func(l *querydsl.QueryListBuilder) {
						l.Match("title", "go")
						l.Match("title", "coroutines")
					})
					b.MinimumShouldMatch("1")
				})
			},
			want: []string{"2", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := search(t, index, tt.block)
			if !equalIDs(got, tt.want) {
				t.Errorf("hits = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearch_Errors(t *testing.T) {
	q := querydsl.MustBuild(func(q *querydsl.QueryBuilder) { q.MatchAll() })

	if _, err := Search(context.Background(), nil, q, 10); err == nil {
		t.Error("expected error for nil index")
	}
	if _, err := Search(context.Background(), newIndex(t), q, -1); err == nil {
		t.Error("expected error for negative size")
	}
}

func TestRender_Unsupported(t *testing.T) {
	tests := []struct {
		name    string
		block   func(*querydsl.QueryBuilder)
		feature string
	}{
		{
			name: "nested",
			block: func(q *querydsl.QueryBuilder) {
				q.Nested("comments", func(n *querydsl.NestedQueryBuilder) {
					n.Query(func(q *querydsl.QueryBuilder) { q.Match("comments.text", "great") })
				})
			},
			feature: "nested query",
		},
		{
			name: "has_child inside bool",
			block: func(q *querydsl.QueryBuilder) {
				q.Bool(func(b *querydsl.BoolQueryBuilder) {
					b.Should(func(l *querydsl.QueryListBuilder) {
						l.HasChild("comment", func(h *querydsl.HasChildQueryBuilder) {
							h.Query(func(q *querydsl.QueryBuilder) { q.Term("author", "alice") })
						})
					})
				})
			},
			feature: "has_child query",
		},
		{
			name: "has_parent",
			block: func(q *querydsl.QueryBuilder) {
				q.HasParent("blog", func(h *querydsl.HasParentQueryBuilder) {
					h.Query(func(q *querydsl.QueryBuilder) { q.MatchAll() })
				})
			},
			feature: "has_parent query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := querydsl.MustBuild(tt.block)
			_, err := New().Render(q)
			var ufe render.UnsupportedFeatureError
			if !errors.As(err, &ufe) {
				t.Fatalf("Render() error = %v, want UnsupportedFeatureError", err)
			}
			if ufe.Feature != tt.feature {
				t.Errorf("Feature = %q, want %q", ufe.Feature, tt.feature)
			}
			if ufe.Dialect != Dialect {
				t.Errorf("Dialect = %q, want %q", ufe.Dialect, Dialect)
			}
		})
	}
}

func TestRender_BadSettings(t *testing.T) {
	match := func(opt querydsl.MatchOption) func(*querydsl.QueryBuilder) {
		return func(q *querydsl.QueryBuilder) { q.Match("title", "kotlin guide", opt) }
	}
	sqs := func(fields []string, opt querydsl.SimpleQueryStringOption) func(*querydsl.QueryBuilder) {
		return func(q *querydsl.QueryBuilder) { q.SimpleQueryString("kotlin guide", fields, opt) }
	}

	tests := []struct {
		name    string
		block   func(*querydsl.QueryBuilder)
		feature string
	}{
		{
			name:    "match minimum_should_match",
			block:   match(func(m *querydsl.MatchQuery) { m.MinimumShouldMatch = "3" }),
			feature: "match minimum_should_match",
		},
		{
			name:    "match lenient",
			block:   match(func(m *querydsl.MatchQuery) { m.Lenient = true }),
			feature: "match lenient",
		},
		{
			name: "wildcard rewrite",
			block: func(q *querydsl.QueryBuilder) {
				q.Wildcard("title", "kot*", func(w *querydsl.WildcardQuery) { w.Rewrite = "constant_score" })
			},
			feature: "wildcard rewrite",
		},
		{
			name:    "simple_query_string flags",
			block:   sqs([]string{"title"}, func(s *querydsl.SimpleQueryStringQuery) { s.Flags = "NONE" }),
			feature: "simple_query_string flags",
		},
		{
			name:    "simple_query_string minimum_should_match",
			block:   sqs(nil, func(s *querydsl.SimpleQueryStringQuery) { s.MinimumShouldMatch = "2" }),
			feature: "simple_query_string minimum_should_match",
		},
		{
			name:    "simple_query_string analyze_wildcard",
			block:   sqs(nil, func(s *querydsl.SimpleQueryStringQuery) { s.AnalyzeWildcard = true }),
			feature: "simple_query_string analyze_wildcard",
		},
		{
			name:    "simple_query_string lenient",
			block:   sqs([]string{"title"}, func(s *querydsl.SimpleQueryStringQuery) { s.Lenient = true }),
			feature: "simple_query_string lenient",
		},
		{
			name:    "simple_query_string default_operator without fields",
			block:   sqs(nil, func(s *querydsl.SimpleQueryStringQuery) { s.DefaultOperator = querydsl.AND }),
			feature: "simple_query_string without fields default_operator",
		},
		{
			name:    "simple_query_string analyzer without fields",
			block:   sqs(nil, func(s *querydsl.SimpleQueryStringQuery) { s.Analyzer = "english" }),
			feature: "simple_query_string without fields analyzer",
		},
		{
			name: "fuzziness out of range",
			block: func(q *querydsl.QueryBuilder) {
				q.Match("title", "kotlin", func(m *querydsl.MatchQuery) { m.Fuzziness = "5" })
			},
		},
		{
			name: "percentage minimum_should_match",
			block: func(q *querydsl.QueryBuilder) {
				q.Bool(func(b *querydsl.BoolQueryBuilder) {
					b.Should(func(l *querydsl.QueryListBuilder) { l.Match("title", "go") })
					b.MinimumShouldMatch("50%")
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Render(querydsl.MustBuild(tt.block))
			var ufe render.UnsupportedFeatureError
			if !errors.As(err, &ufe) {
				t.Fatalf("Render() error = %v, want UnsupportedFeatureError", err)
			}
			if tt.feature != "" && ufe.Feature != tt.feature {
				t.Errorf("Feature = %q, want %q", ufe.Feature, tt.feature)
			}
		})
	}
}

func TestRender_SimpleQueryStringFieldSettings(t *testing.T) {
	q := querydsl.MustBuild(func(q *querydsl.QueryBuilder) {
		q.SimpleQueryString("kotlin guide", []string{"title"}, func(s *querydsl.SimpleQueryStringQuery) {
			s.DefaultOperator = querydsl.AND
			s.Analyzer = "standard"
		})
	})
	if _, err := New().Render(q); err != nil {
		t.Fatalf("Render() error = %v, want operator and analyzer applied per field", err)
	}
}

func TestRender_JSON(t *testing.T) {
	q := querydsl.MustBuild(func(q *querydsl.QueryBuilder) {
		q.Match("title", "kotlin", func(m *querydsl.MatchQuery) { m.Boost = querydsl.Ptr(2.0) })
	})
	result, err := New().Render(q)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if result.Dialect != Dialect {
		t.Errorf("Dialect = %q, want %q", result.Dialect, Dialect)
	}
	if result.Source["match"] != "kotlin" || result.Source["field"] != "title" {
		t.Errorf("Source = %v, want match on title", result.Source)
	}
	if result.Source["boost"] != 2.0 {
		t.Errorf("boost = %v, want 2", result.Source["boost"])
	}
}

func TestRender_Invalid(t *testing.T) {
	_, err := New().Render(&types.Query{Kind: types.KindTerm})
	if err == nil {
		t.Fatal("expected error for term without body")
	}
}

func TestParseFuzziness(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"AUTO", 1, false},
		{"auto:3,6", 1, false},
		{"0", 0, false},
		{"2", 2, false},
		{"3", 0, true},
		{"-1", 0, true},
		{"x", 0, true},
	}
	for _, tt := range tests {
		got, err := parseFuzziness(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFuzziness(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseFuzziness(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSplitFieldBoost(t *testing.T) {
	field, boost := splitFieldBoost("title^2")
	if field != "title" || boost == nil || *boost != 2 {
		t.Errorf("splitFieldBoost(title^2) = %q, %v", field, boost)
	}
	field, boost = splitFieldBoost("content")
	if field != "content" || boost != nil {
		t.Errorf("splitFieldBoost(content) = %q, %v", field, boost)
	}
}
