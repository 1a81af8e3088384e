package types

import (
	"errors"
	"strings"
	"testing"
)

func matchAll() *Query {
	return &Query{Kind: KindMatchAll, MatchAll: &MatchAllQuery{}}
}

func term(field, value string) *Query {
	return &Query{Kind: KindTerm, Term: &TermQuery{Field: field, Value: String(value)}}
}

// =============================================================================
// FieldValue Tests
// =============================================================================

func TestFieldValue_String(t *testing.T) {
	v := String("kotlin")
	if v.Type() != ValueString {
		t.Errorf("Type() = %v, want ValueString", v.Type())
	}
	s, ok := v.StringValue()
	if !ok || s != "kotlin" {
		t.Errorf("StringValue() = %q, %v", s, ok)
	}
	if _, ok := v.IntValue(); ok {
		t.Error("IntValue() reported a string value as int")
	}
	if got := v.Interface(); got != "kotlin" {
		t.Errorf("Interface() = %v, want kotlin", got)
	}
}

func TestFieldValue_Int(t *testing.T) {
	v := Int(42)
	i, ok := v.IntValue()
	if !ok || i != 42 {
		t.Errorf("IntValue() = %d, %v", i, ok)
	}
	if got := v.String(); got != "42" {
		t.Errorf("String() = %q, want %q", got, "42")
	}
	if got, ok := v.Interface().(int64); !ok || got != 42 {
		t.Errorf("Interface() = %#v, want int64(42)", v.Interface())
	}
}

func TestFieldValue_Bool(t *testing.T) {
	v := Bool(true)
	b, ok := v.BoolValue()
	if !ok || !b {
		t.Errorf("BoolValue() = %v, %v", b, ok)
	}
	if got := v.String(); got != "true" {
		t.Errorf("String() = %q, want %q", got, "true")
	}
	if _, ok := v.StringValue(); ok {
		t.Error("StringValue() reported a bool value as string")
	}
}

func TestFieldValue_ZeroIsEmptyString(t *testing.T) {
	var v FieldValue
	s, ok := v.StringValue()
	if !ok || s != "" {
		t.Errorf("zero FieldValue = %q, %v; want empty string", s, ok)
	}
}

// =============================================================================
// Operator / ScoreMode Tests
// =============================================================================

func TestOperator_Validate(t *testing.T) {
	for _, op := range []Operator{OperatorDefault, OperatorAnd, OperatorOr} {
		if err := op.Validate(); err != nil {
			t.Errorf("Validate(%q) = %v", op, err)
		}
	}
	if err := Operator("xor").Validate(); err == nil {
		t.Error("expected error for unknown operator")
	}
}

func TestScoreMode_Validate(t *testing.T) {
	for _, m := range []ScoreMode{ScoreModeDefault, ScoreModeAvg, ScoreModeMax, ScoreModeMin, ScoreModeNone, ScoreModeSum} {
		if err := m.Validate(); err != nil {
			t.Errorf("Validate(%q) = %v", m, err)
		}
	}
	if err := ScoreMode("median").Validate(); err == nil {
		t.Error("expected error for unknown score mode")
	}
}

// =============================================================================
// Validate Tests
// =============================================================================

func TestValidate_Valid(t *testing.T) {
	tree := &Query{Kind: KindBool, Bool: &BoolQuery{
		Must: []*Query{
			{Kind: KindMatch, Match: &MatchQuery{Field: "title", Value: String("go"), Operator: OperatorAnd}},
		},
		Filter: []*Query{
			term("status", "published"),
			{Kind: KindTerms, Terms: &TermsQuery{Field: "tags", Values: []FieldValue{String("a")}}},
		},
		Should: []*Query{
			{Kind: KindNested, Nested: &NestedQuery{Path: "comments", Query: term("comments.author", "admin")}},
			{Kind: KindHasChild, HasChild: &HasChildQuery{Type: "answer", Query: matchAll()}},
			{Kind: KindHasParent, HasParent: &HasParentQuery{ParentType: "question", Query: matchAll()}},
		},
		MustNot: []*Query{
			{Kind: KindWildcard, Wildcard: &WildcardQuery{Field: "status", Value: "arch*"}},
			{Kind: KindSimpleQueryString, SimpleQueryString: &SimpleQueryStringQuery{Query: "spam", Fields: []string{"body"}}},
		},
	}}

	if err := tree.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	one, two, negative := 1, 2, -1
	tests := []struct {
		name  string
		query *Query
		want  string
	}{
		{"nil", nil, "query is nil"},
		{"unknown kind", &Query{Kind: "fuzzy"}, "unsupported query kind"},
		{"missing body", &Query{Kind: KindMatch}, "has no match body"},
		{"match without field", &Query{Kind: KindMatch, Match: &MatchQuery{}}, "requires a field"},
		{"term without field", &Query{Kind: KindTerm, Term: &TermQuery{}}, "requires a field"},
		{"terms without field", &Query{Kind: KindTerms, Terms: &TermsQuery{}}, "requires a field"},
		{"wildcard without field", &Query{Kind: KindWildcard, Wildcard: &WildcardQuery{Value: "a*"}}, "requires a field"},
		{"bad operator", &Query{Kind: KindMatch, Match: &MatchQuery{Field: "f", Operator: "xor"}}, "unsupported operator"},
		{"empty sqs field", &Query{Kind: KindSimpleQueryString, SimpleQueryString: &SimpleQueryStringQuery{Fields: []string{""}}}, "empty name"},
		{"nested without path", &Query{Kind: KindNested, Nested: &NestedQuery{Query: matchAll()}}, "requires a path"},
		{"nested without query", &Query{Kind: KindNested, Nested: &NestedQuery{Path: "p"}}, "a query must be specified for nested"},
		{"nested bad score mode", &Query{Kind: KindNested, Nested: &NestedQuery{Path: "p", Query: matchAll(), ScoreMode: "median"}}, "unsupported score mode"},
		{"has_child without type", &Query{Kind: KindHasChild, HasChild: &HasChildQuery{Query: matchAll()}}, "requires a type"},
		{"has_child without query", &Query{Kind: KindHasChild, HasChild: &HasChildQuery{Type: "c"}}, "a query must be specified for has_child"},
		{"has_child negative min", &Query{Kind: KindHasChild, HasChild: &HasChildQuery{Type: "c", Query: matchAll(), MinChildren: &negative}}, "min_children cannot be negative"},
		{"has_child negative max", &Query{Kind: KindHasChild, HasChild: &HasChildQuery{Type: "c", Query: matchAll(), MaxChildren: &negative}}, "max_children cannot be negative"},
		{"has_child min > max", &Query{Kind: KindHasChild, HasChild: &HasChildQuery{Type: "c", Query: matchAll(), MinChildren: &two, MaxChildren: &one}}, "exceeds max_children"},
		{"has_parent without type", &Query{Kind: KindHasParent, HasParent: &HasParentQuery{Query: matchAll()}}, "requires a parent type"},
		{"has_parent without query", &Query{Kind: KindHasParent, HasParent: &HasParentQuery{ParentType: "p"}}, "a query must be specified for has_parent"},
		{"nil bool clause", &Query{Kind: KindBool, Bool: &BoolQuery{Should: []*Query{nil}}}, "bool should clause 0 is nil"},
		{"invalid child", &Query{Kind: KindBool, Bool: &BoolQuery{Must: []*Query{{Kind: KindTerm, Term: &TermQuery{}}}}}, "requires a field"},
		{"two variants", &Query{Kind: KindMatchAll, MatchAll: &MatchAllQuery{}, Term: &TermQuery{Field: "f"}}, "exactly one variant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

// nestedChain builds a tree of exactly levels levels: nested wrappers
// around a match_all leaf.
func nestedChain(levels int) *Query {
	q := matchAll()
	for i := 1; i < levels; i++ {
		q = &Query{Kind: KindNested, Nested: &NestedQuery{Path: "p", Query: q}}
	}
	return q
}

func TestValidate_MaxDepth(t *testing.T) {
	if err := nestedChain(MaxDepth).Validate(); err != nil {
		t.Fatalf("%d levels should be valid, got %v", MaxDepth, err)
	}
	err := nestedChain(MaxDepth + 1).Validate()
	if err == nil || !strings.Contains(err.Error(), "maximum query depth") {
		t.Fatalf("expected depth error for %d levels, got %v", MaxDepth+1, err)
	}
}

func TestBoolQuery_IsEmpty(t *testing.T) {
	if !(&BoolQuery{}).IsEmpty() {
		t.Error("empty bool should report IsEmpty")
	}
	if (&BoolQuery{Filter: []*Query{matchAll()}}).IsEmpty() {
		t.Error("bool with a filter is not empty")
	}
}

// =============================================================================
// Walk Tests
// =============================================================================

func TestWalk_Order(t *testing.T) {
	tree := &Query{Kind: KindBool, Bool: &BoolQuery{
		Filter:  []*Query{term("f", "4")},
		MustNot: []*Query{term("n", "3")},
		Should:  []*Query{{Kind: KindNested, Nested: &NestedQuery{Path: "p", Query: term("s", "2")}}},
		Must:    []*Query{term("m", "1")},
	}}

	var visited []string
	var depths []int
	err := Walk(tree, func(q *Query, depth int) error {
		depths = append(depths, depth)
		switch q.Kind {
		case KindTerm:
			visited = append(visited, q.Term.Field)
		default:
			visited = append(visited, string(q.Kind))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() = %v", err)
	}

	want := []string{"bool", "m", "nested", "s", "n", "f"}
	if strings.Join(visited, ",") != strings.Join(want, ",") {
		t.Errorf("visit order = %v, want %v", visited, want)
	}
	wantDepths := []int{0, 1, 1, 2, 1, 1}
	for i := range wantDepths {
		if depths[i] != wantDepths[i] {
			t.Errorf("depth[%d] = %d, want %d", i, depths[i], wantDepths[i])
		}
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	stop := errors.New("stop")
	tree := &Query{Kind: KindBool, Bool: &BoolQuery{Must: []*Query{term("a", "1"), term("b", "2")}}}

	count := 0
	err := Walk(tree, func(q *Query, _ int) error {
		count++
		if q.Kind == KindTerm {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("Walk() = %v, want stop", err)
	}
	if count != 2 {
		t.Errorf("visited %d nodes, want 2", count)
	}
}

func TestWalk_Nil(t *testing.T) {
	called := false
	if err := Walk(nil, func(*Query, int) error { called = true; return nil }); err != nil {
		t.Fatalf("Walk(nil) = %v", err)
	}
	if called {
		t.Error("callback should not run for a nil tree")
	}
}
