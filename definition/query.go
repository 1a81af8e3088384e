package definition

import (
	"fmt"
	"strings"

	"github.com/guenzelsen/querydsl"
)

// applyQuery adds every query named in doc to t. A scope that holds a
// single query rejects a second key through the builder itself.
func applyQuery(t target, doc map[string]interface{}) {
	for _, kind := range sortedKeys(doc) {
		if err := applyKind(t, kind, doc[kind]); err != nil {
			t.fail(err)
			return
		}
	}
}

func applyKind(t target, kind string, body interface{}) error {
	switch kind {
	case "match":
		return parseMatch(t, body)
	case "term":
		return parseTerm(t, body)
	case "terms":
		return parseTerms(t, body)
	case "wildcard":
		return parseWildcard(t, body)
	case "simple_query_string":
		return parseSimpleQueryString(t, body)
	case "match_all":
		return parseMatchAll(t, body)
	case "bool":
		return parseBool(t, body)
	case "nested":
		return parseNested(t, body)
	case "has_child":
		return parseHasChild(t, body)
	case "has_parent":
		return parseHasParent(t, body)
	default:
		return fmt.Errorf("unsupported query type: %s", kind)
	}
}

// singleField returns the only field of a leaf query body such as
// {"title": "go"}.
func singleField(kind string, body interface{}) (string, interface{}, error) {
	m, ok := body.(map[string]interface{})
	if !ok {
		return "", nil, fmt.Errorf("%s query must be an object", kind)
	}
	if len(m) != 1 {
		return "", nil, fmt.Errorf("%s query must name exactly one field, found %d", kind, len(m))
	}
	for field, v := range m {
		return field, v, nil
	}
	return "", nil, nil
}

func parseMatch(t target, body interface{}) error {
	field, v, err := singleField("match", body)
	if err != nil {
		return err
	}
	what := "match." + field

	tmpl := querydsl.MatchQuery{Field: field}
	opts, long := v.(map[string]interface{})
	if !long {
		if tmpl.Value, err = toFieldValue(v, what); err != nil {
			return err
		}
	} else {
		if _, ok := opts["query"]; !ok {
			return fmt.Errorf("%s requires query", what)
		}
		for _, key := range sortedKeys(opts) {
			val := opts[key]
			if handled, err := applyCommon(key, val, &tmpl.Common, what); handled {
				if err != nil {
					return err
				}
				continue
			}
			switch key {
			case "query":
				tmpl.Value, err = toFieldValue(val, what+".query")
			case "operator":
				var s string
				s, err = toString(val, what+".operator")
				tmpl.Operator = querydsl.Operator(strings.ToLower(s))
			case "analyzer":
				tmpl.Analyzer, err = toString(val, what+".analyzer")
			case "fuzziness":
				tmpl.Fuzziness, err = toText(val, what+".fuzziness")
			case "minimum_should_match":
				tmpl.MinimumShouldMatch, err = toText(val, what+".minimum_should_match")
			case "lenient":
				tmpl.Lenient, err = toBool(val, what+".lenient")
			default:
				err = fmt.Errorf("unknown key %q in %s", key, what)
			}
			if err != nil {
				return err
			}
		}
	}

	t.match(field, tmpl.Value, func(m *querydsl.MatchQuery) { *m = tmpl })
	return nil
}

func parseTerm(t target, body interface{}) error {
	field, v, err := singleField("term", body)
	if err != nil {
		return err
	}
	what := "term." + field

	tmpl := querydsl.TermQuery{Field: field}
	opts, long := v.(map[string]interface{})
	if !long {
		if tmpl.Value, err = toFieldValue(v, what); err != nil {
			return err
		}
	} else {
		if _, ok := opts["value"]; !ok {
			return fmt.Errorf("%s requires value", what)
		}
		for _, key := range sortedKeys(opts) {
			val := opts[key]
			if handled, err := applyCommon(key, val, &tmpl.Common, what); handled {
				if err != nil {
					return err
				}
				continue
			}
			if key != "value" {
				return fmt.Errorf("unknown key %q in %s", key, what)
			}
			if tmpl.Value, err = toFieldValue(val, what+".value"); err != nil {
				return err
			}
		}
	}

	t.term(field, tmpl.Value, func(q *querydsl.TermQuery) { *q = tmpl })
	return nil
}

// parseTerms reads {"tags": [...], "boost": 1.2}: every key other than
// the common settings is the field.
func parseTerms(t target, body interface{}) error {
	m, ok := body.(map[string]interface{})
	if !ok {
		return fmt.Errorf("terms query must be an object")
	}

	var tmpl querydsl.TermsQuery
	var fields []string
	for _, key := range sortedKeys(m) {
		handled, err := applyCommon(key, m[key], &tmpl.Common, "terms")
		if err != nil {
			return err
		}
		if !handled {
			fields = append(fields, key)
		}
	}
	if len(fields) != 1 {
		return fmt.Errorf("terms query must name exactly one field, found %d", len(fields))
	}

	field := fields[0]
	list, ok := m[field].([]interface{})
	if !ok {
		return fmt.Errorf("terms.%s must be an array", field)
	}
	values := make([]querydsl.FieldValue, 0, len(list))
	for i, item := range list {
		fv, err := toFieldValue(item, fmt.Sprintf("terms.%s[%d]", field, i))
		if err != nil {
			return err
		}
		values = append(values, fv)
	}
	tmpl.Field, tmpl.Values = field, values

	t.terms(field, values, func(q *querydsl.TermsQuery) { *q = tmpl })
	return nil
}

func parseWildcard(t target, body interface{}) error {
	field, v, err := singleField("wildcard", body)
	if err != nil {
		return err
	}
	what := "wildcard." + field

	tmpl := querydsl.WildcardQuery{Field: field}
	opts, long := v.(map[string]interface{})
	if !long {
		if tmpl.Value, err = toString(v, what); err != nil {
			return err
		}
	} else {
		for _, key := range sortedKeys(opts) {
			val := opts[key]
			if handled, err := applyCommon(key, val, &tmpl.Common, what); handled {
				if err != nil {
					return err
				}
				continue
			}
			switch key {
			case "value", "wildcard":
				tmpl.Value, err = toString(val, what+"."+key)
			case "rewrite":
				tmpl.Rewrite, err = toString(val, what+".rewrite")
			default:
				err = fmt.Errorf("unknown key %q in %s", key, what)
			}
			if err != nil {
				return err
			}
		}
	}
	if tmpl.Value == "" {
		return fmt.Errorf("%s requires value", what)
	}

	t.wildcard(field, tmpl.Value, func(q *querydsl.WildcardQuery) { *q = tmpl })
	return nil
}

func parseSimpleQueryString(t target, body interface{}) error {
	const what = "simple_query_string"
	m, err := toObject(body, what)
	if err != nil {
		return err
	}
	if _, ok := m["query"]; !ok {
		return fmt.Errorf("%s requires query", what)
	}

	var tmpl querydsl.SimpleQueryStringQuery
	for _, key := range sortedKeys(m) {
		val := m[key]
		if handled, err := applyCommon(key, val, &tmpl.Common, what); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch key {
		case "query":
			tmpl.Query, err = toString(val, what+".query")
		case "fields":
			tmpl.Fields, err = toStrings(val, what+".fields")
		case "default_operator":
			var s string
			s, err = toString(val, what+".default_operator")
			tmpl.DefaultOperator = querydsl.Operator(strings.ToLower(s))
		case "analyzer":
			tmpl.Analyzer, err = toString(val, what+".analyzer")
		case "flags":
			tmpl.Flags, err = toString(val, what+".flags")
		case "minimum_should_match":
			tmpl.MinimumShouldMatch, err = toText(val, what+".minimum_should_match")
		case "analyze_wildcard":
			tmpl.AnalyzeWildcard, err = toBool(val, what+".analyze_wildcard")
		case "lenient":
			tmpl.Lenient, err = toBool(val, what+".lenient")
		default:
			err = fmt.Errorf("unknown key %q in %s", key, what)
		}
		if err != nil {
			return err
		}
	}

	t.simpleQueryString(tmpl.Query, tmpl.Fields, func(q *querydsl.SimpleQueryStringQuery) { *q = tmpl })
	return nil
}

func parseMatchAll(t target, body interface{}) error {
	m, err := toObject(body, "match_all")
	if err != nil {
		return err
	}
	var tmpl querydsl.MatchAllQuery
	for _, key := range sortedKeys(m) {
		handled, err := applyCommon(key, m[key], &tmpl.Common, "match_all")
		if err != nil {
			return err
		}
		if !handled {
			return fmt.Errorf("unknown key %q in match_all", key)
		}
	}
	t.matchAll(func(q *querydsl.MatchAllQuery) { *q = tmpl })
	return nil
}

// clauseItems accepts a list of queries or a single query object.
func clauseItems(v interface{}, name string) ([]map[string]interface{}, error) {
	switch val := v.(type) {
	case map[string]interface{}:
		return []map[string]interface{}{val}, nil
	case []interface{}:
		items := make([]map[string]interface{}, 0, len(val))
		for i, item := range val {
			m, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("bool.%s[%d] must be an object", name, i)
			}
			items = append(items, m)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("bool.%s must be an object or an array", name)
	}
}

// fillClause adds each item to the list scope. Every item is one query,
// the same rule a single-query scope enforces.
func fillClause(l *querydsl.QueryListBuilder, items []map[string]interface{}) {
	for i, item := range items {
		switch len(item) {
		case 0:
			l.SetError(fmt.Errorf("%w in item %d", querydsl.ErrNoQuery, i))
			return
		case 1:
			applyQuery(listTarget{l}, item)
		default:
			l.SetError(fmt.Errorf("%w in item %d: found %d", querydsl.ErrMultipleQueries, i, len(item)))
			return
		}
	}
}

func parseBool(t target, body interface{}) error {
	m, err := toObject(body, "bool")
	if err != nil {
		return err
	}

	// Decode everything before touching the builder so errors carry no
	// partial state.
	clauses := make(map[string][]map[string]interface{})
	var common querydsl.Common
	var msm string
	for _, key := range sortedKeys(m) {
		val := m[key]
		if handled, err := applyCommon(key, val, &common, "bool"); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch key {
		case "must", "should", "must_not", "filter":
			items, err := clauseItems(val, key)
			if err != nil {
				return err
			}
			clauses[key] = items
		case "minimum_should_match":
			if msm, err = toText(val, "bool.minimum_should_match"); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown key %q in bool", key)
		}
	}

	t.boolQuery(func(b *querydsl.BoolQueryBuilder) {
		if items, ok := clauses["must"]; ok {
			b.Must(func(l *querydsl.QueryListBuilder) { fillClause(l, items) })
		}
		if items, ok := clauses["should"]; ok {
			b.Should(func(l *querydsl.QueryListBuilder) { fillClause(l, items) })
		}
		if items, ok := clauses["must_not"]; ok {
			b.MustNot(func(l *querydsl.QueryListBuilder) { fillClause(l, items) })
		}
		if items, ok := clauses["filter"]; ok {
			b.Filter(func(l *querydsl.QueryListBuilder) { fillClause(l, items) })
		}
		if msm != "" {
			b.MinimumShouldMatch(msm)
		}
		if common.Boost != nil {
			b.Boost(*common.Boost)
		}
		if common.Name != "" {
			b.Name(common.Name)
		}
	})
	return nil
}

// childQuery reads the "query" object of a nested, has_child or has_parent body.
func childQuery(m map[string]interface{}, what string) (map[string]interface{}, error) {
	v, ok := m["query"]
	if !ok {
		return nil, nil
	}
	q, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s.query must be an object", what)
	}
	return q, nil
}

func parseNested(t target, body interface{}) error {
	m, err := toObject(body, "nested")
	if err != nil {
		return err
	}
	path, err := toString(m["path"], "nested.path")
	if err != nil {
		return err
	}
	child, err := childQuery(m, "nested")
	if err != nil {
		return err
	}

	var common querydsl.Common
	var scoreMode string
	var ignoreUnmapped bool
	for _, key := range sortedKeys(m) {
		val := m[key]
		if handled, err := applyCommon(key, val, &common, "nested"); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch key {
		case "path", "query":
		case "score_mode":
			scoreMode, err = toString(val, "nested.score_mode")
		case "ignore_unmapped":
			ignoreUnmapped, err = toBool(val, "nested.ignore_unmapped")
		default:
			err = fmt.Errorf("unknown key %q in nested", key)
		}
		if err != nil {
			return err
		}
	}

	t.nested(path, func(n *querydsl.NestedQueryBuilder) {
		if child != nil {
			n.Query(func(q *querydsl.QueryBuilder) { applyQuery(rootTarget{q}, child) })
		}
		if scoreMode != "" {
			n.ScoreMode(querydsl.ScoreMode(strings.ToLower(scoreMode)))
		}
		if ignoreUnmapped {
			n.IgnoreUnmapped(true)
		}
		if common.Boost != nil {
			n.Boost(*common.Boost)
		}
		if common.Name != "" {
			n.Name(common.Name)
		}
	})
	return nil
}

func parseHasChild(t target, body interface{}) error {
	m, err := toObject(body, "has_child")
	if err != nil {
		return err
	}
	childType, err := toString(m["type"], "has_child.type")
	if err != nil {
		return err
	}
	child, err := childQuery(m, "has_child")
	if err != nil {
		return err
	}

	var common querydsl.Common
	var scoreMode string
	var minChildren, maxChildren *int
	for _, key := range sortedKeys(m) {
		val := m[key]
		if handled, err := applyCommon(key, val, &common, "has_child"); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch key {
		case "type", "query":
		case "score_mode":
			scoreMode, err = toString(val, "has_child.score_mode")
		case "min_children", "max_children":
			n, ok := toInt(val)
			if !ok || n < 0 {
				err = fmt.Errorf("has_child.%s must be a non-negative integer", key)
			} else if key == "min_children" {
				minChildren = &n
			} else {
				maxChildren = &n
			}
		default:
			err = fmt.Errorf("unknown key %q in has_child", key)
		}
		if err != nil {
			return err
		}
	}

	t.hasChild(childType, func(h *querydsl.HasChildQueryBuilder) {
		if child != nil {
			h.Query(func(q *querydsl.QueryBuilder) { applyQuery(rootTarget{q}, child) })
		}
		if scoreMode != "" {
			h.ScoreMode(querydsl.ScoreMode(strings.ToLower(scoreMode)))
		}
		if minChildren != nil {
			h.MinChildren(*minChildren)
		}
		if maxChildren != nil {
			h.MaxChildren(*maxChildren)
		}
		if common.Boost != nil {
			h.Boost(*common.Boost)
		}
		if common.Name != "" {
			h.Name(common.Name)
		}
	})
	return nil
}

func parseHasParent(t target, body interface{}) error {
	m, err := toObject(body, "has_parent")
	if err != nil {
		return err
	}
	parentType, err := toString(m["parent_type"], "has_parent.parent_type")
	if err != nil {
		return err
	}
	child, err := childQuery(m, "has_parent")
	if err != nil {
		return err
	}

	var common querydsl.Common
	var score, ignoreUnmapped bool
	for _, key := range sortedKeys(m) {
		val := m[key]
		if handled, err := applyCommon(key, val, &common, "has_parent"); handled {
			if err != nil {
				return err
			}
			continue
		}
		switch key {
		case "parent_type", "query":
		case "score":
			score, err = toBool(val, "has_parent.score")
		case "ignore_unmapped":
			ignoreUnmapped, err = toBool(val, "has_parent.ignore_unmapped")
		default:
			err = fmt.Errorf("unknown key %q in has_parent", key)
		}
		if err != nil {
			return err
		}
	}

	t.hasParent(parentType, func(h *querydsl.HasParentQueryBuilder) {
		if child != nil {
			h.Query(func(q *querydsl.QueryBuilder) { applyQuery(rootTarget{q}, child) })
		}
		if score {
			h.Score(true)
		}
		if ignoreUnmapped {
			h.IgnoreUnmapped(true)
		}
		if common.Boost != nil {
			h.Boost(*common.Boost)
		}
		if common.Name != "" {
			h.Name(common.Name)
		}
	})
	return nil
}
