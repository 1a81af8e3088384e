package render

import "github.com/guenzelsen/querydsl/internal/types"

// Capabilities describes the query features supported by a dialect.
type Capabilities struct {
	Nested            bool // nested
	Joins             bool // has_child, has_parent
	SimpleQueryString bool // simple_query_string
	Wildcard          bool // wildcard
}

// Full is the capability set of a search engine speaking the query DSL.
var Full = Capabilities{
	Nested:            true,
	Joins:             true,
	SimpleQueryString: true,
	Wildcard:          true,
}

// Supports reports whether a query kind can be rendered.
func (c Capabilities) Supports(k types.Kind) bool {
	switch k {
	case types.KindNested:
		return c.Nested
	case types.KindHasChild, types.KindHasParent:
		return c.Joins
	case types.KindSimpleQueryString:
		return c.SimpleQueryString
	case types.KindWildcard:
		return c.Wildcard
	}
	return true
}

func (Capabilities) hint(k types.Kind) string {
	switch k {
	case types.KindNested:
		return "flatten the nested fields or use a dialect with nested documents"
	case types.KindHasChild, types.KindHasParent:
		return "parent/child joins need a join field mapping"
	}
	return ""
}
