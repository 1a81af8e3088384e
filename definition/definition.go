// Package definition loads queries from declarative YAML or JSON documents.
//
// A document mirrors the query DSL:
//
//	bool:
//	  must:
//	    - match: {title: Kotlin DSL}
//	  filter:
//	    - terms: {tags: [tutorial, guide]}
//
// It may also be a search request wrapping the query with size, from and
// _source settings. Documents are replayed through the querydsl builders,
// so a mapping naming two queries where one is expected fails the same way
// the builder API does.
package definition

import (
	"fmt"
	"os"

	"github.com/guenzelsen/querydsl"
	"gopkg.in/yaml.v3"
)

// Definition is a loaded query document.
type Definition struct {
	Query    *querydsl.Query
	Size     *int
	From     *int
	Includes []string
	Excludes []string
}

// Loader converts documents into validated queries.
type Loader struct {
	schema *querydsl.Schema
}

// NewLoader creates a loader. When schema is not nil, every loaded query
// is also validated against it.
func NewLoader(schema *querydsl.Schema) *Loader {
	return &Loader{schema: schema}
}

// Parse loads a definition from YAML or JSON data without a schema.
func Parse(data []byte) (*Definition, error) {
	return NewLoader(nil).Parse(data)
}

// Load reads and parses the definition file at path without a schema.
func Load(path string) (*Definition, error) {
	return NewLoader(nil).Load(path)
}

// Parse loads a definition from YAML or JSON data.
func (l *Loader) Parse(data []byte) (*Definition, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("definition is empty")
	}
	m, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("definition must be an object")
	}
	return l.LoadDefinition(m)
}

// Load reads and parses the definition file at path.
func (l *Loader) Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	def, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// LoadDefinition converts a decoded document. A document with a "query"
// key is a search request; anything else is a bare query.
func (l *Loader) LoadDefinition(doc map[string]interface{}) (*Definition, error) {
	def := &Definition{}
	queryDoc := doc

	if q, exists := doc["query"]; exists {
		qm, ok := q.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("query must be an object")
		}
		queryDoc = qm
		if err := applyRequest(def, doc); err != nil {
			return nil, err
		}
	}

	query, err := l.LoadQuery(queryDoc)
	if err != nil {
		return nil, err
	}
	def.Query = query
	return def, nil
}

// LoadQuery converts a decoded query object into a validated query.
func (l *Loader) LoadQuery(doc map[string]interface{}) (*querydsl.Query, error) {
	block := func(q *querydsl.QueryBuilder) { applyQuery(rootTarget{q}, doc) }
	if l.schema != nil {
		return l.schema.Build(block)
	}
	return querydsl.Build(block)
}

// applyRequest reads the search request settings around the query.
func applyRequest(def *Definition, doc map[string]interface{}) error {
	for _, key := range sortedKeys(doc) {
		val := doc[key]
		switch key {
		case "query":
		case "size", "from":
			n, ok := toInt(val)
			if !ok || n < 0 {
				return fmt.Errorf("%s must be a non-negative integer", key)
			}
			if key == "size" {
				def.Size = &n
			} else {
				def.From = &n
			}
		case "_source":
			if err := applySource(def, val); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown request key %q", key)
		}
	}
	return nil
}

// applySource accepts a field list or an {includes, excludes} object.
func applySource(def *Definition, v interface{}) error {
	if m, ok := v.(map[string]interface{}); ok {
		for _, key := range sortedKeys(m) {
			fields, err := toStrings(m[key], "_source."+key)
			if err != nil {
				return err
			}
			switch key {
			case "includes":
				def.Includes = fields
			case "excludes":
				def.Excludes = fields
			default:
				return fmt.Errorf("unknown key %q in _source", key)
			}
		}
		return nil
	}
	fields, err := toStrings(v, "_source")
	if err != nil {
		return err
	}
	def.Includes = fields
	return nil
}
