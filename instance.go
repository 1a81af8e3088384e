package querydsl

import (
	"fmt"
	"strings"

	"github.com/guenzelsen/querydsl/internal/types"
	"github.com/zoobzio/dbml"
)

// Schema validates queries against a DBML project. Tables are document
// types (the names used by has_child and has_parent), columns are fields.
type Schema struct {
	project *dbml.Project
	// Internal indexes for fast validation
	tables map[string]*dbml.Table
	fields map[string]map[string]*dbml.Column // table -> field -> column
}

// NewFromDBML creates a new Schema from a DBML project.
func NewFromDBML(project *dbml.Project) (*Schema, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	s := &Schema{
		project: project,
		tables:  make(map[string]*dbml.Table),
		fields:  make(map[string]map[string]*dbml.Column),
	}

	for _, table := range project.Tables {
		s.tables[table.Name] = table
		s.fields[table.Name] = make(map[string]*dbml.Column)
		for _, col := range table.Columns {
			s.fields[table.Name][col.Name] = col
		}
	}

	return s, nil
}

// validateType checks if a document type exists in the schema.
func (s *Schema) validateType(name string) error {
	if _, ok := s.tables[name]; !ok {
		return fmt.Errorf("type '%s' not found in schema", name)
	}
	return nil
}

// hasColumn reports whether any table has a column called name.
func (s *Schema) hasColumn(name string) bool {
	for _, tableFields := range s.fields {
		if _, ok := tableFields[name]; ok {
			return true
		}
	}
	return false
}

// validateField checks a field name. Dotted names such as "comments.text"
// resolve to a column of the "comments" type, or to the last segment as a
// column of any type.
func (s *Schema) validateField(field string) error {
	if field == "" {
		return fmt.Errorf("field name cannot be empty")
	}
	if s.hasColumn(field) {
		return nil
	}
	if dot := strings.LastIndexByte(field, '.'); dot != -1 {
		prefix, name := field[:dot], field[dot+1:]
		if cols, ok := s.fields[prefix]; ok {
			if _, ok := cols[name]; ok {
				return nil
			}
		}
		if s.hasColumn(name) {
			return nil
		}
	}
	return fmt.Errorf("field '%s' not found in schema", field)
}

// validatePath checks a nested path: a document type or an object field.
func (s *Schema) validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("nested path cannot be empty")
	}
	if _, ok := s.tables[path]; ok {
		return nil
	}
	if err := s.validateField(path); err != nil {
		return fmt.Errorf("nested path '%s' not found in schema", path)
	}
	return nil
}

// validateQueryField checks a simple_query_string field, which may carry a
// boost suffix ("title^2") or a wildcard ("meta.*").
func (s *Schema) validateQueryField(field string) error {
	if caret := strings.IndexByte(field, '^'); caret != -1 {
		field = field[:caret]
	}
	if strings.Contains(field, "*") {
		return nil
	}
	return s.validateField(field)
}

// TryF returns a validated field name, or an error if it is not in the schema.
func (s *Schema) TryF(name string) (string, error) {
	if err := s.validateField(name); err != nil {
		return "", fmt.Errorf("invalid field: %w", err)
	}
	return name, nil
}

// F returns a validated field name and panics if it is not in the schema.
func (s *Schema) F(name string) string {
	f, err := s.TryF(name)
	if err != nil {
		panic(err)
	}
	return f
}

// TryT returns a validated document type, or an error if it is not in the schema.
func (s *Schema) TryT(name string) (string, error) {
	if err := s.validateType(name); err != nil {
		return "", fmt.Errorf("invalid type: %w", err)
	}
	return name, nil
}

// T returns a validated document type and panics if it is not in the schema.
func (s *Schema) T(name string) string {
	t, err := s.TryT(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Validate checks every field, nested path and join type in q.
func (s *Schema) Validate(q *Query) error {
	return types.Walk(q, func(n *types.Query, _ int) error {
		switch n.Kind {
		case types.KindMatch:
			return s.validateField(n.Match.Field)
		case types.KindTerm:
			return s.validateField(n.Term.Field)
		case types.KindTerms:
			return s.validateField(n.Terms.Field)
		case types.KindWildcard:
			return s.validateField(n.Wildcard.Field)
		case types.KindNested:
			return s.validatePath(n.Nested.Path)
		case types.KindSimpleQueryString:
			for _, f := range n.SimpleQueryString.Fields {
				if err := s.validateQueryField(f); err != nil {
					return err
				}
			}
		case types.KindHasChild:
			return s.validateType(n.HasChild.Type)
		case types.KindHasParent:
			return s.validateType(n.HasParent.ParentType)
		}
		return nil
	})
}

// Build builds a query with block and validates it against the schema.
func (s *Schema) Build(block func(*QueryBuilder)) (*Query, error) {
	q, err := Build(block)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(q); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return q, nil
}

// Project returns the DBML project the schema was built from.
func (s *Schema) Project() *dbml.Project {
	return s.project
}
