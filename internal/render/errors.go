package render

import (
	"fmt"

	"github.com/guenzelsen/querydsl/internal/types"
)

// UnsupportedFeatureError indicates a query feature the dialect cannot express.
type UnsupportedFeatureError struct {
	Feature string
	Dialect string
	Hint    string
}

func (e UnsupportedFeatureError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s is not supported: %s", e.Dialect, e.Feature, e.Hint)
	}
	return fmt.Sprintf("%s: %s is not supported", e.Dialect, e.Feature)
}

// NewUnsupportedFeatureError creates a new unsupported feature error.
func NewUnsupportedFeatureError(dialect, feature string, hint ...string) error {
	err := UnsupportedFeatureError{Feature: feature, Dialect: dialect}
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	return err
}

// Check walks q and fails on the first node whose kind the capabilities
// do not cover.
func Check(dialect string, caps Capabilities, q *types.Query) error {
	return types.Walk(q, func(n *types.Query, _ int) error {
		if !caps.Supports(n.Kind) {
			return NewUnsupportedFeatureError(dialect, string(n.Kind)+" query", caps.hint(n.Kind))
		}
		return nil
	})
}
