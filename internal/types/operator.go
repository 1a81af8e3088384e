package types

import "fmt"

// Operator represents how the terms of a full-text query are combined.
type Operator string

const (
	OperatorDefault Operator = ""
	OperatorAnd     Operator = "and"
	OperatorOr      Operator = "or"
)

// Validate rejects operators the search engine does not accept.
func (o Operator) Validate() error {
	switch o {
	case OperatorDefault, OperatorAnd, OperatorOr:
		return nil
	}
	return fmt.Errorf("unsupported operator: %q", string(o))
}

// ScoreMode controls how scores of matching children affect the parent.
type ScoreMode string

const (
	ScoreModeDefault ScoreMode = ""
	ScoreModeAvg     ScoreMode = "avg"
	ScoreModeMax     ScoreMode = "max"
	ScoreModeMin     ScoreMode = "min"
	ScoreModeNone    ScoreMode = "none"
	ScoreModeSum     ScoreMode = "sum"
)

// Validate rejects score modes the search engine does not accept.
func (s ScoreMode) Validate() error {
	switch s {
	case ScoreModeDefault, ScoreModeAvg, ScoreModeMax, ScoreModeMin, ScoreModeNone, ScoreModeSum:
		return nil
	}
	return fmt.Errorf("unsupported score mode: %q", string(s))
}
