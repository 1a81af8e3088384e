package querydsl

import (
	"fmt"

	"github.com/guenzelsen/querydsl/internal/types"
)

// BoolQueryBuilder builds a bool query from must, should, must_not and
// filter clauses. Each clause receives a QueryListBuilder; calling the same
// clause again appends to it.
type BoolQueryBuilder struct {
	bool *types.BoolQuery
	err  error
}

func buildBool(block func(*BoolQueryBuilder)) (*types.Query, error) {
	b := &BoolQueryBuilder{bool: &types.BoolQuery{}}
	if block != nil {
		block(b)
	}
	if b.err != nil {
		return nil, b.err
	}
	return &types.Query{Kind: types.KindBool, Bool: b.bool}, nil
}

// GetError returns the internal error (for use by loader packages).
func (b *BoolQueryBuilder) GetError() error {
	return b.err
}

// SetError sets the internal error unless one is already recorded.
func (b *BoolQueryBuilder) SetError(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *BoolQueryBuilder) clause(name string, dst *[]*types.Query, block func(*QueryListBuilder)) *BoolQueryBuilder {
	if b.err != nil {
		return b
	}
	l := &QueryListBuilder{}
	if block != nil {
		block(l)
	}
	queries, err := l.result()
	if err != nil {
		b.err = fmt.Errorf("bool.%s: %w", name, err)
		return b
	}
	*dst = append(*dst, queries...)
	return b
}

// Must adds queries that must match and contribute to the score.
func (b *BoolQueryBuilder) Must(block func(*QueryListBuilder)) *BoolQueryBuilder {
	return b.clause("must", &b.bool.Must, block)
}

// Should adds queries that should match and contribute to the score.
func (b *BoolQueryBuilder) Should(block func(*QueryListBuilder)) *BoolQueryBuilder {
	return b.clause("should", &b.bool.Should, block)
}

// MustNot adds queries that must not match. They run in filter context.
func (b *BoolQueryBuilder) MustNot(block func(*QueryListBuilder)) *BoolQueryBuilder {
	return b.clause("must_not", &b.bool.MustNot, block)
}

// Filter adds queries that must match without scoring.
func (b *BoolQueryBuilder) Filter(block func(*QueryListBuilder)) *BoolQueryBuilder {
	return b.clause("filter", &b.bool.Filter, block)
}

// MinimumShouldMatch sets how many should clauses must match, e.g. "1" or "75%".
func (b *BoolQueryBuilder) MinimumShouldMatch(msm string) *BoolQueryBuilder {
	if b.err != nil {
		return b
	}
	b.bool.MinimumShouldMatch = msm
	return b
}

// Boost sets the boost of the bool query.
func (b *BoolQueryBuilder) Boost(boost float64) *BoolQueryBuilder {
	if b.err != nil {
		return b
	}
	b.bool.Boost = &boost
	return b
}

// Name sets the _name of the bool query.
func (b *BoolQueryBuilder) Name(name string) *BoolQueryBuilder {
	if b.err != nil {
		return b
	}
	b.bool.Name = name
	return b
}
