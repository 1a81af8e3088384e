package types

// WalkFunc is called for every node visited by Walk.
type WalkFunc func(q *Query, depth int) error

// Walk visits q and its descendants depth-first. Bool clauses are visited
// in must, should, must_not, filter order. The first error stops the walk.
func Walk(q *Query, fn WalkFunc) error {
	return walk(q, 0, fn)
}

func walk(q *Query, depth int, fn WalkFunc) error {
	if q == nil {
		return nil
	}
	if err := fn(q, depth); err != nil {
		return err
	}

	switch q.Kind {
	case KindNested:
		if q.Nested != nil {
			return walk(q.Nested.Query, depth+1, fn)
		}
	case KindHasChild:
		if q.HasChild != nil {
			return walk(q.HasChild.Query, depth+1, fn)
		}
	case KindHasParent:
		if q.HasParent != nil {
			return walk(q.HasParent.Query, depth+1, fn)
		}
	case KindBool:
		if q.Bool == nil {
			return nil
		}
		for _, clause := range q.Bool.clauses() {
			for _, c := range clause.queries {
				if err := walk(c, depth+1, fn); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
