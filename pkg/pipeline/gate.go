package pipeline

import "github.com/aretw0/easel/pkg/domain"

// Gate reports whether an action guarded by conds under eval should run
// against frame. An empty predicate list always passes. Predicates are
// evaluated left to right and evaluation stops as soon as the outcome is
// known. Unknown evaluation modes behave like EvaluateAll.
func Gate[T any](conds []Predicate[T], eval domain.Evaluation, frame Frame[T]) bool {
	if len(conds) == 0 {
		return true
	}

	switch eval {
	case domain.EvaluateAny:
		for _, cond := range conds {
			if cond(frame) {
				return true
			}
		}
		return false

	case domain.EvaluateNone:
		for _, cond := range conds {
			if cond(frame) {
				return false
			}
		}
		return true

	default:
		for _, cond := range conds {
			if !cond(frame) {
				return false
			}
		}
		return true
	}
}
