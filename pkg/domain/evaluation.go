package domain

import (
	"fmt"
	"strings"
)

// Evaluation is the policy used to combine the predicates of a conditional action.
type Evaluation string

const (
	EvaluateAll  Evaluation = "all"  // AND: every predicate must hold
	EvaluateAny  Evaluation = "any"  // OR: at least one predicate must hold
	EvaluateNone Evaluation = "none" // NOR: no predicate may hold
)

// ParseEvaluation accepts the lowercase names above, case-insensitively.
func ParseEvaluation(s string) (Evaluation, error) {
	switch Evaluation(strings.ToLower(strings.TrimSpace(s))) {
	case EvaluateAll:
		return EvaluateAll, nil
	case EvaluateAny:
		return EvaluateAny, nil
	case EvaluateNone:
		return EvaluateNone, nil
	}
	return "", fmt.Errorf("%w: evaluation %q", ErrInvalidOption, s)
}
