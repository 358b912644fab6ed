package pipeline

import (
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/ports"
)

// Frame is the view predicates and actions observe: the frame's draw data
// plus the user data as it is at that point of the pipeline.
type Frame[T any] struct {
	Draw domain.DrawData
	Data T
}

// Predicate decides whether a gated entry runs.
type Predicate[T any] func(Frame[T]) bool

// Transform maps the user data to its next value.
type Transform[T any] func(Frame[T]) T

// Draw renders onto the surface. It must not rely on mutating Frame.Data.
type Draw[T any] func(ports.Surface, Frame[T])

// Filter prepares the surface's graphics state for the layer's draw entries.
type Filter[T any] func(ports.Surface, Frame[T])

// Entry is one step of a pipeline: a list of actions, optionally guarded by
// predicates combined under Evaluation. An entry without conditions always runs.
type Entry[T any, A any] struct {
	Condition  []Predicate[T]
	Evaluation domain.Evaluation
	Action     []A
}

// Transforms builds an unconditional transform entry.
func Transforms[T any](actions ...Transform[T]) Entry[T, Transform[T]] {
	return Entry[T, Transform[T]]{Action: actions}
}

// Draws builds an unconditional draw entry.
func Draws[T any](actions ...Draw[T]) Entry[T, Draw[T]] {
	return Entry[T, Draw[T]]{Action: actions}
}

// Filters builds an unconditional filter entry.
func Filters[T any](actions ...Filter[T]) Entry[T, Filter[T]] {
	return Entry[T, Filter[T]]{Action: actions}
}

// When returns a copy of e gated by conds under eval.
func (e Entry[T, A]) When(eval domain.Evaluation, conds ...Predicate[T]) Entry[T, A] {
	e.Evaluation = eval
	e.Condition = append([]Predicate[T](nil), conds...)
	return e
}

// If gates e on a single predicate holding.
func (e Entry[T, A]) If(cond Predicate[T]) Entry[T, A] {
	return e.When(domain.EvaluateAll, cond)
}

// Unless gates e on a single predicate not holding.
func (e Entry[T, A]) Unless(cond Predicate[T]) Entry[T, A] {
	return e.When(domain.EvaluateNone, cond)
}

// Conditional reports whether the entry is gated.
func (e Entry[T, A]) Conditional() bool {
	return len(e.Condition) > 0
}

func (e Entry[T, A]) allows(frame Frame[T]) bool {
	return Gate(e.Condition, e.Evaluation, frame)
}

// RunTransform threads data through every entry that passes its gate and
// returns the final value. Within an entry the actions chain in order.
func RunTransform[T any](entries []Entry[T, Transform[T]], draw domain.DrawData, data T) T {
	for _, entry := range entries {
		if !entry.allows(Frame[T]{Draw: draw, Data: data}) {
			continue
		}
		for _, action := range entry.Action {
			if action == nil {
				continue
			}
			data = action(Frame[T]{Draw: draw, Data: data})
		}
	}
	return data
}

// RunDraw calls every gated-in draw action, in order, with the same frame.
func RunDraw[T any](surface ports.Surface, entries []Entry[T, Draw[T]], frame Frame[T]) {
	for _, entry := range entries {
		if !entry.allows(frame) {
			continue
		}
		for _, action := range entry.Action {
			if action != nil {
				action(surface, frame)
			}
		}
	}
}

// RunFilter calls every gated-in filter action, in order, with the same frame.
func RunFilter[T any](surface ports.Surface, entries []Entry[T, Filter[T]], frame Frame[T]) {
	for _, entry := range entries {
		if !entry.allows(frame) {
			continue
		}
		for _, action := range entry.Action {
			if action != nil {
				action(surface, frame)
			}
		}
	}
}
