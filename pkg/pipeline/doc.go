/*
Package pipeline implements the conditional pipelines run every frame.

A pipeline is an ordered list of entries. An entry is either unconditional or
gated by one or more predicates combined under an evaluation policy:

  - all:  run only if every predicate holds; stop at the first false.
  - any:  run as soon as one predicate holds; stop at the first true.
  - none: run only if no predicate holds; stop at the first true.

Predicates that come after the decisive one are never called.

Three flavours share that gate:

  - Transform pipelines thread the user data through each action and return
    the result. Predicates see the data as it is at their point in the list.
  - Draw pipelines call each action with the surface and an unchanging frame.
  - Filter pipelines prepare the surface's graphics state before a layer draws.

# Usage

	steps := []pipeline.Entry[int, pipeline.Transform[int]]{
		pipeline.Do[int](pipeline.Transform[int](grow)),
		pipeline.When[int, pipeline.Transform[int]](domain.EvaluateAny, tooBig, offscreen).
			Then(reset),
	}
	next := pipeline.RunTransform(steps, drawData, current)
*/
package pipeline
