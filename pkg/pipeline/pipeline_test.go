package pipeline_test

import (
	"testing"

	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/pipeline"
	"github.com/aretw0/easel/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTransform_ChainsInOrder(t *testing.T) {
	var inputs []int
	step := func(add int) pipeline.Transform[int] {
		return func(f pipeline.Frame[int]) int {
			inputs = append(inputs, f.Data)
			return f.Data + add
		}
	}

	entries := []pipeline.Entry[int, pipeline.Transform[int]]{
		pipeline.Transforms(step(1)),
		pipeline.Transforms(step(10)),
		pipeline.Transforms(step(100)),
	}

	out := pipeline.RunTransform(entries, domain.DrawData{}, 0)

	assert.Equal(t, 111, out)
	assert.Equal(t, []int{0, 1, 11}, inputs, "each action receives the previous result")
}

func TestRunTransform_ActionListChains(t *testing.T) {
	double := pipeline.Transform[int](func(f pipeline.Frame[int]) int { return f.Data * 2 })
	inc := pipeline.Transform[int](func(f pipeline.Frame[int]) int { return f.Data + 1 })

	out := pipeline.RunTransform(
		[]pipeline.Entry[int, pipeline.Transform[int]]{pipeline.Transforms(double, inc)},
		domain.DrawData{}, 5,
	)
	assert.Equal(t, 11, out)
}

func TestRunTransform_PredicatesSeeCurrentState(t *testing.T) {
	inc := pipeline.Transform[int](func(f pipeline.Frame[int]) int { return f.Data + 1 })
	reset := pipeline.Transform[int](func(pipeline.Frame[int]) int { return 0 })
	overLimit := pipeline.Predicate[int](func(f pipeline.Frame[int]) bool { return f.Data > 3 })

	entries := []pipeline.Entry[int, pipeline.Transform[int]]{
		pipeline.Transforms(inc),
		pipeline.Transforms(reset).If(overLimit),
	}

	// The input is 3, so only the incremented value (4) can trip the predicate.
	assert.Equal(t, 0, pipeline.RunTransform(entries, domain.DrawData{}, 3))
	assert.Equal(t, 3, pipeline.RunTransform(entries, domain.DrawData{}, 2))
}

func TestRunTransform_SkipsGatedOut(t *testing.T) {
	called := false
	boom := pipeline.Transform[string](func(f pipeline.Frame[string]) string {
		called = true
		return "boom"
	})
	never := pipeline.Predicate[string](func(pipeline.Frame[string]) bool { return false })

	out := pipeline.RunTransform(
		[]pipeline.Entry[string, pipeline.Transform[string]]{
			pipeline.Transforms(boom).When(domain.EvaluateAny, never, never),
		},
		domain.DrawData{}, "calm",
	)

	assert.Equal(t, "calm", out)
	assert.False(t, called)
}

func TestRunTransform_DrawDataVisible(t *testing.T) {
	stamp := pipeline.Transform[int](func(f pipeline.Frame[int]) int { return f.Draw.Frame })
	out := pipeline.RunTransform(
		[]pipeline.Entry[int, pipeline.Transform[int]]{pipeline.Transforms(stamp)},
		domain.DrawData{Frame: 9}, 0,
	)
	assert.Equal(t, 9, out)
}

func TestRunDraw_OrderAndGating(t *testing.T) {
	surface := memory.NewSurface(100, 100)
	var order []string
	mark := func(name string) pipeline.Draw[int] {
		return func(s ports.Surface, f pipeline.Frame[int]) {
			order = append(order, name)
			s.MoveTo(float64(f.Data), 0)
		}
	}
	even := pipeline.Predicate[int](func(f pipeline.Frame[int]) bool { return f.Draw.Frame%2 == 0 })

	entries := []pipeline.Entry[int, pipeline.Draw[int]]{
		pipeline.Draws(mark("a"), mark("b")),
		pipeline.Draws(mark("even")).If(even),
		pipeline.Draws(mark("odd")).Unless(even),
		pipeline.Draws(mark("c")),
	}

	pipeline.RunDraw(surface, entries, pipeline.Frame[int]{Draw: domain.DrawData{Frame: 2}, Data: 7})

	assert.Equal(t, []string{"a", "b", "even", "c"}, order)
	require.Equal(t, 4, surface.Count("move_to"))
	for _, c := range surface.Calls() {
		assert.Equal(t, []float64{7, 0}, c.Args, "every action sees the same frame")
	}
}

func TestRunFilter_Order(t *testing.T) {
	surface := memory.NewSurface(10, 10)
	entries := []pipeline.Entry[int, pipeline.Filter[int]]{
		pipeline.Filters[int](
			func(s ports.Surface, _ pipeline.Frame[int]) { s.SetAlpha(0.5) },
			nil,
			func(s ports.Surface, _ pipeline.Frame[int]) { s.Translate(1, 1) },
		),
	}

	pipeline.RunFilter(surface, entries, pipeline.Frame[int]{})

	assert.Equal(t, []string{"alpha", "translate"}, surface.Ops())
}

func TestEntry_Builders(t *testing.T) {
	p := pipeline.Predicate[int](func(pipeline.Frame[int]) bool { return true })

	e := pipeline.Draws[int]()
	assert.False(t, e.Conditional())

	gated := e.When(domain.EvaluateNone, p, p)
	assert.True(t, gated.Conditional())
	assert.Equal(t, domain.EvaluateNone, gated.Evaluation)
	assert.Len(t, gated.Condition, 2)
	assert.False(t, e.Conditional(), "When returns a copy")

	assert.Equal(t, domain.EvaluateAll, e.If(p).Evaluation)
	assert.Equal(t, domain.EvaluateNone, e.Unless(p).Evaluation)
}
