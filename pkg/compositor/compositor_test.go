package compositor_test

import (
	"testing"

	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/compositor"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/pipeline"
	"github.com/aretw0/easel/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moveDraw() pipeline.Draw[[]int] {
	return func(s ports.Surface, _ pipeline.Frame[[]int]) { s.MoveTo(0, 0) }
}

func TestRunLayer_NoFiltersNoSave(t *testing.T) {
	s := memory.NewSurface(100, 100)
	layer := compositor.Layer[[]int]{
		Draws: []pipeline.Entry[[]int, pipeline.Draw[[]int]]{pipeline.Draws(moveDraw())},
	}

	compositor.RunLayer(s, pipeline.Frame[[]int]{}, layer, false)

	assert.Zero(t, s.Count("save"))
	assert.Zero(t, s.Count("restore"))
	assert.Equal(t, 1, s.Count("move_to"))
}

func TestRunLayer_FiltersSaveOnceAroundEverything(t *testing.T) {
	s := memory.NewSurface(100, 100)
	layer := compositor.Layer[[]int]{
		Filters: []pipeline.Entry[[]int, pipeline.Filter[[]int]]{
			pipeline.Filters[[]int](
				func(s ports.Surface, _ pipeline.Frame[[]int]) { s.SetAlpha(0.5) },
				func(s ports.Surface, _ pipeline.Frame[[]int]) { s.Translate(2, 2) },
			),
		},
		Draws: []pipeline.Entry[[]int, pipeline.Draw[[]int]]{
			pipeline.Draws(moveDraw(), moveDraw()),
		},
	}

	compositor.RunLayer(s, pipeline.Frame[[]int]{}, layer, false)

	assert.Equal(t, []string{"save", "alpha", "translate", "move_to", "move_to", "restore"}, s.Ops())
	assert.Equal(t, 1.0, s.State().Alpha, "filter state does not survive the layer")
}

func TestRunLayer_GatedOutFilterStillSaves(t *testing.T) {
	s := memory.NewSurface(10, 10)
	never := pipeline.Predicate[[]int](func(pipeline.Frame[[]int]) bool { return false })
	layer := compositor.Layer[[]int]{
		Filters: []pipeline.Entry[[]int, pipeline.Filter[[]int]]{
			pipeline.Filters[[]int](func(s ports.Surface, _ pipeline.Frame[[]int]) { s.SetAlpha(0) }).If(never),
		},
	}

	compositor.RunLayer(s, pipeline.Frame[[]int]{}, layer, false)

	assert.Equal(t, []string{"save", "restore"}, s.Ops())
}

func TestRunLayer_Isolate(t *testing.T) {
	s := memory.NewSurface(10, 10)
	layer := compositor.Layer[[]int]{
		Draws: []pipeline.Entry[[]int, pipeline.Draw[[]int]]{
			pipeline.Draws[[]int](func(s ports.Surface, _ pipeline.Frame[[]int]) { s.SetLineWidth(9) }),
		},
	}

	compositor.RunLayer(s, pipeline.Frame[[]int]{}, layer, true)

	assert.Equal(t, []string{"save", "line_width", "restore"}, s.Ops())
	assert.Equal(t, 1.0, s.State().LineWidth)
}

func TestCompositor_LeakyWithoutAutoReset(t *testing.T) {
	s := memory.NewSurface(10, 10)
	var seenWidth float64
	c := compositor.Compositor[[]int]{
		Background: compositor.Layer[[]int]{Draws: []pipeline.Entry[[]int, pipeline.Draw[[]int]]{
			pipeline.Draws[[]int](func(s ports.Surface, _ pipeline.Frame[[]int]) { s.SetLineWidth(4) }),
		}},
		Main: compositor.Layer[[]int]{Draws: []pipeline.Entry[[]int, pipeline.Draw[[]int]]{
			pipeline.Draws[[]int](func(surface ports.Surface, _ pipeline.Frame[[]int]) {
				seenWidth = s.State().LineWidth
			}),
		}},
	}

	c.Render(s, domain.DrawData{}, nil)
	assert.Equal(t, 4.0, seenWidth, "background state leaks into main")

	s = memory.NewSurface(10, 10)
	c.AutoResetContext = true
	c.Render(s, domain.DrawData{}, nil)
	assert.Equal(t, 1.0, seenWidth, "auto reset isolates the layers")
	assert.Equal(t, 3, s.Count("save"))
	assert.Equal(t, 3, s.Count("restore"))
}

func TestCompositor_OrderAndDataIsolation(t *testing.T) {
	s := memory.NewSurface(10, 10)
	var order []string
	var mainSaw []int

	c := compositor.Compositor[[]int]{
		Background: compositor.Layer[[]int]{Draws: []pipeline.Entry[[]int, pipeline.Draw[[]int]]{
			pipeline.Draws[[]int](func(_ ports.Surface, f pipeline.Frame[[]int]) {
				order = append(order, "background")
				f.Data[0] = 99
			}),
		}},
		Main: compositor.Layer[[]int]{Draws: []pipeline.Entry[[]int, pipeline.Draw[[]int]]{
			pipeline.Draws[[]int](func(_ ports.Surface, f pipeline.Frame[[]int]) {
				order = append(order, "main")
				mainSaw = append([]int(nil), f.Data...)
			}),
		}},
		Foreground: compositor.Layer[[]int]{Draws: []pipeline.Entry[[]int, pipeline.Draw[[]int]]{
			pipeline.Draws[[]int](func(_ ports.Surface, f pipeline.Frame[[]int]) {
				order = append(order, "foreground")
			}),
		}},
	}

	data := []int{1, 2, 3}
	c.Render(s, domain.DrawData{}, data)

	assert.Equal(t, []string{"background", "main", "foreground"}, order)
	assert.Equal(t, []int{1, 2, 3}, mainSaw, "main must not observe the background's mutation")
	assert.Equal(t, []int{1, 2, 3}, data, "the caller's copy is untouched")
}

func TestCompositor_CustomClone(t *testing.T) {
	s := memory.NewSurface(10, 10)
	clones := 0
	c := compositor.Compositor[[]int]{
		Clone: func(v []int) []int {
			clones++
			return append([]int(nil), v...)
		},
	}

	c.Render(s, domain.DrawData{}, []int{1})
	assert.Equal(t, 3, clones, "one clone per layer")
}

func TestRunIsolated(t *testing.T) {
	s := memory.NewSurface(10, 10)
	s.SetLineWidth(7)
	s.Reset()

	var widthInside float64
	compositor.RunIsolated(s, domain.DrawData{}, func(surface ports.Surface, _ domain.DrawData) {
		surface.SetLineWidth(2)
		widthInside = s.State().LineWidth
	})

	require.Equal(t, []string{"save", "reset_transform", "alpha", "line_width", "restore"}, s.Ops())
	assert.Equal(t, 2.0, widthInside)
	assert.Equal(t, 7.0, s.State().LineWidth)

	s.Reset()
	compositor.RunIsolated(s, domain.DrawData{}, nil)
	assert.Empty(t, s.Ops())
}

func TestRunIsolated_HidesLeakedState(t *testing.T) {
	s := memory.NewSurface(10, 10)
	s.Translate(5, 5)
	s.SetAlpha(0.2)

	var inside memory.GraphicsState
	compositor.RunIsolated(s, domain.DrawData{}, func(ports.Surface, domain.DrawData) {
		inside = s.State()
	})

	assert.Equal(t, [6]float64{1, 0, 0, 1, 0, 0}, inside.Transform)
	assert.Equal(t, 1.0, inside.Alpha)
	assert.Equal(t, 0.2, s.State().Alpha, "restored afterwards")
}
