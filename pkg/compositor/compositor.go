// Package compositor runs the per-frame layers: background, main and
// foreground, each a filter pipeline followed by a draw pipeline, plus the
// isolated utility overlays.
//
// A layer only saves and restores the surface's graphics state when it has
// filters or when isolation is requested; otherwise its state changes leak
// into the next layer. Utility overlays are always isolated, whatever the
// AutoResetContext setting says.
package compositor

import (
	"github.com/aretw0/easel/pkg/clone"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/pipeline"
	"github.com/aretw0/easel/pkg/ports"
)

// Layer groups the filter and draw entries of one compositing layer.
type Layer[T any] struct {
	Filters []pipeline.Entry[T, pipeline.Filter[T]]
	Draws   []pipeline.Entry[T, pipeline.Draw[T]]
}

// RunLayer saves the graphics state if the layer has filters or isolate is
// set, runs the filters, runs the draws and restores iff it saved.
func RunLayer[T any](surface ports.Surface, frame pipeline.Frame[T], layer Layer[T], isolate bool) {
	saved := len(layer.Filters) > 0 || isolate
	if saved {
		surface.Save()
	}

	pipeline.RunFilter(surface, layer.Filters, frame)
	pipeline.RunDraw(surface, layer.Draws, frame)

	if saved {
		surface.Restore()
	}
}

// Compositor runs the three host layers of a frame in fixed order.
type Compositor[T any] struct {
	Background Layer[T]
	Main       Layer[T]
	Foreground Layer[T]

	// AutoResetContext isolates each host layer's graphics state from the next.
	AutoResetContext bool

	// Clone produces each layer's private copy of the frame data.
	// Defaults to clone.Value.
	Clone clone.Func[T]
}

// Render runs background, main and foreground in that order. Every layer
// gets its own clone of data, so a draw action mutating its copy cannot be
// observed by a later layer.
func (c *Compositor[T]) Render(surface ports.Surface, draw domain.DrawData, data T) {
	cp := clone.Or(c.Clone)
	for _, layer := range []Layer[T]{c.Background, c.Main, c.Foreground} {
		RunLayer(surface, pipeline.Frame[T]{Draw: draw, Data: cp(data)}, layer, c.AutoResetContext)
	}
}

// RunIsolated runs the utility overlay h between its own Save and Restore,
// starting from an identity transform and full opacity so state leaked by
// the host layers is not visible to it. A nil handler is a no-op.
func RunIsolated(surface ports.Surface, draw domain.DrawData, h func(ports.Surface, domain.DrawData)) {
	if h == nil {
		return
	}
	surface.Save()
	defer surface.Restore()
	surface.ResetTransform()
	surface.SetAlpha(1)
	h(surface, draw)
}
