/*
Package easel is a frame-driven rendering engine: a host supplies a drawing
surface and a set of conditional pipelines, and the engine runs them once per
frame with a consistent snapshot of the host's data.

# Concept

Every produced frame flows through the same stages:

	pending input -> clone -> pre-render transforms
	    -> background, main, foreground layers (filters, then draws)
	    -> post-render transforms -> grid and environment overlays

Transforms own mutation: the result of the post-render stage replaces the
engine's authoritative value. Draws and filters receive their own clone of
the frame's data, so nothing a layer does to its copy can be observed by
another layer or by the next frame.

Each pipeline entry can be gated by predicates evaluated under an All, Any
or None policy with short-circuiting (see package pipeline).

# Debugging

The scheduler exposes a small state machine (idle, running, stepping,
break). With WithDebug(true), Engine.Debug returns the controls, which the
HTTP and MCP adapters expose to external tools.

# Usage

	eng, err := easel.New(surface, 0,
		easel.WithPreRenderTransform(pipeline.Transforms(func(f pipeline.Frame[int]) int {
			return f.Data + 1
		})),
		easel.WithRender(pipeline.Draws(func(s ports.Surface, f pipeline.Frame[int]) {
			s.Arc(f.Draw.Width/2, f.Draw.Height/2, float64(f.Data), 0, 2*math.Pi)
			s.Fill()
		})),
		easel.WithGrid(overlay.GridOn{}),
	)
	if err != nil {
		log.Fatal(err)
	}
	eng.Run(ctx)
*/
package easel
