package scene

import (
	"math"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/pkg/pipeline"
	"github.com/aretw0/easel/pkg/ports"
)

// Pulse is the data of the pulse scene.
type Pulse struct {
	Radius float64
	Step   float64
}

func init() {
	register(Scene{
		Name:        "pulse",
		Description: "a circle growing by one step per frame, reset once it would leave the surface",
		New:         NewPulse,
	})
}

// PulseTransforms returns the pre-render (grow) and post-render (reset at
// the bound) transforms of the pulse scene.
func PulseTransforms() (grow, reset pipeline.Entry[Pulse, pipeline.Transform[Pulse]]) {
	grow = pipeline.Transforms(func(f pipeline.Frame[Pulse]) Pulse {
		p := f.Data
		p.Radius += p.Step
		return p
	})
	outOfBounds := pipeline.Predicate[Pulse](func(f pipeline.Frame[Pulse]) bool {
		bound := math.Min(f.Draw.Width, f.Draw.Height) / 2
		return f.Data.Radius+f.Data.Step > bound
	})
	reset = pipeline.Transforms(func(f pipeline.Frame[Pulse]) Pulse {
		p := f.Data
		p.Radius = 0
		return p
	}).If(outOfBounds)
	return grow, reset
}

// NewPulse builds the pulse scene on surface.
func NewPulse(surface ports.Surface, opts ...easel.Option) (easel.Host, error) {
	grow, reset := PulseTransforms()

	all := append([]easel.Option{
		easel.WithPreRenderTransform(grow),
		easel.WithBackground(pipeline.Draws(func(s ports.Surface, f pipeline.Frame[Pulse]) {
			s.SetFillColor(background(f.Draw.IsDarkMode))
			s.Rect(0, 0, f.Draw.Width, f.Draw.Height)
			s.Fill()
		})),
		easel.WithRender(pipeline.Draws(func(s ports.Surface, f pipeline.Frame[Pulse]) {
			s.SetFillColor("#e4572e")
			s.MoveTo(f.Draw.Width/2+f.Data.Radius, f.Draw.Height/2)
			s.Arc(f.Draw.Width/2, f.Draw.Height/2, f.Data.Radius, 0, 2*math.Pi)
			s.Fill()
		})),
		easel.WithPostRenderTransform(reset),
	}, opts...)

	eng, err := easel.New(surface, Pulse{Step: 2}, all...)
	if err != nil {
		return nil, err
	}
	return eng, nil
}
