package scene

import (
	"math"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/pipeline"
	"github.com/aretw0/easel/pkg/ports"
)

// Orbit is the data of the orbit scene.
type Orbit struct {
	Angle float64
	Speed float64
	Trail []Point
}

// Point is a position on the surface.
type Point struct {
	X, Y float64
}

const trailLength = 12

func init() {
	register(Scene{
		Name:        "orbit",
		Description: "a dot circling the centre, coloured by frame parity, with a fading trail",
		New:         NewOrbit,
	})
}

func orbitPosition(o Orbit, d domain.DrawData) Point {
	r := math.Min(d.Width, d.Height) / 3
	return Point{
		X: d.Width/2 + r*math.Cos(o.Angle),
		Y: d.Height/2 + r*math.Sin(o.Angle),
	}
}

// NewOrbit builds the orbit scene on surface.
func NewOrbit(surface ports.Surface, opts ...easel.Option) (easel.Host, error) {
	even := pipeline.Predicate[Orbit](func(f pipeline.Frame[Orbit]) bool { return f.Draw.Frame%2 == 0 })
	dot := func(color string) pipeline.Draw[Orbit] {
		return func(s ports.Surface, f pipeline.Frame[Orbit]) {
			p := orbitPosition(f.Data, f.Draw)
			s.SetFillColor(color)
			s.MoveTo(p.X+6, p.Y)
			s.Arc(p.X, p.Y, 6, 0, 2*math.Pi)
			s.Fill()
		}
	}

	all := append([]easel.Option{
		easel.WithPreRenderTransform(pipeline.Transforms(func(f pipeline.Frame[Orbit]) Orbit {
			o := f.Data
			o.Angle = math.Mod(o.Angle+o.Speed, 2*math.Pi)
			return o
		})),
		easel.WithBackground(pipeline.Draws(func(s ports.Surface, f pipeline.Frame[Orbit]) {
			s.SetFillColor(background(f.Draw.IsDarkMode))
			s.Rect(0, 0, f.Draw.Width, f.Draw.Height)
			s.Fill()
		})),
		easel.WithRenderFilters(pipeline.Filters(func(s ports.Surface, _ pipeline.Frame[Orbit]) {
			s.SetAlpha(0.35)
		})),
		easel.WithRender(pipeline.Draws(func(s ports.Surface, f pipeline.Frame[Orbit]) {
			s.SetFillColor("#4c6ef5")
			for _, p := range f.Data.Trail {
				s.MoveTo(p.X+3, p.Y)
				s.Arc(p.X, p.Y, 3, 0, 2*math.Pi)
			}
			s.Fill()
		})),
		easel.WithForeground(
			pipeline.Draws(dot("#e4572e")).If(even),
			pipeline.Draws(dot("#2fbf71")).Unless(even),
		),
		easel.WithPostRenderTransform(pipeline.Transforms(func(f pipeline.Frame[Orbit]) Orbit {
			o := f.Data
			o.Trail = append(o.Trail, orbitPosition(o, f.Draw))
			if len(o.Trail) > trailLength {
				o.Trail = o.Trail[len(o.Trail)-trailLength:]
			}
			return o
		})),
	}, opts...)

	eng, err := easel.New(surface, Orbit{Speed: math.Pi / 30}, all...)
	if err != nil {
		return nil, err
	}
	return eng, nil
}
