package easel_test

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/pipeline"
	"github.com/aretw0/easel/pkg/ports"
)

// ExampleNew steps a growing circle one frame at a time.
func ExampleNew() {
	surface := memory.NewSurface(40, 40)

	eng, err := easel.New(surface, 0,
		easel.WithAutoStart(false),
		easel.WithDebug(true),
		easel.WithPreRenderTransform(pipeline.Transforms(func(f pipeline.Frame[int]) int {
			return f.Data + 4
		})),
		easel.WithRender(pipeline.Draws(func(s ports.Surface, f pipeline.Frame[int]) {
			s.Arc(f.Draw.Width/2, f.Draw.Height/2, float64(f.Data), 0, 2*math.Pi)
			s.Fill()
		})),
		easel.WithPostRenderTransform(pipeline.Transforms(func(pipeline.Frame[int]) int {
			return 0
		}).If(func(f pipeline.Frame[int]) bool { return float64(f.Data) >= f.Draw.Width/2 })),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctl, err := eng.Debug()
	if err != nil {
		log.Fatal(err)
	}

	for i := 0; i < 6; i++ {
		ctl.Step()
		eng.Tick(context.Background(), time.Unix(int64(i), 0))
		fmt.Printf("frame %d: radius %d\n", eng.Status().Draw.Frame, eng.Data())
	}
	fmt.Println(ctl.BreakWhen(func(d domain.DrawData) bool { return d.Frame == 5 }))
	// Output:
	// frame 0: radius 4
	// frame 1: radius 8
	// frame 2: radius 12
	// frame 3: radius 16
	// frame 4: radius 0
	// frame 5: radius 4
	// true
}
