package easel

import (
	"context"
	"time"

	"github.com/aretw0/easel/pkg/ports"
	"github.com/aretw0/easel/pkg/scheduler"
)

// Host is the data-type independent view of an Engine used by runners and
// debug transports.
type Host interface {
	Tick(ctx context.Context, now time.Time) bool
	Run(ctx context.Context)
	Start()
	Debug() (scheduler.Controls, error)
	Status() scheduler.Status
	SetPaused(paused bool)
	Surface() ports.Surface
	RequestResize(width, height int) error
	Close()
}

var _ Host = (*Engine[struct{}])(nil)
