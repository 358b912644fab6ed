package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/ports"
	"github.com/aretw0/easel/pkg/scheduler"
)

// ErrExportUnsupported is returned when the surface cannot encode PNG.
var ErrExportUnsupported = errors.New("surface cannot encode PNG")

// Host is the part of an engine the runner drives.
type Host interface {
	Tick(ctx context.Context, now time.Time) bool
	Surface() ports.Surface
}

// PNGEncoder is implemented by surfaces that can export their pixels.
type PNGEncoder interface {
	EncodePNG(w io.Writer) error
}

// Runner ticks a host from a frame source until a budget is spent or the
// context is done.
type Runner struct {
	Host     Host
	Logger   *slog.Logger
	Frames   int
	Duration time.Duration
	FPS      int
	Source   ports.FrameSource
	Clock    ports.Clock
	Output   string
	Signals  bool
}

// Result summarises a run.
type Result struct {
	Frames  int           `json:"frames"`
	Skipped int           `json:"skipped"`
	Elapsed time.Duration `json:"elapsed"`
	Output  string        `json:"output,omitempty"`
	// Interrupted is set when a signal or the parent context ended the run.
	Interrupted bool `json:"interrupted"`
}

// NewRunner creates a Runner for host.
func NewRunner(host Host, opts ...Option) *Runner {
	r := &Runner{
		Host:   host,
		Logger: logging.NewNop(),
		FPS:    scheduler.DefaultFPS,
		Clock:  ports.SystemClock{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the loop. The budget (Frames, Duration) ends the run
// normally; cancellation of ctx or a signal ends it as interrupted. In both
// cases the last frame is exported if Output is set.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.Host == nil {
		return Result{}, errors.New("runner: no host")
	}

	if r.Signals {
		signals := NewSignalManager(ctx)
		defer signals.Stop()
		ctx = signals.Context()
	}

	var budget <-chan time.Time
	if r.Duration > 0 {
		timer := time.NewTimer(r.Duration)
		defer timer.Stop()
		budget = timer.C
	}

	source := r.Source
	if source == nil {
		source = scheduler.NewTickerSource(r.FPS)
	}
	defer source.Stop()

	started := time.Now()
	var res Result
	r.Logger.Info("run started", "frames", r.Frames, "duration", r.Duration)

loop:
	for {
		select {
		case <-ctx.Done():
			res.Interrupted = true
			break loop
		case <-budget:
			break loop
		case _, ok := <-source.C():
			if !ok {
				break loop
			}
			if r.Host.Tick(ctx, r.Clock.Now()) {
				res.Frames++
			} else {
				res.Skipped++
			}
			if r.Frames > 0 && res.Frames >= r.Frames {
				break loop
			}
		}
	}
	res.Elapsed = time.Since(started)
	r.Logger.Info("run finished",
		"frames", res.Frames,
		"skipped", res.Skipped,
		"elapsed", res.Elapsed,
		"interrupted", res.Interrupted,
	)

	if r.Output != "" {
		if err := ExportPNG(r.Host.Surface(), r.Output); err != nil {
			return res, err
		}
		res.Output = r.Output
		r.Logger.Info("frame exported", "path", r.Output)
	}
	return res, nil
}

// ExportPNG writes the pixels of surface to path.
func ExportPNG(surface ports.Surface, path string) error {
	enc, ok := surface.(PNGEncoder)
	if !ok {
		return fmt.Errorf("export %s: %w", path, ErrExportUnsupported)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := enc.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	return f.Close()
}
