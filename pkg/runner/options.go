package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/easel/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithFrames stops the run after n produced frames. Zero runs until the
// context is done.
func WithFrames(n int) Option {
	return func(r *Runner) {
		r.Frames = n
	}
}

// WithDuration stops the run after d of wall-clock time.
func WithDuration(d time.Duration) Option {
	return func(r *Runner) {
		r.Duration = d
	}
}

// WithFPS sets the tick rate of the default ticker source.
func WithFPS(fps int) Option {
	return func(r *Runner) {
		r.FPS = fps
	}
}

// WithFrameSource replaces the ticker. The runner stops the source when it
// returns.
func WithFrameSource(source ports.FrameSource) Option {
	return func(r *Runner) {
		r.Source = source
	}
}

// WithClock sets the clock used to timestamp ticks.
func WithClock(clock ports.Clock) Option {
	return func(r *Runner) {
		if clock != nil {
			r.Clock = clock
		}
	}
}

// WithOutput writes the last frame to path as a PNG when the run ends.
func WithOutput(path string) Option {
	return func(r *Runner) {
		r.Output = path
	}
}

// WithSignals makes SIGINT and SIGTERM end the run gracefully.
func WithSignals(enabled bool) Option {
	return func(r *Runner) {
		r.Signals = enabled
	}
}
