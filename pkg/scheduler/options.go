package scheduler

import (
	"log/slog"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/overlay"
	"github.com/aretw0/easel/pkg/ports"
)

// DefaultFPS is the tick rate of the default frame source.
const DefaultFPS = 60

// Hooks are the host callbacks invoked by a produced frame.
// All of them run synchronously on the tick goroutine; panics are not recovered.
type Hooks struct {
	OnInit     func(ports.Surface, domain.InitData)
	OnPreDraw  func(ports.Surface, domain.DrawData)
	OnDraw     func(ports.Surface, domain.DrawData)
	OnPostDraw func(ports.Surface, domain.DrawData)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithAutoStart controls whether an idle scheduler renders (default true).
func WithAutoStart(enabled bool) Option {
	return func(s *Scheduler) {
		s.autoStart = enabled
	}
}

// WithMaxFrame sets the value after which the frame counter wraps to 0.
// Non-positive values select domain.MaxSafeFrame.
func WithMaxFrame(max int) Option {
	return func(s *Scheduler) {
		s.maxFrame = max
	}
}

// WithPixelRatio sets the device pixel ratio reported in the draw data.
func WithPixelRatio(ratio float64) Option {
	return func(s *Scheduler) {
		s.env.PixelRatio = ratio
	}
}

// WithDarkMode sets the theme reported in the draw data.
func WithDarkMode(dark bool) Option {
	return func(s *Scheduler) {
		s.env.IsDarkMode = dark
	}
}

// WithHooks sets the host callbacks.
func WithHooks(h Hooks) Option {
	return func(s *Scheduler) {
		s.hooks = h
	}
}

// WithGrid sets the grid overlay handler. Nil disables it.
func WithGrid(h overlay.Handler) Option {
	return func(s *Scheduler) {
		s.grid = h
	}
}

// WithEnvironment sets the environment overlay handler. Nil disables it.
func WithEnvironment(h overlay.Handler) Option {
	return func(s *Scheduler) {
		s.environment = h
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls chain.
func WithLifecycleHooks(h domain.LifecycleHooks) Option {
	return func(s *Scheduler) {
		s.lifecycle = s.lifecycle.Merge(h)
	}
}

// WithClock replaces the clock used for fps and frame durations.
func WithClock(c ports.Clock) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithFrameSource replaces the ticker that drives Run.
func WithFrameSource(src ports.FrameSource) Option {
	return func(s *Scheduler) {
		s.source = src
	}
}

// WithFPS sets the rate of the default ticker source.
func WithFPS(fps int) Option {
	return func(s *Scheduler) {
		s.fps = fps
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}
