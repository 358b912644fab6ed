package easel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/clone"
	"github.com/aretw0/easel/pkg/compositor"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/overlay"
	"github.com/aretw0/easel/pkg/pipeline"
	"github.com/aretw0/easel/pkg/ports"
	"github.com/aretw0/easel/pkg/scheduler"
)

// Engine is the high-level entry point of the library. It owns the
// authoritative data value, wires the pipelines into the scheduler hooks and
// exposes the host-facing controls.
type Engine[T any] struct {
	Name string

	scheduler  *scheduler.Scheduler
	compositor compositor.Compositor[T]
	pre        []pipeline.Entry[T, pipeline.Transform[T]]
	post       []pipeline.Entry[T, pipeline.Transform[T]]
	host       scheduler.Hooks
	clone      clone.Func[T]
	debug      bool

	mu          sync.Mutex
	data        T
	pending     []func(T) T
	resizeDelay time.Duration
	resizeTimer *time.Timer

	// working is the current frame's private copy; only the tick touches it.
	working T
}

// New creates an engine drawing on surface, starting from initial.
// A nil surface is accepted and treated as not ready until SetSurface.
func New[T any](surface ports.Surface, initial T, opts ...Option) (*Engine[T], error) {
	ts := &typedSettings[T]{}
	s := &settings{
		autoStart:  true,
		autoReset:  true,
		pixelRatio: 1,
		typed:      ts,
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(s)
		}
	}
	if err := s.validate(); err != nil {
		return nil, err
	}

	logger := s.logger
	if logger == nil {
		logger = logging.NewNop()
	}
	if s.name != "" {
		logger = logger.With("engine", s.name)
	}

	e := &Engine[T]{
		Name: s.name,
		compositor: compositor.Compositor[T]{
			Background:       compositor.Layer[T]{Filters: ts.background.filters, Draws: ts.background.draws},
			Main:             compositor.Layer[T]{Filters: ts.main.filters, Draws: ts.main.draws},
			Foreground:       compositor.Layer[T]{Filters: ts.foreground.filters, Draws: ts.foreground.draws},
			AutoResetContext: s.autoReset,
			Clone:            ts.clone,
		},
		pre:         ts.pre,
		post:        ts.post,
		host:        s.hooks,
		clone:       clone.Or(ts.clone),
		debug:       s.debug,
		data:        initial,
		resizeDelay: s.resizeDelay,
	}

	resolver := overlay.NewResolver(logger)
	schedOpts := []scheduler.Option{
		scheduler.WithAutoStart(s.autoStart),
		scheduler.WithMaxFrame(s.maxFrame),
		scheduler.WithPixelRatio(s.pixelRatio),
		scheduler.WithDarkMode(s.darkMode),
		scheduler.WithGrid(resolver.Grid(s.grid)),
		scheduler.WithEnvironment(resolver.Environment(s.environment)),
		scheduler.WithLifecycleHooks(s.lifecycle),
		scheduler.WithHooks(scheduler.Hooks{
			OnInit:     s.hooks.OnInit,
			OnPreDraw:  e.preDraw,
			OnDraw:     e.draw,
			OnPostDraw: e.postDraw,
		}),
		scheduler.WithFrameSource(s.source),
		scheduler.WithClock(s.clock),
		scheduler.WithFPS(s.fps),
		scheduler.WithLogger(logger),
	}
	e.scheduler = scheduler.New(surface, schedOpts...)

	logger.Debug("engine created", "auto_start", s.autoStart, "debug", s.debug, "auto_reset_context", s.autoReset)
	return e, nil
}

func (s *settings) validate() error {
	errs := append([]error(nil), s.errs...)
	if s.resizeDelay < 0 {
		errs = append(errs, fmt.Errorf("resize delay %s is negative: %w", s.resizeDelay, domain.ErrInvalidOption))
	}
	if s.maxFrame < 0 {
		errs = append(errs, fmt.Errorf("max frame %d is negative: %w", s.maxFrame, domain.ErrInvalidOption))
	}
	if s.pixelRatio < 0 {
		errs = append(errs, fmt.Errorf("pixel ratio %g is negative: %w", s.pixelRatio, domain.ErrInvalidOption))
	}
	if s.fps < 0 {
		errs = append(errs, fmt.Errorf("fps %d is negative: %w", s.fps, domain.ErrInvalidOption))
	}
	return errors.Join(errs...)
}

// preDraw takes the frame's snapshot: queued input is folded into the
// authoritative value, which is then cloned into the working copy.
func (e *Engine[T]) preDraw(surface ports.Surface, draw domain.DrawData) {
	if e.host.OnPreDraw != nil {
		e.host.OnPreDraw(surface, draw)
	}

	e.mu.Lock()
	pending := e.pending
	e.pending = nil
	data := e.data
	e.mu.Unlock()

	// Host callbacks run unlocked; a panic leaves the engine usable.
	if len(pending) > 0 {
		for _, fn := range pending {
			data = fn(data)
		}
		e.mu.Lock()
		e.data = data
		e.mu.Unlock()
	}

	e.working = pipeline.RunTransform(e.pre, draw, e.clone(data))
}

func (e *Engine[T]) draw(surface ports.Surface, draw domain.DrawData) {
	if e.host.OnDraw != nil {
		e.host.OnDraw(surface, draw)
	}
	e.compositor.Render(surface, draw, e.working)
}

// postDraw runs the post-render transforms and replaces the authoritative
// value with the result.
func (e *Engine[T]) postDraw(surface ports.Surface, draw domain.DrawData) {
	if e.host.OnPostDraw != nil {
		e.host.OnPostDraw(surface, draw)
	}
	result := pipeline.RunTransform(e.post, draw, e.working)

	e.mu.Lock()
	e.data = result
	e.mu.Unlock()

	var zero T
	e.working = zero
}

// Tick runs one frame-loop iteration at now. It reports whether a frame was
// produced.
func (e *Engine[T]) Tick(ctx context.Context, now time.Time) bool {
	return e.scheduler.Tick(ctx, now)
}

// Run drives the frame loop until ctx is done.
func (e *Engine[T]) Run(ctx context.Context) {
	e.scheduler.Run(ctx)
}

// Start switches the loop to free-running. It is always available, so hosts
// built with WithAutoStart(false) can begin rendering without debug controls.
func (e *Engine[T]) Start() {
	e.scheduler.Start()
}

// Debug returns the debug controls, or domain.ErrDebugDisabled.
func (e *Engine[T]) Debug() (scheduler.Controls, error) {
	if !e.debug {
		return nil, domain.ErrDebugDisabled
	}
	return e.scheduler, nil
}

// Status returns a snapshot of the scheduler.
func (e *Engine[T]) Status() scheduler.Status {
	return e.scheduler.Status()
}

// SetPaused pauses or resumes rendering independently of the debug state,
// e.g. while the host is hidden.
func (e *Engine[T]) SetPaused(paused bool) {
	e.scheduler.SetPaused(paused)
}

// SetSurface attaches the drawing surface.
func (e *Engine[T]) SetSurface(surface ports.Surface) {
	e.scheduler.SetSurface(surface)
}

// Surface returns the attached surface.
func (e *Engine[T]) Surface() ports.Surface {
	return e.scheduler.Surface()
}

// Submit queues an update of the engine data. Updates are applied in order at
// the start of the next produced frame, before its snapshot is taken.
func (e *Engine[T]) Submit(fn func(T) T) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.pending = append(e.pending, fn)
	e.mu.Unlock()
}

// Data returns a copy of the authoritative value.
func (e *Engine[T]) Data() T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clone(e.data)
}

// RequestResize asks for a surface resize. With a resize delay configured,
// bursts of requests collapse into the last one once the delay elapses.
func (e *Engine[T]) RequestResize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize %dx%d: %w", width, height, domain.ErrInvalidSize)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.resizeDelay <= 0 {
		return e.scheduler.Resize(width, height)
	}
	if e.resizeTimer != nil {
		e.resizeTimer.Stop()
	}
	e.resizeTimer = time.AfterFunc(e.resizeDelay, func() {
		_ = e.scheduler.Resize(width, height)
	})
	return nil
}

// Close cancels a pending debounced resize.
func (e *Engine[T]) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.resizeTimer != nil {
		e.resizeTimer.Stop()
		e.resizeTimer = nil
	}
}
