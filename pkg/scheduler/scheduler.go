// Package scheduler drives the frame loop.
//
// A Scheduler owns the frame counter, the measured fps and a small debug
// state machine:
//
//	Idle -> Running <-> Break
//	          Step -> Stepping -> Break (after one frame)
//
// Tick is the body of one loop iteration and is the only code that touches
// the surface. Control methods (Start, Break, Step, Reset, Resize, ...) may be
// called from any goroutine; they only change control state or queue
// requests that the next Tick picks up.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/compositor"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/overlay"
	"github.com/aretw0/easel/pkg/ports"
)

// Controls is the debug control object exposed to hosts and transports.
type Controls interface {
	Start()
	Break()
	Pause()
	BreakWhen(pred func(domain.DrawData) bool) bool
	Step()
	Reset()
	Resize(width, height int) error
	Status() Status
}

// Status is a point-in-time view of the scheduler.
type Status struct {
	State         domain.LoopState  `json:"state"`
	AutoStart     bool              `json:"auto_start"`
	Initialised   bool              `json:"initialised"`
	Paused        bool              `json:"paused"`
	Frame         domain.FrameState `json:"frame"`
	Draw          domain.DrawData   `json:"draw"`
	PendingResize bool              `json:"pending_resize"`
}

type size struct {
	width, height int
}

// Scheduler runs ticks against a surface.
type Scheduler struct {
	// configuration, immutable after New
	autoStart   bool
	maxFrame    int
	env         domain.InitData
	hooks       Hooks
	grid        overlay.Handler
	environment overlay.Handler
	lifecycle   domain.LifecycleHooks
	clock       ports.Clock
	source      ports.FrameSource
	fps         int
	logger      *slog.Logger

	tickMu sync.Mutex // serialises Tick

	mu            sync.Mutex
	surface       ports.Surface
	state         domain.LoopState
	initialised   bool
	paused        bool
	pendingResize *size
	frame         domain.FrameState
	draw          domain.DrawData
}

var _ Controls = (*Scheduler)(nil)

// New creates a scheduler drawing on surface. A nil surface is allowed and
// is treated as "not ready" until SetSurface attaches one.
func New(surface ports.Surface, opts ...Option) *Scheduler {
	s := &Scheduler{
		autoStart: true,
		maxFrame:  domain.MaxSafeFrame,
		env:       domain.InitData{PixelRatio: 1},
		clock:     ports.SystemClock{},
		fps:       DefaultFPS,
		logger:    logging.NewNop(),
		surface:   surface,
		state:     domain.StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxFrame <= 0 {
		s.maxFrame = domain.MaxSafeFrame
	}
	if s.env.PixelRatio <= 0 {
		s.env.PixelRatio = 1
	}
	if s.fps <= 0 {
		s.fps = DefaultFPS
	}
	if surface != nil {
		w, h := surface.Size()
		s.draw = domain.NewDrawData(s.frame, w, h, s.env)
	}
	return s
}

// SetSurface attaches (or detaches, with nil) the drawing surface.
func (s *Scheduler) SetSurface(surface ports.Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface = surface
}

// Surface returns the attached surface.
func (s *Scheduler) Surface() ports.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface
}

// SetPaused sets the administrative pause (e.g. host hidden), independent of
// the debug state.
func (s *Scheduler) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
}

// Start switches to free-running.
func (s *Scheduler) Start() {
	s.transition(domain.StateRunning)
}

// Break stops producing frames until Start or Step.
func (s *Scheduler) Break() {
	s.transition(domain.StateBreak)
}

// Pause is an alias of Break.
func (s *Scheduler) Pause() {
	s.Break()
}

// Step produces exactly one frame on the next tick, then breaks.
func (s *Scheduler) Step() {
	s.transition(domain.StateStepping)
}

// BreakWhen evaluates pred once against the current draw data and breaks if
// it holds. It reports whether it broke.
func (s *Scheduler) BreakWhen(pred func(domain.DrawData) bool) bool {
	if pred == nil {
		return false
	}
	s.mu.Lock()
	draw := s.draw
	s.mu.Unlock()

	if !pred(draw) {
		return false
	}
	s.Break()
	return true
}

// Reset returns to Idle and clears the init latch, so the next produced
// frame runs the init hook again. The frame counter is kept.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	from := s.state
	s.state = domain.StateIdle
	s.initialised = false
	s.mu.Unlock()

	s.logger.Info("scheduler reset")
	s.emitState(from, domain.StateIdle)
}

// Resize queues a surface resize applied at the start of the next tick.
// The latest request wins.
func (s *Scheduler) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize %dx%d: %w", width, height, domain.ErrInvalidSize)
	}
	s.mu.Lock()
	s.pendingResize = &size{width: width, height: height}
	s.mu.Unlock()
	s.logger.Debug("resize queued", "width", width, "height", height)
	return nil
}

// Status returns a snapshot of the scheduler.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		State:         s.state,
		AutoStart:     s.autoStart,
		Initialised:   s.initialised,
		Paused:        s.paused,
		Frame:         s.frame,
		Draw:          s.draw,
		PendingResize: s.pendingResize != nil,
	}
}

func (s *Scheduler) transition(to domain.LoopState) {
	s.mu.Lock()
	from := s.state
	s.state = to
	s.mu.Unlock()

	if from != to {
		s.logger.Info("loop state changed", "from", from, "to", to)
	}
	s.emitState(from, to)
}

// Run drives Tick from the frame source until ctx is done. Cancellation
// stops the source; a tick in progress always completes.
func (s *Scheduler) Run(ctx context.Context) {
	source := s.source
	if source == nil {
		source = NewTickerSource(s.fps)
	}
	defer source.Stop()

	s.logger.Info("frame loop started", "fps", s.fps)
	defer s.logger.Info("frame loop stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-source.C():
			if !ok {
				return
			}
			s.Tick(ctx, s.clock.Now())
		}
	}
}

// Tick runs one loop iteration at now and reports whether a frame was
// produced.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) bool {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	s.mu.Lock()
	surface := s.surface
	state := s.state
	paused := s.paused
	needsInit := !s.initialised
	frame := s.frame
	resize := s.pendingResize
	if ports.IsReady(surface) {
		s.pendingResize = nil
	}
	s.mu.Unlock()

	// 1. readiness, pause and debug state
	if !ports.IsReady(surface) {
		s.skip(ctx, now, domain.SkipNotReady)
		return false
	}
	if resize != nil {
		s.applyResize(surface, *resize)
	}
	if paused {
		s.skip(ctx, now, domain.SkipPaused)
		return false
	}
	if !state.Renders(s.autoStart) {
		reason := domain.SkipBreak
		if state == domain.StateIdle {
			reason = domain.SkipIdle
		}
		s.skip(ctx, now, reason)
		return false
	}

	start := s.clock.Now()
	width, height := surface.Size()

	// 2. first frame since creation or reset
	if needsInit {
		s.logger.Debug("initialising", "width", width, "height", height)
		if s.hooks.OnInit != nil {
			s.hooks.OnInit(surface, domain.InitData{
				Width:      float64(width),
				Height:     float64(height),
				PixelRatio: s.env.PixelRatio,
				IsDarkMode: s.env.IsDarkMode,
			})
		}
		s.mu.Lock()
		s.initialised = true
		s.mu.Unlock()
	}

	// 3. clear
	surface.ResetTransform()
	surface.Clear()

	// 4. draw data
	draw := domain.NewDrawData(frame, width, height, s.env)

	// 5. host hooks
	if s.hooks.OnPreDraw != nil {
		s.hooks.OnPreDraw(surface, draw)
	}
	if s.hooks.OnDraw != nil {
		s.hooks.OnDraw(surface, draw)
	}
	if s.hooks.OnPostDraw != nil {
		s.hooks.OnPostDraw(surface, draw)
	}

	// 6, 7. utility overlays
	compositor.RunIsolated(surface, draw, s.grid)
	compositor.RunIsolated(surface, draw, s.environment)

	// 8. counters
	next := frame.Advance(now, s.maxFrame)

	s.mu.Lock()
	s.frame = next
	s.draw = draw
	from := s.state
	if from == domain.StateStepping {
		s.state = domain.StateBreak
	}
	to := s.state
	s.mu.Unlock()

	duration := s.clock.Now().Sub(start)
	s.logger.Debug("frame", "frame", draw.Frame, "fps", next.FPS, "duration", duration)

	if s.lifecycle.OnFrame != nil {
		s.lifecycle.OnFrame(ctx, &domain.FrameEvent{
			EventBase: domain.EventBase{Timestamp: now, Type: domain.EventFrame},
			Draw:      draw,
			Duration:  duration,
			State:     state,
		})
	}
	if from != to {
		s.logger.Info("loop state changed", "from", from, "to", to)
		s.emitState(from, to)
	}

	// 9. the next tick is requested by the frame source.
	return true
}

func (s *Scheduler) applyResize(surface ports.Surface, r size) {
	if err := surface.Resize(r.width, r.height); err != nil {
		s.logger.Warn("resize failed", "width", r.width, "height", r.height, "error", err)
		return
	}
	s.mu.Lock()
	s.draw = domain.NewDrawData(s.frame, r.width, r.height, s.env)
	s.mu.Unlock()
	s.logger.Debug("surface resized", "width", r.width, "height", r.height)
}

func (s *Scheduler) skip(ctx context.Context, now time.Time, reason domain.SkipReason) {
	s.logger.Debug("tick skipped", "reason", reason)
	if s.lifecycle.OnSkip != nil {
		s.lifecycle.OnSkip(ctx, &domain.SkipEvent{
			EventBase: domain.EventBase{Timestamp: now, Type: domain.EventSkip},
			Reason:    reason,
		})
	}
}

func (s *Scheduler) emitState(from, to domain.LoopState) {
	if s.lifecycle.OnStateChange == nil || from == to {
		return
	}
	s.lifecycle.OnStateChange(context.Background(), &domain.StateEvent{
		EventBase: domain.EventBase{Timestamp: s.clock.Now(), Type: domain.EventStateChange},
		From:      from,
		To:        to,
	})
}
