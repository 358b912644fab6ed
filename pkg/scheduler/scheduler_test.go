package scheduler_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/ports"
	"github.com/aretw0/easel/pkg/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

type recorder struct {
	mu     sync.Mutex
	frames []int
	inits  int
	skips  []domain.SkipReason
	states []domain.StateEvent
	events []string
}

func (r *recorder) hooks() scheduler.Hooks {
	return scheduler.Hooks{
		OnInit: func(ports.Surface, domain.InitData) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.inits++
			r.events = append(r.events, "init")
		},
		OnPreDraw: func(ports.Surface, domain.DrawData) { r.mark("pre") },
		OnDraw: func(_ ports.Surface, d domain.DrawData) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.frames = append(r.frames, d.Frame)
			r.events = append(r.events, "draw")
		},
		OnPostDraw: func(ports.Surface, domain.DrawData) { r.mark("post") },
	}
}

func (r *recorder) lifecycle() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSkip: func(_ context.Context, e *domain.SkipEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.skips = append(r.skips, e.Reason)
		},
		OnStateChange: func(_ context.Context, e *domain.StateEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.states = append(r.states, *e)
		},
	}
}

func (r *recorder) mark(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, name)
}

func newScheduler(t *testing.T, surface ports.Surface, opts ...scheduler.Option) (*scheduler.Scheduler, *recorder, *fakeClock) {
	t.Helper()
	rec := &recorder{}
	clock := newFakeClock()
	base := []scheduler.Option{
		scheduler.WithHooks(rec.hooks()),
		scheduler.WithLifecycleHooks(rec.lifecycle()),
		scheduler.WithClock(clock),
	}
	return scheduler.New(surface, append(base, opts...)...), rec, clock
}

func tick(s *scheduler.Scheduler, clock *fakeClock) bool {
	return s.Tick(context.Background(), clock.Advance(100*time.Millisecond))
}

func TestScheduler_AutoStartRenders(t *testing.T) {
	s, rec, clock := newScheduler(t, memory.NewSurface(10, 10))

	assert.True(t, tick(s, clock))
	assert.True(t, tick(s, clock))

	assert.Equal(t, []int{0, 1}, rec.frames)
	assert.Equal(t, domain.StateIdle, s.Status().State)
}

func TestScheduler_AutoStartDisabled(t *testing.T) {
	surface := memory.NewSurface(10, 10)
	s, rec, clock := newScheduler(t, surface, scheduler.WithAutoStart(false))

	for i := 0; i < 3; i++ {
		assert.False(t, tick(s, clock))
	}
	assert.Empty(t, rec.frames)
	assert.Empty(t, surface.Calls(), "nothing touches the surface")
	assert.Equal(t, []domain.SkipReason{domain.SkipIdle, domain.SkipIdle, domain.SkipIdle}, rec.skips)

	s.Start()
	assert.True(t, tick(s, clock))
	assert.Equal(t, []int{0}, rec.frames)
}

func TestScheduler_StepProducesOneFrame(t *testing.T) {
	s, rec, clock := newScheduler(t, memory.NewSurface(10, 10), scheduler.WithAutoStart(false))

	s.Step()
	assert.Equal(t, domain.StateStepping, s.Status().State)

	assert.True(t, tick(s, clock))
	assert.Equal(t, domain.StateBreak, s.Status().State)
	assert.False(t, tick(s, clock))
	assert.False(t, tick(s, clock))
	assert.Equal(t, []int{0}, rec.frames)

	s.Step()
	assert.True(t, tick(s, clock))
	assert.Equal(t, []int{0, 1}, rec.frames)

	require.Len(t, rec.states, 4)
	assert.Equal(t, domain.StateStepping, rec.states[1].From)
	assert.Equal(t, domain.StateBreak, rec.states[1].To)
}

func TestScheduler_BreakAndResume(t *testing.T) {
	s, rec, clock := newScheduler(t, memory.NewSurface(10, 10))

	s.Start()
	tick(s, clock)
	s.Break()
	assert.False(t, tick(s, clock))
	assert.Equal(t, domain.SkipBreak, rec.skips[len(rec.skips)-1])

	s.Start()
	assert.True(t, tick(s, clock))
	assert.Equal(t, []int{0, 1}, rec.frames)
}

func TestScheduler_FrameWrap(t *testing.T) {
	s, rec, clock := newScheduler(t, memory.NewSurface(10, 10), scheduler.WithMaxFrame(2))

	for i := 0; i < 6; i++ {
		tick(s, clock)
	}
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2}, rec.frames)
}

func TestScheduler_FPS(t *testing.T) {
	s, _, clock := newScheduler(t, memory.NewSurface(10, 10))

	s.Tick(context.Background(), clock.Now())
	assert.Zero(t, s.Status().Frame.FPS, "no fps before a previous tick exists")

	s.Tick(context.Background(), clock.Advance(250*time.Millisecond))
	assert.InDelta(t, 4.0, s.Status().Frame.FPS, 1e-9)
}

func TestScheduler_NotReady(t *testing.T) {
	surface := memory.NewSurface(10, 10)
	surface.SetReady(false)
	s, rec, clock := newScheduler(t, surface)

	assert.False(t, tick(s, clock))
	assert.Equal(t, []domain.SkipReason{domain.SkipNotReady}, rec.skips)

	surface.SetReady(true)
	assert.True(t, tick(s, clock))
	assert.Equal(t, 1, rec.inits)
}

func TestScheduler_NilSurface(t *testing.T) {
	s, rec, clock := newScheduler(t, nil)

	assert.False(t, tick(s, clock))
	assert.Equal(t, []domain.SkipReason{domain.SkipNotReady}, rec.skips)

	s.SetSurface(memory.NewSurface(4, 4))
	assert.True(t, tick(s, clock))
}

func TestScheduler_AdministrativePause(t *testing.T) {
	s, rec, clock := newScheduler(t, memory.NewSurface(10, 10))
	s.Start()

	s.SetPaused(true)
	assert.False(t, tick(s, clock))
	assert.Equal(t, domain.SkipPaused, rec.skips[0])
	assert.Equal(t, domain.StateRunning, s.Status().State, "pause does not touch the debug state")

	s.SetPaused(false)
	assert.True(t, tick(s, clock))
}

func TestScheduler_InitOnceAndAfterReset(t *testing.T) {
	s, rec, clock := newScheduler(t, memory.NewSurface(10, 10))

	tick(s, clock)
	tick(s, clock)
	assert.Equal(t, 1, rec.inits)
	assert.True(t, s.Status().Initialised)

	s.Reset()
	assert.False(t, s.Status().Initialised)
	assert.Equal(t, domain.StateIdle, s.Status().State)

	tick(s, clock)
	assert.Equal(t, 2, rec.inits)
	assert.Equal(t, []int{0, 1, 2}, rec.frames, "reset keeps the counter")
}

func TestScheduler_TickOrder(t *testing.T) {
	surface := memory.NewSurface(10, 10)
	var order []string
	s := scheduler.New(surface,
		scheduler.WithHooks(scheduler.Hooks{
			OnInit:     func(ports.Surface, domain.InitData) { order = append(order, "init") },
			OnPreDraw:  func(ports.Surface, domain.DrawData) { order = append(order, "pre") },
			OnDraw:     func(ports.Surface, domain.DrawData) { order = append(order, "draw") },
			OnPostDraw: func(ports.Surface, domain.DrawData) { order = append(order, "post") },
		}),
		scheduler.WithGrid(func(ports.Surface, domain.DrawData) { order = append(order, "grid") }),
		scheduler.WithEnvironment(func(ports.Surface, domain.DrawData) { order = append(order, "env") }),
	)

	require.True(t, s.Tick(context.Background(), time.Now()))

	assert.Equal(t, []string{"init", "pre", "draw", "post", "grid", "env"}, order)
	ops := surface.Ops()
	require.GreaterOrEqual(t, len(ops), 2)
	assert.Equal(t, []string{"reset_transform", "clear"}, ops[:2], "the surface is cleared before any draw")
}

func TestScheduler_OverlaysIsolated(t *testing.T) {
	surface := memory.NewSurface(10, 10)
	var gridSaw, envSaw memory.GraphicsState
	s := scheduler.New(surface,
		scheduler.WithHooks(scheduler.Hooks{
			OnDraw: func(sf ports.Surface, _ domain.DrawData) {
				sf.Translate(3, 3)
				sf.SetAlpha(0.5)
			},
		}),
		scheduler.WithGrid(func(sf ports.Surface, _ domain.DrawData) {
			gridSaw = surface.State()
			sf.SetAlpha(0.1)
			sf.Translate(9, 9)
		}),
		scheduler.WithEnvironment(func(ports.Surface, domain.DrawData) {
			envSaw = surface.State()
		}),
	)

	s.Tick(context.Background(), time.Now())

	identity := [6]float64{1, 0, 0, 1, 0, 0}
	assert.Equal(t, identity, gridSaw.Transform)
	assert.Equal(t, 1.0, gridSaw.Alpha)
	assert.Equal(t, identity, envSaw.Transform, "the grid's changes do not reach the environment overlay")
	assert.Equal(t, 1.0, envSaw.Alpha)
	assert.Equal(t, 0, surface.Depth())
}

func TestScheduler_DrawData(t *testing.T) {
	var got domain.DrawData
	s := scheduler.New(memory.NewSurface(200, 100),
		scheduler.WithPixelRatio(2),
		scheduler.WithDarkMode(true),
		scheduler.WithHooks(scheduler.Hooks{OnDraw: func(_ ports.Surface, d domain.DrawData) { got = d }}),
	)

	s.Tick(context.Background(), time.Now())

	assert.Equal(t, 200.0, got.Width)
	assert.Equal(t, 50.0, got.ClientHeight)
	assert.Equal(t, 2.0, got.PixelRatio)
	assert.True(t, got.IsDarkMode)
}

func TestScheduler_ResizeAppliedOnNextTick(t *testing.T) {
	surface := memory.NewSurface(10, 10)
	s, _, clock := newScheduler(t, surface, scheduler.WithAutoStart(false))

	require.NoError(t, s.Resize(40, 30))
	assert.True(t, s.Status().PendingResize)
	w, h := surface.Size()
	assert.Equal(t, []int{10, 10}, []int{w, h}, "not applied outside the tick")

	tick(s, clock)
	w, h = surface.Size()
	assert.Equal(t, []int{40, 30}, []int{w, h}, "applied even when no frame renders")
	assert.False(t, s.Status().PendingResize)
	assert.Equal(t, 40.0, s.Status().Draw.Width)

	assert.ErrorIs(t, s.Resize(0, 5), domain.ErrInvalidSize)
}

func TestScheduler_BreakWhen(t *testing.T) {
	s, _, clock := newScheduler(t, memory.NewSurface(10, 10))
	s.Start()
	tick(s, clock)
	tick(s, clock)

	assert.False(t, s.BreakWhen(func(d domain.DrawData) bool { return d.Frame > 5 }))
	assert.Equal(t, domain.StateRunning, s.Status().State)

	assert.True(t, s.BreakWhen(func(d domain.DrawData) bool { return d.Frame == 1 }))
	assert.Equal(t, domain.StateBreak, s.Status().State)

	assert.False(t, s.BreakWhen(nil))
}

func TestScheduler_FrameEvents(t *testing.T) {
	var events []domain.FrameEvent
	s := scheduler.New(memory.NewSurface(10, 10),
		scheduler.WithLifecycleHooks(domain.LifecycleHooks{
			OnFrame: func(_ context.Context, e *domain.FrameEvent) { events = append(events, *e) },
		}),
	)

	s.Tick(context.Background(), time.Now())

	require.Len(t, events, 1)
	assert.Equal(t, domain.EventFrame, events[0].Type)
	assert.Equal(t, 0, events[0].Draw.Frame)
}

func TestScheduler_RunWithManualSource(t *testing.T) {
	src := scheduler.NewManualSource()
	s, rec, _ := newScheduler(t, memory.NewSurface(10, 10), scheduler.WithFrameSource(src))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.True(t, src.Fire(time.Now()))
	require.True(t, src.Fire(time.Now()))
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []int{0, 1}, rec.frames)
	assert.False(t, src.Fire(time.Now()), "cancellation stops the source")
}

func TestTickerSource(t *testing.T) {
	src := scheduler.NewTickerSource(1000)
	defer src.Stop()

	select {
	case <-src.C():
	case <-time.After(time.Second):
		t.Fatal("ticker did not fire")
	}
	src.Stop()
}
