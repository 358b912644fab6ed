package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventFrame       EventType = "frame"
	EventSkip        EventType = "skip"
	EventStateChange EventType = "state_change"
)

// SkipReason explains why a tick did not produce a frame.
type SkipReason string

const (
	SkipNotReady SkipReason = "not_ready"
	SkipPaused   SkipReason = "paused"
	SkipBreak    SkipReason = "break"
	SkipIdle     SkipReason = "idle"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// FrameEvent is emitted after a frame has been produced.
type FrameEvent struct {
	EventBase
	Draw     DrawData      `json:"draw"`
	Duration time.Duration `json:"duration"`
	State    LoopState     `json:"state"`
}

// SkipEvent is emitted when a tick is skipped.
type SkipEvent struct {
	EventBase
	Reason SkipReason `json:"reason"`
}

// StateEvent is emitted when the debug state machine changes state.
type StateEvent struct {
	EventBase
	From LoopState `json:"from"`
	To   LoopState `json:"to"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnFrame       func(context.Context, *FrameEvent)
	OnSkip        func(context.Context, *SkipEvent)
	OnStateChange func(context.Context, *StateEvent)
}

// Merge returns hooks that call h first and then other, for each callback.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnFrame:       chain(h.OnFrame, other.OnFrame),
		OnSkip:        chain(h.OnSkip, other.OnSkip),
		OnStateChange: chain(h.OnStateChange, other.OnStateChange),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
