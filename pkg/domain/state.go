package domain

import "time"

// MaxSafeFrame is the default wrap point of the frame counter (2^53 - 1).
const MaxSafeFrame = 1<<53 - 1

// LoopState is the debug state of the frame scheduler.
type LoopState string

const (
	StateIdle     LoopState = "idle"     // Nothing requested yet; renders only with auto start
	StateRunning  LoopState = "running"  // Free-running
	StateStepping LoopState = "stepping" // Produce one frame, then break
	StateBreak    LoopState = "break"    // Paused by the debug controls
)

// Renders reports whether a tick in this state produces a frame.
func (s LoopState) Renders(autoStart bool) bool {
	switch s {
	case StateRunning, StateStepping:
		return true
	case StateIdle:
		return autoStart
	default:
		return false
	}
}

// FrameState is the scheduler's own bookkeeping, mutated only by the tick.
type FrameState struct {
	FrameCount int       `json:"frame_count"`
	FPS        float64   `json:"fps"`
	LastTick   time.Time `json:"last_tick"`
}

// Advance returns the state after a produced frame at now.
// The counter wraps to 0 once it would exceed maxFrame.
func (s FrameState) Advance(now time.Time, maxFrame int) FrameState {
	next := s
	if !s.LastTick.IsZero() {
		if elapsed := now.Sub(s.LastTick).Seconds(); elapsed > 0 {
			next.FPS = 1 / elapsed
		}
	}
	next.LastTick = now

	if maxFrame <= 0 {
		maxFrame = MaxSafeFrame
	}
	next.FrameCount = s.FrameCount + 1
	if next.FrameCount > maxFrame {
		next.FrameCount = 0
	}
	return next
}
