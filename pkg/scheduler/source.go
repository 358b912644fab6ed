package scheduler

import (
	"sync"
	"time"

	"github.com/aretw0/easel/pkg/ports"
)

// TickerSource requests a tick at a fixed rate.
type TickerSource struct {
	ticker *time.Ticker
	once   sync.Once
}

var _ ports.FrameSource = (*TickerSource)(nil)

// NewTickerSource creates a source ticking fps times per second.
// Non-positive rates select DefaultFPS.
func NewTickerSource(fps int) *TickerSource {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &TickerSource{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

func (t *TickerSource) C() <-chan time.Time { return t.ticker.C }

func (t *TickerSource) Stop() {
	t.once.Do(t.ticker.Stop)
}

// ManualSource delivers ticks only when Fire is called.
// It drives the loop deterministically in tests and headless runs.
type ManualSource struct {
	ch   chan time.Time
	done chan struct{}
	once sync.Once
}

var _ ports.FrameSource = (*ManualSource)(nil)

// NewManualSource creates an idle manual source.
func NewManualSource() *ManualSource {
	return &ManualSource{
		ch:   make(chan time.Time),
		done: make(chan struct{}),
	}
}

// Fire requests one tick and blocks until the loop accepts it.
// It returns false if the source was stopped first.
func (m *ManualSource) Fire(at time.Time) bool {
	select {
	case m.ch <- at:
		return true
	case <-m.done:
		return false
	}
}

func (m *ManualSource) C() <-chan time.Time { return m.ch }

func (m *ManualSource) Stop() {
	m.once.Do(func() { close(m.done) })
}
