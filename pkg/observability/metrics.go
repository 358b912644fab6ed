package observability

import (
	"context"
	"fmt"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "easel"

var loopStates = []domain.LoopState{
	domain.StateIdle,
	domain.StateRunning,
	domain.StateStepping,
	domain.StateBreak,
}

// Metrics holds the frame loop collectors.
type Metrics struct {
	Frames        prometheus.Counter
	Skips         *prometheus.CounterVec
	FPS           prometheus.Gauge
	FrameDuration prometheus.Histogram
	FrameNumber   prometheus.Gauge
	State         *prometheus.GaugeVec
	Transitions   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg registers nothing, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "frames_total",
			Help:      "Total number of produced frames",
		}),
		Skips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "skipped_ticks_total",
			Help:      "Total number of ticks that did not produce a frame",
		}, []string{"reason"}),
		FPS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "fps",
			Help:      "Frames per second measured between the last two produced frames",
		}),
		FrameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "frame_duration_seconds",
			Help:      "Time spent producing a frame",
			Buckets:   []float64{0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066, 0.1, 0.25},
		}),
		FrameNumber: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "frame_number",
			Help:      "Frame counter of the last produced frame",
		}),
		State: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "loop_state",
			Help:      "Current debug state of the frame loop (1 for the active state)",
		}, []string{"state"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "state_transitions_total",
			Help:      "Total number of debug state transitions",
		}, []string{"from", "to"}),
	}
	m.setState(domain.StateIdle)

	if reg == nil {
		return m, nil
	}
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Frames, m.Skips, m.FPS, m.FrameDuration, m.FrameNumber, m.State, m.Transitions}
}

func (m *Metrics) setState(active domain.LoopState) {
	for _, s := range loopStates {
		v := 0.0
		if s == active {
			v = 1
		}
		m.State.WithLabelValues(string(s)).Set(v)
	}
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFrame: func(_ context.Context, e *domain.FrameEvent) {
			m.Frames.Inc()
			m.FPS.Set(e.Draw.FPS)
			m.FrameNumber.Set(float64(e.Draw.Frame))
			m.FrameDuration.Observe(e.Duration.Seconds())
		},
		OnSkip: func(_ context.Context, e *domain.SkipEvent) {
			m.Skips.WithLabelValues(string(e.Reason)).Inc()
		},
		OnStateChange: func(_ context.Context, e *domain.StateEvent) {
			m.Transitions.WithLabelValues(string(e.From), string(e.To)).Inc()
			m.setState(e.To)
		},
	}
}
