package easel

import (
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/aretw0/easel/pkg/clone"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/overlay"
	"github.com/aretw0/easel/pkg/pipeline"
	"github.com/aretw0/easel/pkg/ports"
	"github.com/aretw0/easel/pkg/scheduler"
)

// Option configures an Engine.
//
// Most options do not depend on the engine's data type. Pipeline options
// (WithRender, WithPreRenderTransform, ...) are generic and infer the data
// type from their entries; using one with an engine of another data type
// makes New fail with domain.ErrInvalidOption.
type Option interface {
	apply(*settings)
}

type optionFunc func(*settings)

func (f optionFunc) apply(s *settings) { f(s) }

type settings struct {
	name        string
	autoStart   bool
	debug       bool
	resizeDelay time.Duration
	maxFrame    int
	autoReset   bool
	pixelRatio  float64
	darkMode    bool
	fps         int
	grid        overlay.GridValue
	environment overlay.EnvironmentValue
	hooks       scheduler.Hooks
	lifecycle   domain.LifecycleHooks
	source      ports.FrameSource
	clock       ports.Clock
	logger      *slog.Logger

	typed any // *typedSettings[T]
	errs  []error
}

type typedSettings[T any] struct {
	pre        []pipeline.Entry[T, pipeline.Transform[T]]
	post       []pipeline.Entry[T, pipeline.Transform[T]]
	background layerSettings[T]
	main       layerSettings[T]
	foreground layerSettings[T]
	clone      clone.Func[T]
}

type layerSettings[T any] struct {
	filters []pipeline.Entry[T, pipeline.Filter[T]]
	draws   []pipeline.Entry[T, pipeline.Draw[T]]
}

func typedOption[T any](name string, f func(*typedSettings[T])) Option {
	return optionFunc(func(s *settings) {
		ts, ok := s.typed.(*typedSettings[T])
		if !ok {
			s.errs = append(s.errs, fmt.Errorf("%s: entries for %s do not match the engine data type: %w",
				name, reflect.TypeOf((*T)(nil)).Elem(), domain.ErrInvalidOption))
			return
		}
		f(ts)
	})
}

// WithName labels the engine in logs and debug transports.
func WithName(name string) Option {
	return optionFunc(func(s *settings) {
		s.name = name
	})
}

// WithAutoStart controls whether frames render before Start or Step (default true).
func WithAutoStart(enabled bool) Option {
	return optionFunc(func(s *settings) {
		s.autoStart = enabled
	})
}

// WithDebug exposes the debug controls through Engine.Debug.
func WithDebug(enabled bool) Option {
	return optionFunc(func(s *settings) {
		s.debug = enabled
	})
}

// WithResizeDelay debounces Engine.RequestResize.
func WithResizeDelay(d time.Duration) Option {
	return optionFunc(func(s *settings) {
		s.resizeDelay = d
	})
}

// WithMaxFrame sets the value after which the frame counter wraps to 0.
func WithMaxFrame(max int) Option {
	return optionFunc(func(s *settings) {
		s.maxFrame = max
	})
}

// WithAutoResetContext isolates the graphics state of the background, main
// and foreground layers from each other (default true).
func WithAutoResetContext(enabled bool) Option {
	return optionFunc(func(s *settings) {
		s.autoReset = enabled
	})
}

// WithPixelRatio sets the device pixel ratio (default 1).
func WithPixelRatio(ratio float64) Option {
	return optionFunc(func(s *settings) {
		s.pixelRatio = ratio
	})
}

// WithDarkMode sets the theme reported to the pipelines.
func WithDarkMode(dark bool) Option {
	return optionFunc(func(s *settings) {
		s.darkMode = dark
	})
}

// WithFPS sets the rate of the default frame source.
func WithFPS(fps int) Option {
	return optionFunc(func(s *settings) {
		s.fps = fps
	})
}

// WithGrid configures the grid overlay.
func WithGrid(v overlay.GridValue) Option {
	return optionFunc(func(s *settings) {
		s.grid = v
	})
}

// WithEnvironment configures the environment overlay.
func WithEnvironment(v overlay.EnvironmentValue) Option {
	return optionFunc(func(s *settings) {
		s.environment = v
	})
}

// WithOnInit registers the hook run on the first frame after creation or reset.
func WithOnInit(fn func(ports.Surface, domain.InitData)) Option {
	return optionFunc(func(s *settings) {
		s.hooks.OnInit = fn
	})
}

// WithOnPreDraw registers a raw hook run before the pre-render transforms.
func WithOnPreDraw(fn func(ports.Surface, domain.DrawData)) Option {
	return optionFunc(func(s *settings) {
		s.hooks.OnPreDraw = fn
	})
}

// WithOnDraw registers a raw hook run before the layers.
func WithOnDraw(fn func(ports.Surface, domain.DrawData)) Option {
	return optionFunc(func(s *settings) {
		s.hooks.OnDraw = fn
	})
}

// WithOnPostDraw registers a raw hook run before the post-render transforms.
func WithOnPostDraw(fn func(ports.Surface, domain.DrawData)) Option {
	return optionFunc(func(s *settings) {
		s.hooks.OnPostDraw = fn
	})
}

// WithLifecycleHooks registers observability hooks. Repeated calls chain.
func WithLifecycleHooks(h domain.LifecycleHooks) Option {
	return optionFunc(func(s *settings) {
		s.lifecycle = s.lifecycle.Merge(h)
	})
}

// WithFrameSource replaces the ticker driving Run.
func WithFrameSource(src ports.FrameSource) Option {
	return optionFunc(func(s *settings) {
		s.source = src
	})
}

// WithClock replaces the clock used for fps measurement.
func WithClock(c ports.Clock) Option {
	return optionFunc(func(s *settings) {
		s.clock = c
	})
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(s *settings) {
		s.logger = logger
	})
}

// WithPreRenderTransform appends entries to the transform stage run before drawing.
func WithPreRenderTransform[T any](entries ...pipeline.Entry[T, pipeline.Transform[T]]) Option {
	return typedOption("pre-render transform", func(ts *typedSettings[T]) {
		ts.pre = append(ts.pre, entries...)
	})
}

// WithPostRenderTransform appends entries to the transform stage run after drawing.
func WithPostRenderTransform[T any](entries ...pipeline.Entry[T, pipeline.Transform[T]]) Option {
	return typedOption("post-render transform", func(ts *typedSettings[T]) {
		ts.post = append(ts.post, entries...)
	})
}

// WithBackground appends draw entries to the background layer.
func WithBackground[T any](entries ...pipeline.Entry[T, pipeline.Draw[T]]) Option {
	return typedOption("background", func(ts *typedSettings[T]) {
		ts.background.draws = append(ts.background.draws, entries...)
	})
}

// WithRender appends draw entries to the main layer.
func WithRender[T any](entries ...pipeline.Entry[T, pipeline.Draw[T]]) Option {
	return typedOption("render", func(ts *typedSettings[T]) {
		ts.main.draws = append(ts.main.draws, entries...)
	})
}

// WithForeground appends draw entries to the foreground layer.
func WithForeground[T any](entries ...pipeline.Entry[T, pipeline.Draw[T]]) Option {
	return typedOption("foreground", func(ts *typedSettings[T]) {
		ts.foreground.draws = append(ts.foreground.draws, entries...)
	})
}

// WithBackgroundFilters appends filter entries to the background layer.
func WithBackgroundFilters[T any](entries ...pipeline.Entry[T, pipeline.Filter[T]]) Option {
	return typedOption("background filters", func(ts *typedSettings[T]) {
		ts.background.filters = append(ts.background.filters, entries...)
	})
}

// WithRenderFilters appends filter entries to the main layer.
func WithRenderFilters[T any](entries ...pipeline.Entry[T, pipeline.Filter[T]]) Option {
	return typedOption("render filters", func(ts *typedSettings[T]) {
		ts.main.filters = append(ts.main.filters, entries...)
	})
}

// WithForegroundFilters appends filter entries to the foreground layer.
func WithForegroundFilters[T any](entries ...pipeline.Entry[T, pipeline.Filter[T]]) Option {
	return typedOption("foreground filters", func(ts *typedSettings[T]) {
		ts.foreground.filters = append(ts.foreground.filters, entries...)
	})
}

// WithCloner replaces the per-frame clone of the engine data.
func WithCloner[T any](fn clone.Func[T]) Option {
	return typedOption("cloner", func(ts *typedSettings[T]) {
		ts.clone = fn
	})
}
