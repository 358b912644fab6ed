package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/pkg/adapters/canvas"
	"github.com/aretw0/easel/pkg/adapters/redis"
	"github.com/aretw0/easel/pkg/config"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/observability"
	"github.com/aretw0/easel/pkg/scene"
	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"
)

// Options are the flags shared by every command.
type Options struct {
	ConfigPath string
	Scene      string
	Debug      bool
	Quiet      bool
}

// session is a configured engine on a canvas surface, plus the optional
// metrics registry and redis publisher wired to its lifecycle hooks.
type session struct {
	cfg       config.Config
	logger    *slog.Logger
	surface   *canvas.Surface
	host      easel.Host
	registry  *prometheus.Registry
	publisher *redis.Publisher
	client    *backend.Client
}

// loadConfig reads path, or returns the defaults when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}
	return config.Load(path)
}

func resolveConfig(opts Options) (config.Config, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if opts.Scene != "" {
		cfg.Scene = opts.Scene
	}
	return cfg, nil
}

// newSession builds the host described by opts. withMetrics registers
// prometheus collectors on a fresh registry.
func newSession(opts Options, withMetrics bool) (*session, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}
	sc, err := scene.Lookup(cfg.Scene)
	if err != nil {
		return nil, err
	}

	logger := createLogger(opts.Debug, opts.Quiet).With("scene", sc.Name)
	s := &session{cfg: cfg, logger: logger}

	hooks := observability.LogHooks(logger, cfg.FPS)
	if withMetrics && cfg.Server.Metrics {
		s.registry = prometheus.NewRegistry()
		m, err := observability.NewMetrics(s.registry)
		if err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		hooks = hooks.Merge(m.Hooks())
	}
	if cfg.Redis.Addr != "" {
		s.client = backend.NewClient(&backend.Options{Addr: cfg.Redis.Addr})
		s.publisher = redis.NewPublisher(s.client,
			redis.WithChannel(cfg.Redis.Channel),
			redis.WithEvery(cfg.Redis.Every),
			redis.WithLogger(logger),
		)
		hooks = hooks.Merge(s.publisher.Hooks())
	}

	engineOpts, err := cfg.Options()
	if err != nil {
		s.Close()
		return nil, err
	}
	engineOpts = append(engineOpts,
		easel.WithLogger(logger),
		easel.WithLifecycleHooks(hooks),
	)

	s.surface = canvas.New(cfg.Width, cfg.Height)
	host, err := sc.New(s.surface, engineOpts...)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	s.host = host
	return s, nil
}

// startPublisher runs the redis publisher, if configured, until ctx is done.
func (s *session) startPublisher(ctx context.Context) {
	if s.publisher == nil {
		return
	}
	if err := s.client.Ping(ctx).Err(); err != nil {
		s.logger.Warn("redis unreachable, frame events will be dropped", "addr", s.cfg.Redis.Addr, "error", err)
	}
	go s.publisher.Run(ctx)
}

// Close releases the engine, surface and redis client.
func (s *session) Close() {
	if s.host != nil {
		s.host.Close()
	}
	if s.surface != nil {
		if err := s.surface.Close(); err != nil {
			s.logger.Debug("surface close", "error", err)
		}
	}
	if s.client != nil {
		s.client.Close()
	}
}

// debugHint reports why debug controls would be unavailable.
func debugHint(host easel.Host) string {
	if _, err := host.Debug(); err != nil {
		return fmt.Sprintf("debug controls unavailable (%v); set debug: true", domain.ErrDebugDisabled)
	}
	return "debug controls enabled"
}
