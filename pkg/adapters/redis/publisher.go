// Package redis publishes engine lifecycle events to a Redis channel.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultChannel is the channel events are published on.
const DefaultChannel = "easel:frames"

// Publisher forwards frame and state events to Redis PUBLISH.
// Hooks never block the tick: events go through a buffer drained by Run,
// and are dropped when it is full.
type Publisher struct {
	client  *backend.Client
	channel string
	every   int
	buffer  int
	logger  *slog.Logger

	events  chan any
	dropped atomic.Uint64
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithChannel sets the Redis channel.
func WithChannel(channel string) Option {
	return func(p *Publisher) {
		if channel != "" {
			p.channel = channel
		}
	}
}

// WithEvery publishes one frame event out of every n frames. State changes
// are always published.
func WithEvery(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.every = n
		}
	}
}

// WithBuffer sets how many events may wait for Run.
func WithBuffer(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.buffer = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPublisher creates a publisher on client.
func NewPublisher(client *backend.Client, opts ...Option) *Publisher {
	p := &Publisher{
		client:  client,
		channel: DefaultChannel,
		every:   1,
		buffer:  64,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.events = make(chan any, p.buffer)
	return p
}

// Channel returns the Redis channel in use.
func (p *Publisher) Channel() string {
	return p.channel
}

// Dropped returns how many events were discarded because the buffer was full.
func (p *Publisher) Dropped() uint64 {
	return p.dropped.Load()
}

// Hooks returns lifecycle hooks that enqueue events for Run.
func (p *Publisher) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFrame: func(_ context.Context, e *domain.FrameEvent) {
			if e.Draw.Frame%p.every != 0 {
				return
			}
			p.enqueue(*e)
		},
		OnStateChange: func(_ context.Context, e *domain.StateEvent) {
			p.enqueue(*e)
		},
	}
}

func (p *Publisher) enqueue(event any) {
	select {
	case p.events <- event:
	default:
		p.dropped.Add(1)
	}
}

// Publish encodes event as JSON and publishes it.
func (p *Publisher) Publish(ctx context.Context, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish on %s: %w", p.channel, err)
	}
	return nil
}

// Run publishes queued events until ctx is done. Publish errors are logged
// and do not stop the loop.
func (p *Publisher) Run(ctx context.Context) {
	p.logger.Info("redis publisher started", "channel", p.channel, "every", p.every)
	defer p.logger.Info("redis publisher stopped")
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-p.events:
			if err := p.Publish(ctx, event); err != nil {
				p.logger.Warn("event not published", "error", err)
			}
		}
	}
}
