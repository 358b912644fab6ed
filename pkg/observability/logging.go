package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/easel/pkg/domain"
)

// LogHooks logs lifecycle events. Frames are logged at debug level once every
// `every` frames (every <= 1 logs all of them); skips at debug; state changes
// at info.
func LogHooks(logger *slog.Logger, every int) domain.LifecycleHooks {
	if every < 1 {
		every = 1
	}
	return domain.LifecycleHooks{
		OnFrame: func(ctx context.Context, e *domain.FrameEvent) {
			if e.Draw.Frame%every != 0 {
				return
			}
			logger.DebugContext(ctx, "frame",
				"frame", e.Draw.Frame,
				"fps", e.Draw.FPS,
				"duration", e.Duration,
				"state", e.State,
			)
		},
		OnSkip: func(ctx context.Context, e *domain.SkipEvent) {
			logger.DebugContext(ctx, "tick skipped", "reason", e.Reason)
		},
		OnStateChange: func(ctx context.Context, e *domain.StateEvent) {
			logger.InfoContext(ctx, "loop state", "from", e.From, "to", e.To)
		},
	}
}
