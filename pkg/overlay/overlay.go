// Package overlay resolves the grid and environment utility overlays.
//
// Each overlay is configured with a tagged value (off, on, a colour, a size
// or position shorthand, a full options record or a custom handler). The
// value is resolved once, at configuration time, into a Handler closure that
// the engine calls every frame inside its own save/restore. Shorthands that
// do not fit the surface fall back to the documented defaults when drawn.
package overlay

import (
	"log/slog"

	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/ports"
)

// Handler draws an overlay for one frame.
type Handler func(ports.Surface, domain.DrawData)

// Resolver turns overlay values into handlers.
type Resolver struct {
	Logger *slog.Logger
}

// NewResolver creates a resolver logging fallbacks to logger (nil for silence).
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{Logger: logger}
}

func (r *Resolver) logger() *slog.Logger {
	if r == nil || r.Logger == nil {
		return logging.NewNop()
	}
	return r.Logger
}

// ResolveGrid resolves v with a silent resolver.
func ResolveGrid(v GridValue) Handler {
	return NewResolver(nil).Grid(v)
}

// ResolveEnvironment resolves v with a silent resolver.
func ResolveEnvironment(v EnvironmentValue) Handler {
	return NewResolver(nil).Environment(v)
}

func pick(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func pickFloat(value, fallback float64) float64 {
	if value != 0 {
		return value
	}
	return fallback
}
