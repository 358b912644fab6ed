package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/easel/internal/presentation/graph"
	"github.com/aretw0/easel/internal/presentation/tui"
	"github.com/aretw0/easel/pkg/config"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/overlay"
	"github.com/aretw0/easel/pkg/scene"
)

// Inspect prints a markdown summary of the effective configuration and the
// available scenes. styled renders it for a terminal.
func Inspect(opts Options, w io.Writer, styled bool) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	md, err := inspectMarkdown(cfg)
	if err != nil {
		return err
	}

	out, err := tui.NewRenderer(styled)(md)
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func inspectMarkdown(cfg config.Config) (string, error) {
	grid, err := overlay.DecodeGrid(cfg.Grid)
	if err != nil {
		return "", err
	}
	env, err := overlay.DecodeEnvironment(cfg.Environment)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", cfg.Name)
	b.WriteString("| Setting | Value |\n|---|---|\n")
	rows := [][2]string{
		{"scene", cfg.Scene},
		{"surface", fmt.Sprintf("%dx%d @ %gx", cfg.Width, cfg.Height, cfg.PixelRatio)},
		{"dark mode", fmt.Sprint(cfg.DarkMode)},
		{"fps", fmt.Sprint(cfg.FPS)},
		{"auto start", fmt.Sprint(cfg.AutoStart)},
		{"debug", fmt.Sprint(cfg.Debug)},
		{"resize delay", cfg.ResizeDelay().String()},
		{"max frame", maxFrameLabel(cfg.MaxFrame)},
		{"auto reset context", fmt.Sprint(cfg.AutoResetContext)},
		{"grid", describe(grid)},
		{"environment", describe(env)},
		{"debug server", cfg.Server.Addr},
		{"metrics", fmt.Sprint(cfg.Server.Metrics)},
		{"redis", redisLabel(cfg.Redis)},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | `%s` |\n", row[0], row[1])
	}

	b.WriteString("\n## Scenes\n\n")
	for _, s := range scene.All() {
		marker := ""
		if s.Name == cfg.Scene {
			marker = " *(selected)*"
		}
		fmt.Fprintf(&b, "- **%s**%s: %s\n", s.Name, marker, s.Description)
	}

	b.WriteString("\n## Debug states\n\n```mermaid\n")
	b.WriteString(graph.GenerateMermaid(graph.LoopEdges(), &graph.GraphOverlay{CurrentState: domain.StateIdle}))
	b.WriteString("```\n")
	return b.String(), nil
}

func describe(v any) string {
	switch v := v.(type) {
	case nil, overlay.GridOff, overlay.EnvOff:
		return "off"
	case overlay.GridOn, overlay.EnvOn:
		return "on"
	case overlay.GridOptions, overlay.EnvironmentOptions:
		return "custom options"
	case overlay.Point:
		return fmt.Sprintf("at %g,%g", v.X, v.Y)
	default:
		return fmt.Sprint(v)
	}
}

func maxFrameLabel(n int) string {
	if n <= 0 {
		return "unbounded"
	}
	return fmt.Sprint(n)
}

func redisLabel(r config.RedisConfig) string {
	if r.Addr == "" {
		return "off"
	}
	return fmt.Sprintf("%s %s every %d frames", r.Addr, r.Channel, r.Every)
}
