package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/easel/internal/presentation/graph"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestLoopEdges(t *testing.T) {
	edges := graph.LoopEdges()

	has := func(from, to domain.LoopState, label string) bool {
		for _, e := range edges {
			if e.From == from && e.To == to && e.Label == label {
				return true
			}
		}
		return false
	}

	assert.True(t, has(domain.StateIdle, domain.StateRunning, "start"))
	assert.True(t, has(domain.StateRunning, domain.StateBreak, "break"))
	assert.True(t, has(domain.StateStepping, domain.StateBreak, "frame"))
	assert.True(t, has(domain.StateBreak, domain.StateIdle, "reset"))
	assert.False(t, has(domain.StateIdle, domain.StateIdle, "reset"), "no self loops")
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "Shapes",
			contains: []string{
				"graph TD",
				"s_idle((\"idle\"))",
				"s_stepping[/\"stepping\"/]",
				"s_running[\"running\"]",
				"s_break[\"break\"]",
			},
			excludes: []string{"classDef"},
		},
		{
			name: "Edges",
			contains: []string{
				"s_idle -- \"start\" --> s_running",
				"s_stepping -. \"frame\" .-> s_break",
			},
		},
		{
			name:    "Overlay",
			overlay: &graph.GraphOverlay{Visited: []domain.LoopState{"running", "running"}, CurrentState: domain.StateBreak},
			contains: []string{
				"classDef current",
				"class s_running visited;",
				"class s_break current;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := graph.GenerateMermaid(graph.LoopEdges(), tt.overlay)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, out, unwanted)
			}
			if tt.overlay != nil {
				assert.Equal(t, 1, strings.Count(out, "class s_running visited;"), "visited states are deduplicated")
			}
		})
	}
}
