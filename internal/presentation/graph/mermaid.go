package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/easel/pkg/domain"
)

// Edge is one transition of the debug state machine.
type Edge struct {
	From, To domain.LoopState
	Label    string
}

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	Visited      []domain.LoopState
	CurrentState domain.LoopState
}

var loopStates = []domain.LoopState{
	domain.StateIdle,
	domain.StateRunning,
	domain.StateStepping,
	domain.StateBreak,
}

// LoopEdges lists the transitions of the scheduler. Debug commands apply
// from every state; a produced frame ends a step.
func LoopEdges() []Edge {
	var edges []Edge
	for _, from := range loopStates {
		if from != domain.StateRunning {
			edges = append(edges, Edge{From: from, To: domain.StateRunning, Label: "start"})
		}
		if from != domain.StateStepping {
			edges = append(edges, Edge{From: from, To: domain.StateStepping, Label: "step"})
		}
		if from != domain.StateBreak {
			edges = append(edges, Edge{From: from, To: domain.StateBreak, Label: "break"})
		}
		if from != domain.StateIdle {
			edges = append(edges, Edge{From: from, To: domain.StateIdle, Label: "reset"})
		}
	}
	edges = append(edges,
		Edge{From: domain.StateStepping, To: domain.StateBreak, Label: "frame"},
	)
	return edges
}

// GenerateMermaid produces a Mermaid flowchart of the loop states:
// - Idle: ((Circle))
// - Stepping: [/Parallelogram/]
// - Default: [Rectangle]
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(edges []Edge, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, state := range loopStates {
		opener, closer := "[", "]"
		switch state {
		case domain.StateIdle:
			opener, closer = "((", "))"
		case domain.StateStepping:
			opener, closer = "[/", "/]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(state), opener, state, closer)
	}

	for _, e := range edges {
		arrow := fmt.Sprintf("-- \"%s\" -->", strings.ReplaceAll(e.Label, "\"", "'"))
		if e.Label == "frame" {
			arrow = fmt.Sprintf("-. \"%s\" .->", e.Label)
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(e.From), arrow, sanitizeMermaidID(e.To))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, s := range overlay.Visited {
			id := sanitizeMermaidID(s)
			if !seen[id] && id != "" {
				seen[id] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", id)
			}
		}
		if overlay.CurrentState != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentState))
		}
	}

	return sb.String()
}

// sanitizeMermaidID prefixes state names that are Mermaid keywords.
func sanitizeMermaidID(s domain.LoopState) string {
	id := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_").Replace(string(s))
	if id == "" {
		return ""
	}
	return "s_" + id
}
