package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/mazewalk/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of the maze tree.
// It applies semantic styling:
// - Start: ((Circle))
// - End: [[Subroutine]]
// - Detail: {{Hexagon}}
// - Default: [Rectangle]
// It also applies overlay styles (Path/Current) if provided.
func GenerateMermaid(g *domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	details := make(map[domain.CellKey]bool, len(g.Details))
	for _, k := range g.Details {
		details[k] = true
	}

	for _, c := range g.Cells {
		opener, closer := "[", "]"
		switch {
		case c.Key == g.Start:
			opener, closer = "((", "))"
		case c.Key == g.End:
			opener, closer = "[[", "]]"
		case details[c.Key]:
			opener, closer = "{{", "}}"
		}
		fmt.Fprintf(&sb, "    %s%s\"%d,%d\"%s\n", nodeID(c.Key), opener, c.X, c.Y, closer)
	}

	// Each undirected edge once, from the lower key.
	for _, c := range g.Cells {
		for _, e := range c.Edges {
			if e > c.Key {
				fmt.Fprintf(&sb, "    %s --- %s\n", nodeID(c.Key), nodeID(e))
			}
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on light and dark themes.
		sb.WriteString("    classDef path fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.CellKey]bool)
		for _, k := range overlay.Path {
			if !seen[k] && int(k) >= 0 && int(k) < len(g.Cells) {
				seen[k] = true
				fmt.Fprintf(&sb, "    class %s path;\n", nodeID(k))
			}
		}

		if overlay.Camera != nil {
			fmt.Fprintf(&sb, "    class %s current;\n", nodeID(cameraCell(g, *overlay.Camera)))
		}
	}

	return sb.String()
}

func nodeID(k domain.CellKey) string {
	return fmt.Sprintf("c%d", k)
}
