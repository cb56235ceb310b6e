package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/aretw0/mazewalk/internal/config"
	"github.com/aretw0/mazewalk/internal/presentation/graph"
	"github.com/aretw0/mazewalk/internal/presentation/tui"
	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/aretw0/mazewalk/pkg/maze"
)

// Output formats understood by Generate.
const (
	FormatASCII   = "ascii"
	FormatMermaid = "mermaid"
	FormatJSON    = "json"
)

// generateMaze builds a single maze from the configuration and returns it
// with the seed that produced it.
func generateMaze(cfg *config.Config) (*domain.Graph, uint64, error) {
	seed := cfg.Maze.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	g, err := maze.Generate(cfg.Maze.Width, cfg.Maze.Height, rand.New(rand.NewPCG(seed, 0)),
		maze.WithDetailCells(cfg.Maze.DetailCells))
	if err != nil {
		return nil, seed, err
	}
	return g, seed, nil
}

// Generate writes one maze in the requested format.
// When solve is set the start-to-end path is drawn on text formats.
func Generate(w io.Writer, cfg *config.Config, format string, solve bool) error {
	g, _, err := generateMaze(cfg)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if solve {
		path, err := maze.Path(g, g.Start, g.End)
		if err != nil {
			return err
		}
		overlay = &graph.GraphOverlay{Path: path}
	}

	switch strings.ToLower(format) {
	case FormatASCII, "":
		_, err = io.WriteString(w, graph.RenderASCII(g, overlay))
	case FormatMermaid:
		_, err = io.WriteString(w, graph.GenerateMermaid(g, overlay))
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(g)
	default:
		return fmt.Errorf("unknown format %q: want %s, %s or %s", format, FormatASCII, FormatMermaid, FormatJSON)
	}
	return err
}

// Inspect writes a markdown report of one maze: its statistics and the solved
// layout. With render set the markdown is styled for the terminal.
func Inspect(w io.Writer, cfg *config.Config, render bool) error {
	g, seed, err := generateMaze(cfg)
	if err != nil {
		return err
	}

	report, err := inspectMarkdown(g, seed)
	if err != nil {
		return err
	}

	if render {
		renderer, err := tui.NewRenderer(0)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		if report, err = renderer(report); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
	}

	_, err = io.WriteString(w, report)
	return err
}

func inspectMarkdown(g *domain.Graph, seed uint64) (string, error) {
	stats, err := maze.Analyze(g)
	if err != nil {
		return "", err
	}
	path, err := maze.Path(g, g.Start, g.End)
	if err != nil {
		return "", err
	}

	cell := func(k domain.CellKey) string {
		c := g.Cell(k)
		return fmt.Sprintf("(%d, %d)", c.X, c.Y)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Maze %dx%d\n\n", g.Width, g.Height)
	fmt.Fprintf(&sb, "Seed `%d`, start %s, end %s.\n\n", seed, cell(g.Start), cell(g.End))

	sb.WriteString("| Metric | Value |\n|---|---|\n")
	rows := []struct {
		name  string
		value int
	}{
		{"Cells", stats.Cells},
		{"Edges", stats.Edges},
		{"Dead ends", stats.DeadEnds},
		{"Corridors", stats.Corridors},
		{"Junctions", stats.Junctions},
		{"Crossroads", stats.Crossroads},
		{"Solution length", stats.SolutionLength},
		// Every edge is walked once in each direction.
		{"Full tour length", 2 * stats.Edges},
	}
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %s | %d |\n", r.name, r.value)
	}

	if len(g.Details) > 0 {
		sb.WriteString("\n## Detail cells\n\n")
		for _, k := range g.Details {
			fmt.Fprintf(&sb, "- %s\n", cell(k))
		}
	}

	sb.WriteString("\n## Layout\n\n```text\n")
	sb.WriteString(graph.RenderASCII(g, &graph.GraphOverlay{Path: path}))
	sb.WriteString("```\n")
	return sb.String(), nil
}
