package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/mazewalk/internal/config"
	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/aretw0/mazewalk/pkg/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Maze.Width, cfg.Maze.Height = 5, 4
	cfg.Maze.Seed = 21
	return cfg
}

func TestGenerate_ASCII(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, Generate(&a, smallConfig(), "ascii", false))
	require.NoError(t, Generate(&b, smallConfig(), "", false))

	assert.Equal(t, a.String(), b.String(), "ascii is the default and a fixed seed is stable")
	lines := strings.Split(strings.TrimSuffix(a.String(), "\n"), "\n")
	assert.Len(t, lines, 2*4+1)
	assert.Len(t, lines[0], 4*5+1)
	assert.Equal(t, 1, strings.Count(a.String(), "S"))
	assert.Equal(t, 1, strings.Count(a.String(), "E"))
	assert.NotContains(t, a.String(), ".")
}

func TestGenerate_Solved(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, smallConfig(), "ascii", true))

	var g domain.Graph
	var js bytes.Buffer
	require.NoError(t, Generate(&js, smallConfig(), "json", false))
	require.NoError(t, json.Unmarshal(js.Bytes(), &g))

	path, err := maze.Path(&g, g.Start, g.End)
	require.NoError(t, err)

	// Start and end keep their own markers; a detail cell on the path hides its dot.
	dots := strings.Count(buf.String(), ".")
	assert.LessOrEqual(t, dots, len(path)-2)
	assert.GreaterOrEqual(t, dots, len(path)-2-len(g.Details))
}

func TestGenerate_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, smallConfig(), "JSON", false))

	var g domain.Graph
	require.NoError(t, json.Unmarshal(buf.Bytes(), &g))
	assert.Equal(t, 5, g.Width)
	require.NoError(t, g.Validate())
}

func TestGenerate_Mermaid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, smallConfig(), "mermaid", true))
	assert.True(t, strings.HasPrefix(buf.String(), "graph TD\n"))
	assert.Contains(t, buf.String(), "classDef path")
}

func TestGenerate_UnknownFormat(t *testing.T) {
	err := Generate(&bytes.Buffer{}, smallConfig(), "svg", false)
	assert.ErrorContains(t, err, `unknown format "svg"`)
}

func TestInspect(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Inspect(&buf, smallConfig(), false))

	report := buf.String()
	assert.True(t, strings.HasPrefix(report, "# Maze 5x4\n"))
	assert.Contains(t, report, "Seed `21`")
	assert.Contains(t, report, "| Cells | 20 |")
	assert.Contains(t, report, "| Edges | 19 |")
	assert.Contains(t, report, "| Full tour length | 38 |")
	assert.Contains(t, report, "## Detail cells")
	assert.Contains(t, report, "```text\n+---+")
}
