package tui_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/mazewalk/internal/presentation/tui"
	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/aretw0/mazewalk/pkg/maze"
	"github.com/aretw0/mazewalk/pkg/ports"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.FrameSink = (*tui.Frame)(nil)

func snapshot(t *testing.T) domain.Snapshot {
	t.Helper()
	g, err := maze.FromEdges(2, 1, 0, 1, [][2]domain.CellKey{{0, 1}})
	require.NoError(t, err)
	return domain.Snapshot{
		MazeID:       "maze-1",
		Phase:        domain.PhaseTraversing,
		RevealAmount: 1,
		Pose:         domain.Pose{Position: domain.Vec2{X: 0.5, Y: 0.5}},
		Graph:        g,
	}
}

func TestFrame_Present(t *testing.T) {
	var buf bytes.Buffer
	f := tui.NewFrame(&buf, tui.WithProfile(termenv.Ascii))

	require.NoError(t, f.Present(context.Background(), snapshot(t)))

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "+---+---+", lines[0])
	assert.Equal(t, "| >   E |", lines[1])
	assert.Equal(t, "+---+---+", lines[2])
	assert.Equal(t, "traversing  reveal 1.00  cycle 0  waypoints 0  maze maze-1", lines[3])
}

func TestFrame_Crops(t *testing.T) {
	var buf bytes.Buffer
	f := tui.NewFrame(&buf, tui.WithProfile(termenv.Ascii), tui.WithWidth(4))

	require.NoError(t, f.Present(context.Background(), snapshot(t)))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 4, line)
	}
}

func TestFrame_NoGraph(t *testing.T) {
	var buf bytes.Buffer
	f := tui.NewFrame(&buf)

	require.NoError(t, f.Present(context.Background(), domain.Snapshot{}))
	assert.Empty(t, buf.String())
}

func TestFprintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.FprintBanner(termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii)), "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
	assert.Contains(t, buf.String(), `\_/\_/`)
}
