package maze_test

import (
	"testing"

	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/aretw0/mazewalk/pkg/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	// 3x2 grid:
	// 0 - 1   2
	//     |   |
	// 3 - 4 - 5
	g, err := maze.FromEdges(3, 2, 0, 2, [][2]domain.CellKey{{0, 1}, {1, 4}, {3, 4}, {4, 5}, {5, 2}})
	require.NoError(t, err)

	path, err := maze.Path(g, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []domain.CellKey{0, 1, 4, 5, 2}, path)

	path, err = maze.Path(g, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, []domain.CellKey{3}, path)

	_, err = maze.Path(g, 0, 99)
	assert.ErrorIs(t, err, domain.ErrInvalidGraph)
}

func TestAnalyze(t *testing.T) {
	g, err := maze.FromEdges(3, 2, 0, 2, [][2]domain.CellKey{{0, 1}, {1, 4}, {3, 4}, {4, 5}, {5, 2}})
	require.NoError(t, err)

	stats, err := maze.Analyze(g)
	require.NoError(t, err)
	assert.Equal(t, maze.Stats{
		Cells:          6,
		Edges:          5,
		DeadEnds:       3,
		Corridors:      2,
		Junctions:      1,
		Crossroads:     0,
		SolutionLength: 4,
	}, stats)
}

func TestAnalyze_Generated(t *testing.T) {
	g, err := maze.Generate(20, 20, seeded(5))
	require.NoError(t, err)

	stats, err := maze.Analyze(g)
	require.NoError(t, err)
	assert.Equal(t, 400, stats.Cells)
	assert.Equal(t, 399, stats.Edges)
	assert.Equal(t, stats.Cells, stats.DeadEnds+stats.Corridors+stats.Junctions+stats.Crossroads)
	assert.Positive(t, stats.SolutionLength)
}
