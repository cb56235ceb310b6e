package maze

import (
	"fmt"
	"slices"

	"github.com/aretw0/mazewalk/pkg/domain"
)

// Stats summarises the shape of a maze.
type Stats struct {
	Cells int `json:"cells"`
	Edges int `json:"edges"`

	// DeadEnds counts cells with a single edge.
	DeadEnds int `json:"dead_ends"`
	// Corridors counts cells with exactly two edges.
	Corridors int `json:"corridors"`
	// Junctions counts cells with three edges.
	Junctions int `json:"junctions"`
	// Crossroads counts cells with four edges.
	Crossroads int `json:"crossroads"`

	// SolutionLength is the number of steps on the path from start to end.
	SolutionLength int `json:"solution_length"`
}

// Analyze computes the Stats of a maze.
func Analyze(g *domain.Graph) (Stats, error) {
	s := Stats{Cells: len(g.Cells), Edges: g.EdgeCount()}
	for _, c := range g.Cells {
		switch len(c.Edges) {
		case 1:
			s.DeadEnds++
		case 2:
			s.Corridors++
		case 3:
			s.Junctions++
		case 4:
			s.Crossroads++
		}
	}

	path, err := Path(g, g.Start, g.End)
	if err != nil {
		return s, err
	}
	s.SolutionLength = len(path) - 1
	return s, nil
}

// Path returns the cells on the unique path between from and to, both included.
func Path(g *domain.Graph, from, to domain.CellKey) ([]domain.CellKey, error) {
	n := domain.CellKey(len(g.Cells))
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, fmt.Errorf("%w: path %d-%d out of bounds", domain.ErrInvalidGraph, from, to)
	}

	parent := make([]domain.CellKey, n)
	for i := range parent {
		parent[i] = -1
	}
	parent[from] = from

	queue := []domain.CellKey{from}
	for len(queue) > 0 && parent[to] == -1 {
		k := queue[0]
		queue = queue[1:]
		for _, e := range g.Cells[k].Edges {
			if parent[e] == -1 {
				parent[e] = k
				queue = append(queue, e)
			}
		}
	}

	if parent[to] == -1 {
		return nil, fmt.Errorf("%w: no path from %d to %d", domain.ErrInvalidGraph, from, to)
	}

	path := []domain.CellKey{to}
	for k := to; k != from; k = parent[k] {
		path = append(path, parent[k])
	}
	slices.Reverse(path)
	return path, nil
}
