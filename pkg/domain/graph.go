package domain

import "fmt"

// Graph is a generated maze.
// It must be treated as read-only once the generator returns it; the engine
// replaces graphs wholesale instead of mutating them.
type Graph struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Cells holds one cell per grid position, indexed by CellKey.
	Cells []Cell `json:"cells"`

	Start CellKey `json:"start"`
	End   CellKey `json:"end"`

	// Details are extra highlighted cells, distinct from Start and End.
	Details []CellKey `json:"details,omitempty"`
}

// Key returns the key of the cell at (x, y).
func (g *Graph) Key(x, y int) CellKey {
	return CellKey(g.Width*y + x)
}

// InBounds reports whether (x, y) lies on the grid.
func (g *Graph) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Cell returns the cell with the given key.
// It panics if the key is outside the graph, like a slice index would.
func (g *Graph) Cell(k CellKey) Cell {
	return g.Cells[k]
}

// Center returns the centre point of a cell in grid space.
func (g *Graph) Center(k CellKey) Vec2 {
	c := g.Cells[k]
	return Vec2{X: float64(c.X) + 0.5, Y: float64(c.Y) + 0.5}
}

// HasEdge reports whether the maze connects a and b.
func (g *Graph) HasEdge(a, b CellKey) bool {
	if !g.valid(a) || !g.valid(b) {
		return false
	}
	return g.Cells[a].Connected(b)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, c := range g.Cells {
		total += len(c.Edges)
	}
	return total / 2
}

func (g *Graph) valid(k CellKey) bool {
	return k >= 0 && int(k) < len(g.Cells)
}

// Validate checks the structural invariants of a maze: one cell per grid
// position, edges drawn from potential edges, symmetric edges, distinct
// start and end, and a spanning tree over every cell.
func (g *Graph) Validate() error {
	n := g.Width * g.Height
	if g.Width <= 0 || g.Height <= 0 || n < 2 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, g.Width, g.Height)
	}
	if len(g.Cells) != n {
		return fmt.Errorf("%w: %d cells for a %dx%d grid", ErrInvalidGraph, len(g.Cells), g.Width, g.Height)
	}
	if !g.valid(g.Start) || !g.valid(g.End) || g.Start == g.End {
		return fmt.Errorf("%w: start %d and end %d must be distinct cells", ErrInvalidGraph, g.Start, g.End)
	}

	for i, c := range g.Cells {
		if int(c.Key) != i || g.Key(c.X, c.Y) != c.Key || !g.InBounds(c.X, c.Y) {
			return fmt.Errorf("%w: cell %d has inconsistent key or position", ErrInvalidGraph, i)
		}
		seen := make(map[CellKey]bool, len(c.Edges))
		for _, e := range c.Edges {
			if seen[e] {
				return fmt.Errorf("%w: duplicate edge %d-%d", ErrInvalidGraph, c.Key, e)
			}
			seen[e] = true
			if !c.Adjacent(e) {
				return fmt.Errorf("%w: edge %d-%d is not a grid neighbour", ErrInvalidGraph, c.Key, e)
			}
			if !g.valid(e) || !g.Cells[e].Connected(c.Key) {
				return fmt.Errorf("%w: edge %d-%d is not symmetric", ErrInvalidGraph, c.Key, e)
			}
		}
	}

	if edges := g.EdgeCount(); edges != n-1 {
		return fmt.Errorf("%w: %d edges, a spanning tree needs %d", ErrInvalidGraph, edges, n-1)
	}

	// n-1 edges plus connectivity implies the graph is acyclic.
	visited := make([]bool, n)
	stack := []CellKey{g.Start}
	visited[g.Start] = true
	reached := 1
	for len(stack) > 0 {
		k := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range g.Cells[k].Edges {
			if !visited[e] {
				visited[e] = true
				reached++
				stack = append(stack, e)
			}
		}
	}
	if reached != n {
		return fmt.Errorf("%w: only %d of %d cells reachable from start", ErrInvalidGraph, reached, n)
	}

	return nil
}
