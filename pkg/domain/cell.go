package domain

import "slices"

// CellKey identifies a cell inside a Graph. It equals width*y + x.
type CellKey int

// Cell is one grid position of the maze.
type Cell struct {
	Key CellKey `json:"key"`
	X   int     `json:"x"`
	Y   int     `json:"y"`

	// PotentialEdges lists the grid neighbours one axis-aligned step away.
	PotentialEdges []CellKey `json:"potential_edges"`

	// Edges lists the neighbours connected by the generated maze, in the order
	// the generator carved them. Always a subset of PotentialEdges.
	Edges []CellKey `json:"edges"`
}

// Connected reports whether the maze connects this cell to other.
func (c Cell) Connected(other CellKey) bool {
	return slices.Contains(c.Edges, other)
}

// Adjacent reports whether other is a grid neighbour of this cell.
func (c Cell) Adjacent(other CellKey) bool {
	return slices.Contains(c.PotentialEdges, other)
}
