/*
Package maze generates perfect mazes on rectangular grids.

A maze is a domain.Graph whose edges form a spanning tree over every cell, so
exactly one simple path joins any two cells. Generation uses a randomized
depth-first backtracker driven by an explicit stack, which keeps memory on the
heap even when the walk is as deep as the grid is large.

The random source is injected, so a fixed seed always yields the same maze,
the same start and end cells, and the same detail cells.
*/
package maze

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/aretw0/mazewalk/pkg/domain"
)

const (
	// MaxDimension caps the width and height of a grid.
	MaxDimension = 1024

	defaultDetailCells = 1
)

// neighbourOffsets lists the four axis-aligned steps, in the order potential
// edges are recorded.
var neighbourOffsets = [4][2]int{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}

// Option configures a generation run.
type Option func(*options)

type options struct {
	detailCells int
}

// WithDetailCells sets how many extra highlighted cells are picked besides
// start and end. The count is capped so that every pick stays distinct.
func WithDetailCells(n int) Option {
	return func(o *options) {
		o.detailCells = max(n, 0)
	}
}

// frame is one level of the backtracker stack: a cell and the neighbours it
// has not tried yet.
type frame struct {
	cell      domain.CellKey
	remaining []domain.CellKey
}

// Generate builds a new random maze of the given dimensions.
// A nil rng draws a fresh seed from the global source.
func Generate(width, height int, rng *rand.Rand, opts ...Option) (*domain.Graph, error) {
	o := options{detailCells: defaultDetailCells}
	for _, opt := range opts {
		opt(&o)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	g, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	picked := make(map[domain.CellKey]struct{}, 2+o.detailCells)
	g.Start = pickDistinct(g, rng, picked)
	g.End = pickDistinct(g, rng, picked)
	for range min(o.detailCells, len(g.Cells)-2) {
		g.Details = append(g.Details, pickDistinct(g, rng, picked))
	}

	carve(g, rng)
	return g, nil
}

// NewGrid allocates every cell of a width x height grid and records its
// potential edges. No edge is carved.
func NewGrid(width, height int) (*domain.Graph, error) {
	if min(width, height) <= 0 || max(width, height) > MaxDimension || width*height < 2 {
		return nil, fmt.Errorf("%w: %dx%d", domain.ErrInvalidDimensions, width, height)
	}

	g := &domain.Graph{
		Width:  width,
		Height: height,
		Cells:  make([]domain.Cell, width*height),
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			key := g.Key(x, y)
			cell := domain.Cell{Key: key, X: x, Y: y, PotentialEdges: make([]domain.CellKey, 0, 4)}
			for _, d := range neighbourOffsets {
				nx, ny := x+d[0], y+d[1]
				if g.InBounds(nx, ny) {
					cell.PotentialEdges = append(cell.PotentialEdges, g.Key(nx, ny))
				}
			}
			g.Cells[key] = cell
		}
	}

	return g, nil
}

// pickDistinct samples cells uniformly until it finds one not picked before.
func pickDistinct(g *domain.Graph, rng *rand.Rand, picked map[domain.CellKey]struct{}) domain.CellKey {
	for {
		key := domain.CellKey(rng.IntN(len(g.Cells)))
		if _, taken := picked[key]; !taken {
			picked[key] = struct{}{}
			return key
		}
	}
}

// carve runs the randomized depth-first backtracker from the start cell.
func carve(g *domain.Graph, rng *rand.Rand) {
	visited := make([]bool, len(g.Cells))
	visited[g.Start] = true
	stack := []*frame{newFrame(g, g.Start)}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if len(top.remaining) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		i := rng.IntN(len(top.remaining))
		next := top.remaining[i]
		top.remaining = slices.Delete(top.remaining, i, i+1)

		if visited[next] {
			continue
		}
		visited[next] = true
		connect(g, top.cell, next)
		stack = append(stack, newFrame(g, next))
	}
}

func newFrame(g *domain.Graph, k domain.CellKey) *frame {
	return &frame{cell: k, remaining: slices.Clone(g.Cells[k].PotentialEdges)}
}

// connect adds a symmetric edge between two cells.
func connect(g *domain.Graph, a, b domain.CellKey) {
	g.Cells[a].Edges = append(g.Cells[a].Edges, b)
	g.Cells[b].Edges = append(g.Cells[b].Edges, a)
}

// FromEdges builds a maze with fixed edges, start and end cells, then checks it
// is a valid spanning tree.
func FromEdges(width, height int, start, end domain.CellKey, edges [][2]domain.CellKey) (*domain.Graph, error) {
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	g.Start, g.End = start, end

	for _, e := range edges {
		a, b := e[0], e[1]
		if a < 0 || int(a) >= len(g.Cells) || b < 0 || int(b) >= len(g.Cells) {
			return nil, fmt.Errorf("%w: edge %d-%d out of bounds", domain.ErrInvalidGraph, a, b)
		}
		connect(g, a, b)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
