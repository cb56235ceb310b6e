package graph

import (
	"strings"

	"github.com/aretw0/mazewalk/pkg/domain"
)

// RenderASCII draws the maze with box characters. A wall stands wherever two
// neighbouring cells share no edge.
//
// Markers: S start, E end, * detail cell, . path, and an arrow for the camera.
func RenderASCII(g *domain.Graph, overlay *GraphOverlay) string {
	markers := make(map[domain.CellKey]byte)
	if overlay != nil {
		for _, k := range overlay.Path {
			markers[k] = '.'
		}
	}
	for _, k := range g.Details {
		markers[k] = '*'
	}
	markers[g.End] = 'E'
	markers[g.Start] = 'S'
	if overlay != nil && overlay.Camera != nil {
		markers[cameraCell(g, *overlay.Camera)] = arrow(overlay.Camera.Heading)
	}

	var sb strings.Builder
	sb.Grow((g.Width*4 + 2) * (g.Height*2 + 1))

	for y := 0; y < g.Height; y++ {
		// Wall line above row y.
		sb.WriteByte('+')
		for x := 0; x < g.Width; x++ {
			if y > 0 && g.HasEdge(g.Key(x, y), g.Key(x, y-1)) {
				sb.WriteString("   +")
			} else {
				sb.WriteString("---+")
			}
		}
		sb.WriteByte('\n')

		// Cell line.
		sb.WriteByte('|')
		for x := 0; x < g.Width; x++ {
			k := g.Key(x, y)
			m, ok := markers[k]
			if !ok {
				m = ' '
			}
			sb.WriteByte(' ')
			sb.WriteByte(m)
			sb.WriteByte(' ')
			if x < g.Width-1 && g.HasEdge(k, g.Key(x+1, y)) {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte('|')
			}
		}
		sb.WriteByte('\n')
	}

	sb.WriteByte('+')
	sb.WriteString(strings.Repeat("---+", g.Width))
	sb.WriteByte('\n')
	return sb.String()
}
