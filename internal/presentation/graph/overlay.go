package graph

import (
	"math"

	"github.com/aretw0/mazewalk/pkg/domain"
)

// GraphOverlay contains dynamic state data to visualize on the maze.
type GraphOverlay struct {
	// Camera marks the cell the camera stands in and the way it faces.
	Camera *domain.Pose
	// Path highlights a sequence of cells, such as the start-to-end solution.
	Path []domain.CellKey
}

// OverlayFromSnapshot builds an overlay showing the camera of a snapshot.
func OverlayFromSnapshot(snap domain.Snapshot) *GraphOverlay {
	pose := snap.Pose
	return &GraphOverlay{Camera: &pose}
}

// cameraCell returns the cell under the camera, clamped to the grid.
func cameraCell(g *domain.Graph, pose domain.Pose) domain.CellKey {
	x := min(max(int(math.Floor(pose.Position.X)), 0), g.Width-1)
	y := min(max(int(math.Floor(pose.Position.Y)), 0), g.Height-1)
	return g.Key(x, y)
}

// arrow quantizes a heading to one of four glyphs. Rows grow downwards.
func arrow(heading float64) byte {
	quarter := int(math.Round(heading/(math.Pi/2))) % 4
	if quarter < 0 {
		quarter += 4
	}
	return ">v<^"[quarter]
}
