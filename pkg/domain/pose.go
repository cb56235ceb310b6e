package domain

import "math"

// Pose is the camera position and orientation inside the maze.
// Position is continuous and is not quantized to cells.
type Pose struct {
	Position Vec2 `json:"position"`

	// Heading is the yaw in radians, measured from +X towards +Y.
	Heading float64 `json:"heading"`
}

// Facing returns the unit vector the camera looks along.
func (p Pose) Facing() Vec2 {
	return Vec2{X: math.Cos(p.Heading), Y: math.Sin(p.Heading)}
}

// Cursor holds the navigator waypoints.
type Cursor struct {
	// Previous is the cell the camera most recently arrived at.
	Previous CellKey `json:"previous"`
	// Target is the cell the camera is moving towards.
	Target CellKey `json:"target"`
	// Lookahead is the cell the camera turns to face, one step beyond Target.
	Lookahead CellKey `json:"lookahead"`
}
