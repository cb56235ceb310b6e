package domain

// Snapshot is the read model of the engine at the end of a tick.
// Renderers read it once per frame; stores persist copies of it.
type Snapshot struct {
	// MazeID identifies the graph currently installed. It changes on every regeneration.
	MazeID string `json:"maze_id"`

	// Cycle counts regenerations since the engine started.
	Cycle int `json:"cycle"`

	Phase Phase `json:"phase"`

	// RevealAmount in [0,1] scales the maze geometry on the presentation side.
	RevealAmount float64 `json:"reveal_amount"`

	Pose   Pose   `json:"pose"`
	Cursor Cursor `json:"cursor"`

	// Ticks counts applied ticks; skipped ticks are not counted.
	Ticks uint64 `json:"ticks"`

	// TraversalSeconds is the time spent in PhaseTraversing for the current maze.
	TraversalSeconds float64 `json:"traversal_seconds"`

	// Waypoints counts cells reached by the navigator in the current maze.
	Waypoints int `json:"waypoints"`

	// Graph is shared with the engine and must not be mutated.
	Graph *Graph `json:"graph,omitempty"`
}

// WithoutGraph returns a copy of the snapshot that omits the graph.
func (s Snapshot) WithoutGraph() Snapshot {
	s.Graph = nil
	return s
}
