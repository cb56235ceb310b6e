package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPhaseEnter    EventType = "phase_enter"
	EventPhaseLeave    EventType = "phase_leave"
	EventWaypoint      EventType = "waypoint"
	EventMazeInstalled EventType = "maze_installed"
	EventTickSkipped   EventType = "tick_skipped"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	MazeID    string    `json:"maze_id"`
}

// PhaseEvent represents entry into or exit from a lifecycle phase.
type PhaseEvent struct {
	EventBase
	Phase        Phase   `json:"phase"`
	RevealAmount float64 `json:"reveal_amount"`
}

// WaypointEvent is emitted each time the navigator reaches a cell.
type WaypointEvent struct {
	EventBase
	Cell   CellKey `json:"cell"`
	Cursor Cursor  `json:"cursor"`
}

// MazeEvent is emitted when a new graph is installed.
type MazeEvent struct {
	EventBase
	Cycle  int     `json:"cycle"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Start  CellKey `json:"start"`
	End    CellKey `json:"end"`
}

// TickEvent is emitted when a tick is discarded.
type TickEvent struct {
	EventBase
	Elapsed float64 `json:"elapsed"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnPhaseEnter    func(context.Context, *PhaseEvent)
	OnPhaseLeave    func(context.Context, *PhaseEvent)
	OnWaypoint      func(context.Context, *WaypointEvent)
	OnMazeInstalled func(context.Context, *MazeEvent)
	OnTickSkipped   func(context.Context, *TickEvent)
}
