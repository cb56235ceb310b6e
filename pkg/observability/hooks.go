package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/mazewalk/pkg/domain"
)

// Hooks returns lifecycle hooks that log every event and feed rec.
// A nil logger or recorder disables that side.
func Hooks(logger *slog.Logger, rec Recorder) domain.LifecycleHooks {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if rec == nil {
		rec = NoopRecorder{}
	}

	// Phase changes come as leave/enter pairs; the pending leave gives the
	// "from" label of the next enter.
	var leaving string

	return domain.LifecycleHooks{
		OnPhaseEnter: func(ctx context.Context, e *domain.PhaseEvent) {
			logger.Info("phase_enter", "maze_id", e.MazeID, "phase", e.Phase, "reveal", e.RevealAmount)
			if leaving != "" {
				rec.IncPhaseTransition(leaving, e.Phase.String())
				leaving = ""
			}
			rec.SetRevealAmount(e.RevealAmount)
		},
		OnPhaseLeave: func(ctx context.Context, e *domain.PhaseEvent) {
			logger.Debug("phase_leave", "maze_id", e.MazeID, "phase", e.Phase)
			leaving = e.Phase.String()
		},
		OnWaypoint: func(ctx context.Context, e *domain.WaypointEvent) {
			logger.Debug("waypoint", "maze_id", e.MazeID, "cell", e.Cell, "target", e.Cursor.Target)
			rec.IncWaypoints()
		},
		OnMazeInstalled: func(ctx context.Context, e *domain.MazeEvent) {
			logger.Info("maze_installed",
				"maze_id", e.MazeID,
				"cycle", e.Cycle,
				"width", e.Width,
				"height", e.Height,
			)
			rec.IncMazesGenerated()
		},
		OnTickSkipped: func(ctx context.Context, e *domain.TickEvent) {
			logger.Warn("tick_skipped", "maze_id", e.MazeID, "elapsed", e.Elapsed)
			rec.IncTicksSkipped()
		},
	}
}

// Chain merges several hook sets; each event is delivered to every set in order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPhaseEnter: func(ctx context.Context, e *domain.PhaseEvent) {
			for _, h := range sets {
				if h.OnPhaseEnter != nil {
					h.OnPhaseEnter(ctx, e)
				}
			}
		},
		OnPhaseLeave: func(ctx context.Context, e *domain.PhaseEvent) {
			for _, h := range sets {
				if h.OnPhaseLeave != nil {
					h.OnPhaseLeave(ctx, e)
				}
			}
		},
		OnWaypoint: func(ctx context.Context, e *domain.WaypointEvent) {
			for _, h := range sets {
				if h.OnWaypoint != nil {
					h.OnWaypoint(ctx, e)
				}
			}
		},
		OnMazeInstalled: func(ctx context.Context, e *domain.MazeEvent) {
			for _, h := range sets {
				if h.OnMazeInstalled != nil {
					h.OnMazeInstalled(ctx, e)
				}
			}
		},
		OnTickSkipped: func(ctx context.Context, e *domain.TickEvent) {
			for _, h := range sets {
				if h.OnTickSkipped != nil {
					h.OnTickSkipped(ctx, e)
				}
			}
		},
	}
}
