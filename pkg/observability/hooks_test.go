package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/stretchr/testify/assert"
)

type countingRecorder struct {
	NoopRecorder
	transitions []string
	mazes       int
	waypoints   int
	skipped     int
	reveal      float64
}

func (c *countingRecorder) IncPhaseTransition(from, to string) {
	c.transitions = append(c.transitions, from+"->"+to)
}
func (c *countingRecorder) IncMazesGenerated()        { c.mazes++ }
func (c *countingRecorder) IncWaypoints()             { c.waypoints++ }
func (c *countingRecorder) IncTicksSkipped()          { c.skipped++ }
func (c *countingRecorder) SetRevealAmount(v float64) { c.reveal = v }

func TestHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rec := &countingRecorder{}
	hooks := Hooks(logger, rec)
	ctx := context.Background()

	base := func(typ domain.EventType) domain.EventBase {
		return domain.EventBase{Timestamp: time.Now(), Type: typ, MazeID: "m1"}
	}

	hooks.OnMazeInstalled(ctx, &domain.MazeEvent{EventBase: base(domain.EventMazeInstalled), Width: 4, Height: 3})
	hooks.OnPhaseEnter(ctx, &domain.PhaseEvent{EventBase: base(domain.EventPhaseEnter), Phase: domain.PhaseRevealing})
	hooks.OnPhaseLeave(ctx, &domain.PhaseEvent{EventBase: base(domain.EventPhaseLeave), Phase: domain.PhaseRevealing, RevealAmount: 1})
	hooks.OnPhaseEnter(ctx, &domain.PhaseEvent{EventBase: base(domain.EventPhaseEnter), Phase: domain.PhaseTraversing, RevealAmount: 1})
	hooks.OnWaypoint(ctx, &domain.WaypointEvent{EventBase: base(domain.EventWaypoint), Cell: 2})
	hooks.OnTickSkipped(ctx, &domain.TickEvent{EventBase: base(domain.EventTickSkipped), Elapsed: 0.4})

	assert.Equal(t, []string{"revealing->traversing"}, rec.transitions)
	assert.Equal(t, 1, rec.mazes)
	assert.Equal(t, 1, rec.waypoints)
	assert.Equal(t, 1, rec.skipped)
	assert.Equal(t, 1.0, rec.reveal)

	out := buf.String()
	assert.Contains(t, out, "msg=maze_installed")
	assert.Contains(t, out, "phase=traversing")
	assert.Contains(t, out, "msg=tick_skipped")
}

func TestHooks_NilDependencies(t *testing.T) {
	hooks := Hooks(nil, nil)
	assert.NotPanics(t, func() {
		hooks.OnWaypoint(context.Background(), &domain.WaypointEvent{})
	})
}

func TestChain(t *testing.T) {
	var order []string
	first := domain.LifecycleHooks{
		OnWaypoint: func(context.Context, *domain.WaypointEvent) { order = append(order, "first") },
	}
	second := domain.LifecycleHooks{
		OnWaypoint: func(context.Context, *domain.WaypointEvent) { order = append(order, "second") },
	}

	hooks := Chain(first, domain.LifecycleHooks{}, second)
	hooks.OnWaypoint(context.Background(), &domain.WaypointEvent{})
	hooks.OnPhaseEnter(context.Background(), &domain.PhaseEvent{})

	assert.Equal(t, []string{"first", "second"}, order)
}
