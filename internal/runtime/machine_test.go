package runtime_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/aretw0/mazewalk/internal/runtime"
	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("maze-%d", n)
	}
}

func newMachine(t *testing.T, width, height int, opts ...runtime.MachineOption) *runtime.Machine {
	t.Helper()
	base := []runtime.MachineOption{
		runtime.WithRand(rand.New(rand.NewPCG(1, 2))),
		runtime.WithIDGenerator(sequentialIDs()),
	}
	m, err := runtime.NewMachine(width, height, append(base, opts...)...)
	require.NoError(t, err)
	return m
}

func TestMachine_InitialState(t *testing.T) {
	m := newMachine(t, 10, 10)

	snap := m.Snapshot()
	assert.Equal(t, domain.PhaseRevealing, snap.Phase)
	assert.Equal(t, 0.0, snap.RevealAmount)
	assert.Equal(t, "maze-1", snap.MazeID)
	assert.Equal(t, 0, snap.Cycle)
	require.NotNil(t, snap.Graph)
	require.NoError(t, snap.Graph.Validate())

	start := snap.Graph.Cells[snap.Graph.Start]
	assert.Equal(t, domain.Cursor{Previous: start.Key, Target: start.Edges[0], Lookahead: start.Edges[0]}, snap.Cursor)
	assert.Equal(t, snap.Graph.Center(start.Key), snap.Pose.Position)
}

func TestMachine_RevealClamps(t *testing.T) {
	m := newMachine(t, 5, 5, runtime.WithRevealRate(4))
	ctx := context.Background()

	require.NoError(t, m.Tick(ctx, 0.1))
	assert.InDelta(t, 0.4, m.Snapshot().RevealAmount, 1e-12)
	require.NoError(t, m.Tick(ctx, 0.1))
	assert.Equal(t, domain.PhaseRevealing, m.Phase())

	require.NoError(t, m.Tick(ctx, 0.1))
	assert.Equal(t, 1.0, m.Snapshot().RevealAmount)
	assert.Equal(t, domain.PhaseTraversing, m.Phase())
}

func TestMachine_NegativeRateClamps(t *testing.T) {
	m := newMachine(t, 5, 5, runtime.WithRevealRate(-3))
	ctx := context.Background()

	for range 10 {
		require.NoError(t, m.Tick(ctx, 0.05))
	}
	assert.Equal(t, 0.0, m.Snapshot().RevealAmount)
	assert.Equal(t, domain.PhaseRevealing, m.Phase())
}

func TestMachine_SkipsOversizedTicks(t *testing.T) {
	var skipped []float64
	hooks := domain.LifecycleHooks{
		OnTickSkipped: func(_ context.Context, e *domain.TickEvent) {
			skipped = append(skipped, e.Elapsed)
		},
	}
	m := newMachine(t, 5, 5, runtime.WithLifecycleHooks(hooks))
	ctx := context.Background()
	before := m.Snapshot()

	require.NoError(t, m.Tick(ctx, 0.5))
	require.NoError(t, m.Tick(ctx, -0.01))

	after := m.Snapshot()
	assert.Equal(t, before.RevealAmount, after.RevealAmount)
	assert.Equal(t, before.Pose, after.Pose)
	assert.Equal(t, uint64(0), after.Ticks)
	assert.Equal(t, []float64{0.5, -0.01}, skipped)

	// The threshold itself is still applied.
	require.NoError(t, m.Tick(ctx, runtime.DefaultMaxTick))
	assert.Equal(t, uint64(1), m.Snapshot().Ticks)
	assert.Greater(t, m.Snapshot().RevealAmount, 0.0)
}

func TestMachine_NeverHidesByDefault(t *testing.T) {
	m := newMachine(t, 4, 4, runtime.WithRevealRate(100))
	ctx := context.Background()

	for range 2000 {
		require.NoError(t, m.Tick(ctx, 0.05))
	}
	snap := m.Snapshot()
	assert.Equal(t, domain.PhaseTraversing, snap.Phase)
	assert.Equal(t, 1.0, snap.RevealAmount)
	assert.Positive(t, snap.Waypoints)
	assert.Equal(t, 0, snap.Cycle)
}

func TestMachine_HideAndRegenerate(t *testing.T) {
	var entered, left []domain.Phase
	var installed []string
	hooks := domain.LifecycleHooks{
		OnPhaseEnter: func(_ context.Context, e *domain.PhaseEvent) {
			entered = append(entered, e.Phase)
		},
		OnPhaseLeave: func(_ context.Context, e *domain.PhaseEvent) {
			left = append(left, e.Phase)
		},
		OnMazeInstalled: func(_ context.Context, e *domain.MazeEvent) {
			installed = append(installed, e.MazeID)
		},
	}

	m := newMachine(t, 6, 6,
		runtime.WithRevealRate(10),
		runtime.WithHidePredicate(runtime.HideAfter(0.2)),
		runtime.WithLifecycleHooks(hooks),
	)
	ctx := context.Background()
	first := m.Graph()

	require.NoError(t, m.Tick(ctx, 0.1)) // reveal reaches 1
	assert.Equal(t, domain.PhaseTraversing, m.Phase())

	require.NoError(t, m.Tick(ctx, 0.1))
	require.NoError(t, m.Tick(ctx, 0.1)) // 0.2s of traversal
	assert.Equal(t, domain.PhaseHiding, m.Phase())
	assert.Equal(t, 1.0, m.Snapshot().RevealAmount)

	require.NoError(t, m.Tick(ctx, 0.1)) // reveal drops to 0
	snap := m.Snapshot()
	assert.Equal(t, domain.PhaseRevealing, snap.Phase)
	assert.Equal(t, 0.0, snap.RevealAmount)
	assert.Equal(t, 1, snap.Cycle)
	assert.Equal(t, "maze-2", snap.MazeID)
	assert.Equal(t, 0.0, snap.TraversalSeconds)
	assert.NotSame(t, first, snap.Graph)
	assert.Equal(t, snap.Graph.Center(snap.Graph.Start), snap.Pose.Position)

	assert.Equal(t, []domain.Phase{domain.PhaseRevealing, domain.PhaseTraversing, domain.PhaseHiding, domain.PhaseRevealing}, entered)
	assert.Equal(t, []domain.Phase{domain.PhaseRevealing, domain.PhaseTraversing, domain.PhaseHiding}, left)
	assert.Equal(t, []string{"maze-1", "maze-2"}, installed)
}

func TestMachine_HideOnEndReached(t *testing.T) {
	var waypoints []domain.CellKey
	hooks := domain.LifecycleHooks{
		OnWaypoint: func(_ context.Context, e *domain.WaypointEvent) {
			waypoints = append(waypoints, e.Cell)
		},
	}
	m := newMachine(t, 2, 1,
		runtime.WithRevealRate(20),
		runtime.WithHidePredicate(runtime.HideOnEndReached),
		runtime.WithLifecycleHooks(hooks),
	)
	ctx := context.Background()
	end := m.Graph().End

	for i := 0; m.Phase() != domain.PhaseHiding; i++ {
		require.Less(t, i, 1000)
		require.NoError(t, m.Tick(ctx, 0.05))
	}

	assert.Equal(t, []domain.CellKey{end}, waypoints)
	assert.Equal(t, 1, m.Snapshot().Waypoints)
}

func TestMachine_Deterministic(t *testing.T) {
	run := func() domain.Snapshot {
		m := newMachine(t, 12, 9, runtime.WithRevealRate(2), runtime.WithHidePredicate(runtime.HideAfter(3)))
		for range 500 {
			require.NoError(t, m.Tick(context.Background(), 1.0/60))
		}
		return m.Snapshot()
	}

	a, b := run(), run()
	assert.Equal(t, a, b)
}

func TestMachine_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []runtime.MachineOption
	}{
		{"Zero move speed", []runtime.MachineOption{runtime.WithMotion(0, 1)}},
		{"Negative rotate speed", []runtime.MachineOption{runtime.WithMotion(1, -1)}},
		{"Zero max tick", []runtime.MachineOption{runtime.WithMaxTick(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runtime.NewMachine(5, 5, tt.opts...)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}

	_, err := runtime.NewMachine(1, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidDimensions)
}
