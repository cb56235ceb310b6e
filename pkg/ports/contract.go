package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contractGraph is a 2x2 maze shaped like a U: 0-2-3-1.
func contractGraph() *domain.Graph {
	return &domain.Graph{
		Width:  2,
		Height: 2,
		Start:  0,
		End:    1,
		Cells: []domain.Cell{
			{Key: 0, X: 0, Y: 0, PotentialEdges: []domain.CellKey{1, 2}, Edges: []domain.CellKey{2}},
			{Key: 1, X: 1, Y: 0, PotentialEdges: []domain.CellKey{0, 3}, Edges: []domain.CellKey{3}},
			{Key: 2, X: 0, Y: 1, PotentialEdges: []domain.CellKey{0, 3}, Edges: []domain.CellKey{0, 3}},
			{Key: 3, X: 1, Y: 1, PotentialEdges: []domain.CellKey{1, 2}, Edges: []domain.CellKey{2, 1}},
		},
	}
}

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore
// implementation adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	snap := domain.Snapshot{
		MazeID:       "maze-contract",
		Cycle:        2,
		Phase:        domain.PhaseTraversing,
		RevealAmount: 1,
		Pose:         domain.Pose{Position: domain.Vec2{X: 0.5, Y: 1.25}, Heading: 1.5},
		Cursor:       domain.Cursor{Previous: 0, Target: 2, Lookahead: 3},
		Ticks:        42,
		Waypoints:    1,
		Graph:        contractGraph(),
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, sessionID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snap.WithoutGraph(), loaded.WithoutGraph())
		require.NotNil(t, loaded.Graph)
		assert.Equal(t, snap.Graph.Cells, loaded.Graph.Cells)
		assert.Equal(t, snap.Graph.End, loaded.Graph.End)
	})

	t.Run("Save Replaces", func(t *testing.T) {
		next := snap
		next.Ticks = 43
		next.Phase = domain.PhaseHiding
		require.NoError(t, store.Save(ctx, sessionID, next))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, uint64(43), loaded.Ticks)
		assert.Equal(t, domain.PhaseHiding, loaded.Phase)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, snap))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, snap)
		_ = store.Save(ctx, id2, snap)

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
