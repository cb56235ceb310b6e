package mazewalk_test

import (
	"context"
	"testing"

	"github.com/aretw0/mazewalk"
	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	eng, err := mazewalk.New(mazewalk.WithSeed(1))
	require.NoError(t, err)

	g := eng.Graph()
	assert.Equal(t, mazewalk.DefaultWidth, g.Width)
	assert.Equal(t, mazewalk.DefaultHeight, g.Height)
	assert.Len(t, g.Details, 1)
	assert.Equal(t, domain.PhaseRevealing, eng.Phase())
	assert.NotEmpty(t, eng.Snapshot().MazeID)
}

func TestNew_InvalidDimensions(t *testing.T) {
	_, err := mazewalk.New(mazewalk.WithDimensions(1, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidDimensions)
}

func TestNew_InvalidMotion(t *testing.T) {
	_, err := mazewalk.New(mazewalk.WithMotion(-1, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestEngine_SeedIsReproducible(t *testing.T) {
	build := func() *mazewalk.Engine {
		eng, err := mazewalk.New(
			mazewalk.WithDimensions(9, 7),
			mazewalk.WithSeed(99),
			mazewalk.WithDetailCells(2),
		)
		require.NoError(t, err)
		return eng
	}

	a, b := build(), build()
	assert.Equal(t, a.Graph(), b.Graph())
}

func TestEngine_FullCycle(t *testing.T) {
	var installed int
	hooks := domain.LifecycleHooks{
		OnMazeInstalled: func(context.Context, *domain.MazeEvent) { installed++ },
	}

	eng, err := mazewalk.New(
		mazewalk.WithDimensions(5, 5),
		mazewalk.WithSeed(3),
		mazewalk.WithRevealRate(5),
		mazewalk.WithHidePredicate(mazewalk.AnyOf(mazewalk.HideOnEndReached, mazewalk.HideAfter(30))),
		mazewalk.WithLifecycleHooks(hooks),
	)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; eng.Snapshot().Cycle == 0; i++ {
		require.Less(t, i, 60*60, "no regeneration within a minute of ticks")
		require.NoError(t, eng.Tick(ctx, 1.0/60))
	}

	assert.Equal(t, 2, installed)
	assert.Equal(t, domain.PhaseRevealing, eng.Phase())
}
