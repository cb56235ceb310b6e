package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/aretw0/mazewalk/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestFrameSinkFunc(t *testing.T) {
	var got domain.Snapshot
	var sink ports.FrameSink = ports.FrameSinkFunc(func(_ context.Context, snap domain.Snapshot) error {
		got = snap
		return nil
	})

	err := sink.Present(context.Background(), domain.Snapshot{MazeID: "m", Ticks: 3})
	assert.NoError(t, err)
	assert.Equal(t, "m", got.MazeID)
	assert.Equal(t, uint64(3), got.Ticks)
}
