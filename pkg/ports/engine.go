package ports

import (
	"context"

	"github.com/aretw0/mazewalk/pkg/domain"
)

// Engine is the tickable core that hosts drive once per frame.
// Implementations are owned by a single goroutine.
type Engine interface {
	// Tick advances the engine by elapsed seconds of wall time.
	Tick(ctx context.Context, elapsed float64) error

	// Snapshot returns the read model of the current frame.
	Snapshot() domain.Snapshot
}
