package ports

import (
	"context"

	"github.com/aretw0/mazewalk/pkg/domain"
)

// FrameSink presents frames produced by the engine.
// The host calls it after every applied tick; it must not retain the graph
// beyond the call unless it treats it as read-only.
type FrameSink interface {
	Present(ctx context.Context, snap domain.Snapshot) error
}

// FrameSinkFunc adapts a function to FrameSink.
type FrameSinkFunc func(ctx context.Context, snap domain.Snapshot) error

// Present calls f.
func (f FrameSinkFunc) Present(ctx context.Context, snap domain.Snapshot) error {
	return f(ctx, snap)
}
