package ports

import (
	"context"

	"github.com/aretw0/mazewalk/pkg/domain"
)

// SnapshotStore holds the latest published frame of each session.
// It is a feed for concurrent readers, not durable storage: a new run never
// resumes from it.
type SnapshotStore interface {
	// Save replaces the snapshot of a session.
	Save(ctx context.Context, sessionID string, snap domain.Snapshot) error

	// Load retrieves the snapshot of a session, graph included.
	// Returns domain.ErrSnapshotNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (domain.Snapshot, error)

	// Delete removes the snapshot of a session.
	Delete(ctx context.Context, sessionID string) error

	// List returns the sessions with a published snapshot.
	List(ctx context.Context) ([]string, error)
}
