package ports

import (
	"context"
	"errors"
	"time"
)

// ErrLockLost is returned by Lease.Refresh once the lock expired or another
// holder took it.
var ErrLockLost = errors.New("distributed lock lost")

// Lease is a held distributed lock.
type Lease interface {
	// Refresh extends the lock by ttl from now. A zero ttl keeps the current expiry.
	Refresh(ctx context.Context, ttl time.Duration) error
	// Unlock releases the lock if it is still ours.
	Unlock(ctx context.Context) error
}

// DistributedLocker defines the interface for distributed concurrency control.
// Runners use it to keep one writer per session when several replicas publish
// to the same store.
type DistributedLocker interface {
	// Lock blocks until the lock for key is acquired or the context is cancelled.
	// The lock expires after ttl unless refreshed; a zero ttl never expires.
	Lock(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}
