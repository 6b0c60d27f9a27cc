package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates journey access across replicas. Requests
// for the same journey must be serialized (single writer per context); the
// session manager uses this to extend that guarantee beyond one process.
type DistributedLocker interface {
	// Lock acquires a lock for the key, blocking until acquired or the
	// context is canceled. The returned UnlockFunc MUST be called; the TTL
	// bounds the damage if a holder dies without releasing.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
