// Package lock serializes writers per key (per sak). RedisLocker is used
// when several instances share a database; MemoryLocker otherwise.
package lock

import (
	"context"
	"time"
)

// Locker acquires an exclusive lock on key. The returned release function
// must be called exactly once. A lock that cannot be acquired before the
// context is done yields sentinel.ErrLockHeld.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

// defaultTimeout bounds how long Lock waits when the context has no deadline.
const defaultTimeout = 2 * time.Second

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
