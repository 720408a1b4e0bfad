package lock

import (
	"context"
	"fmt"
	"time"

	"supstonad/pkg/platform/sentinel"
)

// numShards spreads keys over independent locks. Two keys hashing to the same
// shard serialize, which is harmless.
const numShards = 128

// MemoryLocker is a sharded in-process lock keyed by FNV-1a hash.
type MemoryLocker struct {
	shards  [numShards]chan struct{}
	timeout time.Duration
}

func NewMemoryLocker(timeout time.Duration) *MemoryLocker {
	l := &MemoryLocker{timeout: timeout}
	for i := range l.shards {
		l.shards[i] = make(chan struct{}, 1)
	}
	return l
}

func (l *MemoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	ctx, cancel := withTimeout(ctx, l.timeout)
	defer cancel()

	shard := l.shards[hash(key)%numShards]
	select {
	case shard <- struct{}{}:
		return func() { <-shard }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("lock %s: %w", key, sentinel.ErrLockHeld)
	}
}

// hash uses FNV-1a for better distribution than simple multiply-add.
func hash(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}
