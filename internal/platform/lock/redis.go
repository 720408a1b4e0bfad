package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"supstonad/pkg/platform/sentinel"
)

const (
	// Redis key prefix for sak locks
	lockKeyPrefix = "supstonad:lock:"

	retryInterval = 25 * time.Millisecond
)

// release deletes the key only while it still holds our token, so an expired
// lock taken over by another instance is left alone.
var release = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker takes locks with SET NX PX. The TTL bounds how long a crashed
// holder can block the sak.
type RedisLocker struct {
	client  *redis.Client
	ttl     time.Duration
	timeout time.Duration
}

func NewRedisLocker(client *redis.Client, ttl, timeout time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, timeout: timeout}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	waitCtx, cancel := withTimeout(ctx, l.timeout)
	defer cancel()

	redisKey := lockKeyPrefix + key
	token := uuid.NewString()
	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(waitCtx, redisKey, token, l.ttl).Result()
		if err != nil && waitCtx.Err() == nil {
			return nil, fmt.Errorf("lock %s: %w", key, err)
		}
		if ok {
			return func() {
				// The caller's context may already be done; release on a fresh one.
				ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
				defer cancel()
				_ = release.Run(ctx, l.client, []string{redisKey}, token).Err()
			}, nil
		}
		select {
		case <-ticker.C:
		case <-waitCtx.Done():
			return nil, fmt.Errorf("lock %s: %w", key, sentinel.ErrLockHeld)
		}
	}
}
