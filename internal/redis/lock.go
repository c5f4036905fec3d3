package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// releaseScript deletes the lock key only if it still holds our token,
// so an expired lock reacquired by another worker is never released here.
var releaseScript = rueidis.NewLuaScript(
	`if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end`,
)

// PairLock serializes the gate re-check and dispatch for one unordered
// user pair across all workers. Locks expire after a TTL so a crashed
// holder cannot wedge a pair forever.
type PairLock struct {
	client rueidis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewPairLock creates a pair lock backed by the given Redis client.
func NewPairLock(client rueidis.Client, ttl time.Duration, logger *zap.Logger) *PairLock {
	return &PairLock{
		client: client,
		ttl:    ttl,
		logger: logger.Named("pair_lock"),
	}
}

// Acquire attempts to take the lock for a pair key. It returns a release
// function on success, or false when another holder owns the lock.
func (l *PairLock) Acquire(ctx context.Context, pairKey string) (func(), bool, error) {
	key := "pairlock:" + pairKey
	token := uuid.New().String()

	err := l.client.Do(ctx, l.client.B().Set().
		Key(key).
		Value(token).
		Nx().
		Px(l.ttl).
		Build()).Error()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			// Another holder owns the lock
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("failed to acquire pair lock: %w", err)
	}

	release := func() {
		resp := releaseScript.Exec(context.WithoutCancel(ctx), l.client, []string{key}, []string{token})
		if err := resp.Error(); err != nil {
			l.logger.Warn("Failed to release pair lock",
				zap.String("pairKey", pairKey),
				zap.Error(err))
		}
	}

	return release, true, nil
}
