package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cooldownKeyPrefix = "cooldown:"

// RedisAdapter tracks last-allocation timestamps in Redis, for deployments
// that want cooldowns to survive a process restart. Keys expire after the
// retention period, which must be at least the longest configured cooldown.
type RedisAdapter struct {
	client    *redis.Client
	retention time.Duration
}

func NewRedisAdapter(client *redis.Client, retention time.Duration) *RedisAdapter {
	return &RedisAdapter{client: client, retention: retention}
}

func (r *RedisAdapter) LastAllocation(ctx context.Context, principalID string) (time.Time, bool, error) {
	nanos, err := r.client.Get(ctx, cooldownKeyPrefix+principalID).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("get cooldown: %w", err)
	}
	return time.Unix(0, nanos), true, nil
}

func (r *RedisAdapter) Record(ctx context.Context, principalID string, at time.Time) error {
	err := r.client.Set(ctx, cooldownKeyPrefix+principalID, at.UnixNano(), r.retention).Err()
	if err != nil {
		return fmt.Errorf("set cooldown: %w", err)
	}
	return nil
}
