package cache

import (
	"context"
	"errors"
	"time"

	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/usecase"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func statusKey(orderID string) string { return "order:status:" + orderID }

// SetStatus stores the status; a zero ttl keeps it forever.
func (r *RedisCache) SetStatus(ctx context.Context, orderID string, status string) error {
	return r.rdb.Set(ctx, statusKey(orderID), status, r.ttl).Err()
}

// GetStatus returns "" without error on a cache miss.
func (r *RedisCache) GetStatus(ctx context.Context, orderID string) (string, error) {
	s, err := r.rdb.Get(ctx, statusKey(orderID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return s, err
}

var _ usecase.OrderCache = (*RedisCache)(nil)
