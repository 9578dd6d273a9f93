// ABOUTME: Redis-backed implementation of the session store
// ABOUTME: Lets sessions survive process restarts when REDIS_ADDR is configured

package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements Store on top of a Redis server.
type Redis struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedis creates a store backed by the Redis server at addr.
func NewRedis(addr string) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Redis{
		client: rdb,
		ctx:    context.Background(),
	}
}

func (r *Redis) Get(key string) ([]byte, bool) {
	val, err := r.client.Get(r.ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("Redis get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return val, true
}

func (r *Redis) Set(key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(r.ctx, key, value, ttl).Err(); err != nil {
		slog.Warn("Redis set failed", "key", key, "error", err)
	}
}

func (r *Redis) Delete(key string) {
	if err := r.client.Del(r.ctx, key).Err(); err != nil {
		slog.Warn("Redis delete failed", "key", key, "error", err)
	}
}

// Ping verifies connectivity at startup.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
