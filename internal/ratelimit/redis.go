package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter holds resend slots in redis so the window survives restarts
// and holds across service instances.
type RedisLimiter struct {
	client *redis.Client
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisLimiter(opts RedisOptions) *RedisLimiter {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	return &RedisLimiter{client: client}
}

func (l *RedisLimiter) Reserve(ctx context.Context, key string, window time.Duration) (time.Duration, error) {
	redisKey := "verification:resend:" + key

	ok, err := l.client.SetNX(ctx, redisKey, 1, window).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to reserve resend slot: %w", err)
	}
	if ok {
		return 0, nil
	}

	ttl, err := l.client.PTTL(ctx, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read resend slot TTL: %w", err)
	}
	if ttl < 0 {
		// Key vanished between SETNX and PTTL; treat the window as elapsed.
		return time.Second, nil
	}
	return ttl, nil
}

func (l *RedisLimiter) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, "verification:resend:"+key).Err(); err != nil {
		return fmt.Errorf("failed to release resend slot: %w", err)
	}
	return nil
}

// Ping verifies connectivity at startup.
func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
