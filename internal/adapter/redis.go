package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of Redis used by the shared cache and the distributed rate limiter
//
//go:generate mockgen -source=redis.go -destination=../mocks/redis.go -package=mocks -mock_names=RedisClient=MockRedisClient,RedisRateLimiter=MockRedisRateLimiter
type RedisClient interface {
	Ping(ctx context.Context) error
	// Get fails with an error satisfying IsRedisNil when the key is absent
	Get(ctx context.Context, key string) (string, error)
	// Set with a zero ttl keeps the key until deleted
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	// NewRateLimiter returns a GCRA limiter sharing this connection pool
	NewRateLimiter() RedisRateLimiter
	Close() error
}

// RedisRateLimiter is a distributed limiter keyed by an arbitrary string
type RedisRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

type goRedis struct {
	rdb *redis.Client
}

// NewRedisClientFromURL connects lazily to a redis:// or rediss:// URL
func NewRedisClientFromURL(url string) (RedisClient, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &goRedis{rdb: redis.NewClient(opts)}, nil
}

// IsRedisNil reports whether err signals a missing key
func IsRedisNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

func (r *goRedis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *goRedis) Get(ctx context.Context, key string) (string, error) {
	return r.rdb.Get(ctx, key).Result()
}

func (r *goRedis) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, value, ttl).Err()
}

func (r *goRedis) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.rdb.Del(ctx, keys...).Err()
}

func (r *goRedis) NewRateLimiter() RedisRateLimiter {
	return redis_rate.NewLimiter(r.rdb)
}

func (r *goRedis) Close() error {
	return r.rdb.Close()
}
