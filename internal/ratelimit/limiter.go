package ratelimit

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/logger"
)

const (
	defaultKeyPrefix = "provider-sync:limiter:"

	// redisRetryAfter is how long the limiter stays on the local bucket after a Redis error
	redisRetryAfter = 30 * time.Second
)

// Config configures the provider request limiter
type Config struct {
	RequestsPerSecond int
	Burst             int
	KeyPrefix         string
}

// Limiter throttles outbound provider requests.
// Wait blocks until a request for key may proceed or ctx is done.
//
//go:generate mockgen -source=limiter.go -destination=../mocks/limiter.go -package=mocks -mock_names=Limiter=MockLimiter
type Limiter interface {
	Wait(ctx context.Context, key string) error
}

// limiter enforces a per-key rate shared by every worker through Redis (GCRA).
// When Redis is missing or failing it degrades to an in-process token bucket.
type limiter struct {
	cfg   Config
	redis adapter.RedisRateLimiter
	clock adapter.Clock

	mu          sync.Mutex
	local       map[string]*rate.Limiter
	redisDownAt time.Time
}

// NewLimiter creates a limiter. rc may be nil, in which case only the local bucket is used.
func NewLimiter(cfg Config, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	if cfg.RequestsPerSecond <= 0 {
		return nil, fmt.Errorf("requests_per_second must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerSecond
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}

	l := &limiter{
		cfg:   cfg,
		clock: clock,
		local: make(map[string]*rate.Limiter),
	}
	if rc != nil {
		l.redis = rc.NewRateLimiter()
	}

	return l, nil
}

func (l *limiter) Wait(ctx context.Context, key string) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !l.redisUsable() {
			return l.localLimiter(key).Wait(ctx)
		}

		res, err := l.redis.Allow(ctx, l.cfg.KeyPrefix+key, redis_rate.Limit{
			Rate:   l.cfg.RequestsPerSecond,
			Burst:  l.cfg.Burst,
			Period: time.Second,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			logger.WarnCtx(ctx, "Redis rate limiter error, falling back to local",
				zap.String("key", key),
				zap.Error(err))
			l.markRedisDown()
			continue
		}

		if res.Allowed > 0 {
			return nil
		}

		// Spread retries between 50% and 150% of retryAfter
		wait := time.Duration(float64(res.RetryAfter) * (0.5 + rand.Float64())) //nolint:gosec,G404
		logger.Debug("Rate limit token unavailable, waiting",
			zap.String("key", key),
			zap.Duration("retry_after", res.RetryAfter))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.clock.After(wait):
		}
	}
}

func (l *limiter) redisUsable() bool {
	if l.redis == nil {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.redisDownAt.IsZero() || l.clock.Since(l.redisDownAt) >= redisRetryAfter
}

func (l *limiter) markRedisDown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.redisDownAt = l.clock.Now()
}

func (l *limiter) localLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	rl, ok := l.local[key]
	if !ok {
		rl = rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.Burst)
		l.local[key] = rl
	}
	return rl
}
