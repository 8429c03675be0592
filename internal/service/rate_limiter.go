package service

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window per-key counter guarding the booking
// endpoint. The interface keeps callers independent of where the counter
// lives: the deployment uses Redis, tests use an in-process map.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// redisRateLimiter counts attempts in Redis. INCR plus a window-sized
// EXPIRE on the first hit gives a fixed window shared across instances.
type redisRateLimiter struct {
	client *redis.Client
	prefix string
	window time.Duration
	max    int
}

func NewRedisRateLimiter(client *redis.Client, prefix string, window time.Duration, max int) RateLimiter {
	return &redisRateLimiter{
		client: client,
		prefix: prefix,
		window: window,
		max:    max,
	}
}

func (l *redisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.prefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, err
		}
	}

	return count <= int64(l.max), nil
}

// memoryRateLimiter keeps the windows in process. Not safe across
// multiple instances; state is lost on restart.
type memoryRateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	size    time.Duration
	max     int
	now     func() time.Time
}

type window struct {
	start time.Time
	count int
}

func newMemoryRateLimiter(size time.Duration, max int) *memoryRateLimiter {
	return &memoryRateLimiter{
		windows: make(map[string]*window),
		size:    size,
		max:     max,
		now:     time.Now,
	}
}

func (l *memoryRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.size {
		l.windows[key] = &window{start: now, count: 1}
		return true, nil
	}

	w.count++
	return w.count <= l.max, nil
}
