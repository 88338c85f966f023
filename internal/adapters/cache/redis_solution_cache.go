package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"distribution-planner/internal/api/dto"
	"distribution-planner/internal/domain"
	"distribution-planner/internal/platform/obs"
	"distribution-planner/internal/ports"
)

const solutionKeyPrefix = "solution:"

// RedisSolutionCache keeps solved datasets in Redis as JSON with a TTL.
type RedisSolutionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSolutionCache(rdb *redis.Client, ttl time.Duration) *RedisSolutionCache {
	return &RedisSolutionCache{rdb: rdb, ttl: ttl}
}

// NewRedisSolutionCacheFromURL parses a redis:// URL and verifies the connection.
func NewRedisSolutionCacheFromURL(ctx context.Context, url string, ttl time.Duration) (*RedisSolutionCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis solution cache: parse url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis solution cache: ping: %w", err)
	}
	return NewRedisSolutionCache(rdb, ttl), nil
}

func solutionKey(fingerprint, mode string) string {
	return solutionKeyPrefix + fingerprint + ":" + mode
}

func (c *RedisSolutionCache) Get(ctx context.Context, fingerprint, mode string) (_ *domain.Solution, err error) {
	defer obs.Time(ctx, "solution.cache.Get")(&err)

	data, err := c.rdb.Get(ctx, solutionKey(fingerprint, mode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cached solution: %w", err)
	}

	sol, err := dto.UnmarshalSolution(data)
	if err != nil {
		return nil, fmt.Errorf("get cached solution: decode: %w", err)
	}
	return sol, nil
}

func (c *RedisSolutionCache) Put(ctx context.Context, fingerprint, mode string, sol *domain.Solution) error {
	data, err := dto.MarshalSolution(sol)
	if err != nil {
		return fmt.Errorf("put cached solution: encode: %w", err)
	}
	if err := c.rdb.Set(ctx, solutionKey(fingerprint, mode), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("put cached solution: %w", err)
	}
	return nil
}

func (c *RedisSolutionCache) Close() error {
	return c.rdb.Close()
}
