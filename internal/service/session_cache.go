package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/classroom-hub/classroom-backend/internal/config"
	"github.com/classroom-hub/classroom-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// SessionCache keeps resolved principals close to the request path.
// Get returns nil and no error on a miss.
type SessionCache interface {
	Get(ctx context.Context, token string) (*model.Principal, error)
	Set(ctx context.Context, token string, p *model.Principal, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

// RedisSessionCache stores principals as JSON under config.CacheKey.SessionKey.
type RedisSessionCache struct {
	rdb *redis.Client
}

// NewRedisSessionCache creates a new RedisSessionCache.
func NewRedisSessionCache(rdb *redis.Client) *RedisSessionCache {
	return &RedisSessionCache{rdb: rdb}
}

func (c *RedisSessionCache) Get(ctx context.Context, token string) (*model.Principal, error) {
	raw, err := c.rdb.Get(ctx, config.CacheKey.SessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached session: %w", err)
	}

	var p model.Principal
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode cached session: %w", err)
	}
	return &p, nil
}

func (c *RedisSessionCache) Set(ctx context.Context, token string, p *model.Principal, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return c.rdb.Set(ctx, config.CacheKey.SessionKey(token), raw, ttl).Err()
}

func (c *RedisSessionCache) Delete(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, config.CacheKey.SessionKey(token)).Err()
}
