// Package cache wraps redis with JSON get/set/del. Backend failures are
// logged here and reported to callers, who treat them as misses: the
// system stays correct with the cache down, just slower.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KeyAllBlogs holds the materialized listing of every post. It is the
// only key the change feed watcher invalidates.
const KeyAllBlogs = "blogs:all"

// Store is the contract the service and watcher layers consume.
type Store interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// commands is the slice of redis.Cmdable the cache needs. *redis.Client
// satisfies it; tests substitute canned results.
type commands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type Cache struct {
	rdb commands
	log *zap.SugaredLogger
}

func New(rdb commands, log *zap.SugaredLogger) *Cache {
	return &Cache{rdb: rdb, log: log}
}

// Get unmarshals the value at key into out. A missing or expired key is
// (false, nil), never an error.
func (c *Cache) Get(ctx context.Context, key string, out any) (bool, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		c.log.Warnf("cache get %s: %v", key, err)
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.log.Warnf("cache decode %s: %v", key, err)
		return false, err
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warnf("cache encode %s: %v", key, err)
		return err
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		c.log.Warnf("cache set %s: %v", key, err)
		return err
	}
	return nil
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warnf("cache del %v: %v", keys, err)
		return err
	}
	return nil
}
