// Package cache implements the bookmark read-through cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joestump/joe-bookmarks/internal/bookmark"
)

// DefaultTTL bounds how long a cached row may outlive a write made by
// another process against the same database.
const DefaultTTL = 10 * time.Minute

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache stores bookmarks as JSON strings with a TTL.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// New wraps an existing client. A non-positive ttl selects DefaultTTL.
func New(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Connect dials Redis and verifies the connection with a PING.
func Connect(ctx context.Context, opts Options) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return New(client, opts.TTL), nil
}

// Get returns the cached bookmark, or (nil, nil) on a cache miss.
func (c *RedisCache) Get(ctx context.Context, id string) (*bookmark.Bookmark, error) {
	data, err := c.client.Get(ctx, BookmarkKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached bookmark: %w", err)
	}

	var b bookmark.Bookmark
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached bookmark: %w", err)
	}
	return &b, nil
}

// Set caches b under its id.
func (c *RedisCache) Set(ctx context.Context, b *bookmark.Bookmark) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark: %w", err)
	}
	if err := c.client.Set(ctx, BookmarkKey(b.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache bookmark: %w", err)
	}
	return nil
}

// Delete removes a cached bookmark. Deleting a missing key is not an error.
func (c *RedisCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, BookmarkKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached bookmark: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
