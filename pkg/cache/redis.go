package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores cache entries in Redis, alongside a parallel metadata
// key used to drive TTL-based cleanup without relying on Redis's own key
// expiry (so CleanupExpired stays explicit and testable).
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to redisURL (e.g. "redis://localhost:6379/0") and
// verifies the connection with a PING.
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// Close releases the underlying Redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) dataKey(key Key) string { return "urx:cache:" + key.String() }
func (c *RedisCache) metaKey(key Key) string { return "urx:meta:" + key.String() }

type redisMeta struct {
	Domain    string `json:"domain"`
	Timestamp string `json:"timestamp"`
}

func (c *RedisCache) Get(ctx context.Context, key Key) (*Entry, error) {
	value, err := c.client.Get(ctx, c.dataKey(key)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading redis cache entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal([]byte(value), &entry); err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}
	return &entry, nil
}

func (c *RedisCache) Set(ctx context.Context, key Key, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	if err := c.client.Set(ctx, c.dataKey(key), payload, 0).Err(); err != nil {
		return fmt.Errorf("writing redis cache entry: %w", err)
	}

	meta, err := json.Marshal(redisMeta{Domain: key.Domain, Timestamp: entry.Timestamp.Format(time.RFC3339)})
	if err != nil {
		return fmt.Errorf("encoding cache metadata: %w", err)
	}
	if err := c.client.Set(ctx, c.metaKey(key), meta, 0).Err(); err != nil {
		return fmt.Errorf("writing redis cache metadata: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key Key) error {
	if err := c.client.Del(ctx, c.dataKey(key), c.metaKey(key)).Err(); err != nil {
		return fmt.Errorf("deleting redis cache entry: %w", err)
	}
	return nil
}

func (c *RedisCache) CleanupExpired(ctx context.Context, ttl time.Duration) error {
	cutoff := time.Now().Add(-ttl)

	metaKeys, err := c.client.Keys(ctx, "urx:meta:*").Result()
	if err != nil {
		return fmt.Errorf("listing redis cache metadata: %w", err)
	}

	for _, metaKey := range metaKeys {
		raw, err := c.client.Get(ctx, metaKey).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return fmt.Errorf("reading redis cache metadata: %w", err)
		}

		var meta redisMeta
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			continue
		}
		ts, err := time.Parse(time.RFC3339, meta.Timestamp)
		if err != nil || ts.After(cutoff) {
			continue
		}

		dataKey := "urx:cache:" + strings.TrimPrefix(metaKey, "urx:meta:")
		if err := c.client.Del(ctx, dataKey, metaKey).Err(); err != nil {
			return fmt.Errorf("deleting expired redis cache entry: %w", err)
		}
	}
	return nil
}

func (c *RedisCache) Exists(ctx context.Context, key Key) (bool, error) {
	n, err := c.client.Exists(ctx, c.dataKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("checking redis cache entry: %w", err)
	}
	return n > 0, nil
}
