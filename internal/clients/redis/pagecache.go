package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vostrano/heritage-backend/internal/logger"
)

// PageCache stores rendered page payloads keyed by slug+viewport so the
// public site can skip recomposing layouts on every request.
type PageCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, payload string, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
	InvalidatePrefix(ctx context.Context, prefix string) error
	Close() error
}

type pageCache struct {
	log       *logger.Logger
	rdb       *goredis.Client
	keyPrefix string
}

func NewPageCache(log *logger.Logger) (PageCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(os.Getenv("REDIS_PAGE_PREFIX"))
	if prefix == "" {
		prefix = "page"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &pageCache{
		log:       log.With("service", "RedisPageCache"),
		rdb:       rdb,
		keyPrefix: prefix,
	}, nil
}

func (c *pageCache) fullKey(key string) string {
	return c.keyPrefix + ":" + key
}

func (c *pageCache) Get(ctx context.Context, key string) (string, bool, error) {
	if c == nil || c.rdb == nil {
		return "", false, fmt.Errorf("page cache not initialized")
	}
	val, err := c.rdb.Get(ctx, c.fullKey(key)).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *pageCache) Set(ctx context.Context, key string, payload string, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("page cache not initialized")
	}
	return c.rdb.Set(ctx, c.fullKey(key), payload, ttl).Err()
}

func (c *pageCache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("page cache not initialized")
	}
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.fullKey(k)
	}
	return c.rdb.Del(ctx, full...).Err()
}

// InvalidatePrefix walks matching keys with SCAN so a site save can drop every
// cached viewport variant of its pages in one call.
func (c *pageCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("page cache not initialized")
	}
	pattern := c.fullKey(prefix) + "*"
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (c *pageCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
