package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisAccessCache stores access verdicts in Redis so that in a
// multi-instance deployment every instance shares one TTL window per
// (conversation, requester) pair. Redis errors degrade to cache misses; the
// store remains the source of truth either way.
type RedisAccessCache struct {
	client *goredis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisAccessCache connects to a Redis-compatible URL and verifies the
// connection with a ping.
func NewRedisAccessCache(ctx context.Context, redisURL string, ttl time.Duration, log *zap.Logger) (*RedisAccessCache, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("access cache: invalid redis URL: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("access cache: redis ping failed: %w", err)
	}
	return NewRedisAccessCacheWithClient(client, ttl, log), nil
}

// NewRedisAccessCacheWithClient wraps an existing client; used by tests.
func NewRedisAccessCacheWithClient(client *goredis.Client, ttl time.Duration, log *zap.Logger) *RedisAccessCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisAccessCache{client: client, ttl: ttl, log: log}
}

func redisKey(key string) string {
	return "conversation-access:" + key
}

func (c *RedisAccessCache) Get(ctx context.Context, key string) (Entry, bool) {
	data, err := c.client.Get(ctx, redisKey(key)).Bytes()
	if err == goredis.Nil {
		return Entry{}, false
	}
	if err != nil {
		c.log.Warn("access cache redis get failed", zap.String("key", key), zap.Error(err))
		return Entry{}, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.log.Warn("access cache entry corrupt", zap.String("key", key), zap.Error(err))
		return Entry{}, false
	}
	return entry, true
}

func (c *RedisAccessCache) Put(ctx context.Context, key string, entry Entry) {
	data, err := json.Marshal(entry)
	if err != nil {
		c.log.Warn("access cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, redisKey(key), data, c.ttl).Err(); err != nil {
		c.log.Warn("access cache redis set failed", zap.String("key", key), zap.Error(err))
	}
}

// Close releases the underlying client.
func (c *RedisAccessCache) Close() error {
	return c.client.Close()
}

var _ ConversationAccessCache = (*RedisAccessCache)(nil)
