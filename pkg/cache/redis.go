package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/observability"
)

// wrapNetwork tags a non-nil Redis client error as ErrNetwork and marks it
// Retryable, so RetryWithBackoff retries it and callers can errors.Is against
// ErrNetwork once retries are exhausted. A nil error passes through unchanged.
func wrapNetwork(err error) error {
	if err == nil {
		return nil
	}
	return Retryable(fmt.Errorf("%w: %w", ErrNetwork, err))
}

// RedisCache implements Cache over a Redis connection, for the serve
// command's multi-instance deployments where a FileCache's local directory
// wouldn't be shared across processes.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// RedisConfig configures a RedisCache connection.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every key, namespacing this cache's keys
	// within a Redis instance shared with other consumers.
	Prefix string
}

// NewRedisCache opens a connection to cfg.Addr and verifies it with a PING,
// retrying the handshake against transient connection failures.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	err := RetryWithBackoff(ctx, func() error {
		return wrapNetwork(client.Ping(ctx).Err())
	})
	if err != nil {
		return nil, err
	}
	return &RedisCache{client: client, prefix: cfg.Prefix}, nil
}

func (c *RedisCache) key(key string) string { return c.prefix + key }

// Get retrieves a value. A miss (including redis.Nil) returns hit=false
// with no error. Connection-level failures are retried with backoff; a
// genuine miss is not, since it isn't wrapped as Retryable.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	var hit bool
	err := RetryWithBackoff(ctx, func() error {
		d, err := c.client.Get(ctx, c.key(key)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return wrapNetwork(err)
		}
		data, hit = d, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeOf(key))
		return nil, false, nil
	}
	observability.Cache().OnCacheHit(ctx, keyTypeOf(key))
	return data, true, nil
}

// Set stores a value with the given TTL. A zero TTL stores without expiration.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := RetryWithBackoff(ctx, func() error {
		return wrapNetwork(c.client.Set(ctx, c.key(key), data, ttl).Err())
	})
	if err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyTypeOf(key), len(data))
	return nil
}

// Delete removes a value. It is not an error if the key doesn't exist.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return RetryWithBackoff(ctx, func() error {
		return wrapNetwork(c.client.Del(ctx, c.key(key)).Err())
	})
}

// Close closes the underlying Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
