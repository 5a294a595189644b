// Package cache keeps serialized collection lists in Redis.
//
// The cache is an optimization only: callers treat every error as a miss
// and fall back to MongoDB.
package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Sakibahmed2/portfolio-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix namespaces list keys in a shared Redis.
	keyPrefix = "portfolio:list:"

	// versionPrefix namespaces the per-collection generation counters.
	versionPrefix = "portfolio:list-version:"
)

// setIfVersion stores the payload only while the collection's generation
// still equals the one the caller read before loading from the database.
// A missing counter counts as generation 0.
//
// KEYS[1] version key, KEYS[2] list key
// ARGV[1] expected version, ARGV[2] payload, ARGV[3] ttl in milliseconds
var setIfVersion = redis.NewScript(`
local current = redis.call("GET", KEYS[1]) or "0"
if current ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
return 1
`)

// NewRedisClient builds a client from config. Connections are lazy.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Ping sends PING and reports the error, if any.
func Ping(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}

// Key returns the Redis key holding a collection's list.
func Key(collection string) string {
	return keyPrefix + collection
}

// VersionKey returns the Redis key holding a collection's generation.
func VersionKey(collection string) string {
	return versionPrefix + collection
}

// ListCache stores one opaque payload per collection.
//
// Every collection has a generation counter. Invalidate bumps it, and
// SetIfVersion refuses payloads loaded under an older generation, so a
// slow reader can never put back a list that predates a write.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	return &ListCache{client: client, ttl: ttl}
}

// Get returns the cached payload. A missing key is (nil, false, nil).
func (c *ListCache) Get(ctx context.Context, collection string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, Key(collection)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Version returns the collection's current generation (0 when unset).
func (c *ListCache) Version(ctx context.Context, collection string) (int64, error) {
	v, err := c.client.Get(ctx, VersionKey(collection)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetIfVersion stores payload with the configured TTL if the generation is
// still version. It reports whether the payload was stored.
func (c *ListCache) SetIfVersion(ctx context.Context, collection string, version int64, payload []byte) (bool, error) {
	stored, err := setIfVersion.Run(ctx, c.client,
		[]string{VersionKey(collection), Key(collection)},
		strconv.FormatInt(version, 10), payload, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

// Invalidate bumps the collection's generation and drops its payload in
// one transaction.
func (c *ListCache) Invalidate(ctx context.Context, collection string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, VersionKey(collection))
		pipe.Del(ctx, Key(collection))
		return nil
	})
	return err
}
