package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Redis is a Store backed by a Redis keyspace. Values are stored without
// a TTL so cached entries survive until the keyspace itself is cleared,
// mirroring the forever-cache semantics of the in-memory backend.
type Redis struct {
	client *redis.Client
	table  string
	prefix string
	logger zerolog.Logger
}

// NewRedis creates a Redis-backed store for the given table. Keys are
// namespaced as "pokedex:<table>:<name>".
func NewRedis(client *redis.Client, table string, logger zerolog.Logger) *Redis {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &Redis{
		client: client,
		table:  table,
		prefix: fmt.Sprintf("pokedex:%s:", table),
		logger: logger,
	}
}

// Get returns the value for key and whether it was present.
// Backend failures are reported as misses; the caller falls through to
// the upstream fetch, which is the safe degradation for a cache.
func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if err == redis.Nil {
		Misses.WithLabelValues(r.table, "redis").Inc()
		return "", false
	}
	if err != nil {
		Errors.WithLabelValues(r.table, "get").Inc()
		r.logger.Warn().Err(err).Str("key", key).Msg("Redis get failed, treating as miss")
		return "", false
	}

	Hits.WithLabelValues(r.table, "redis").Inc()
	return value, true
}

// Put stores value under key, overwriting any previous value.
func (r *Redis) Put(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		Errors.WithLabelValues(r.table, "set").Inc()
		return fmt.Errorf("redis set %s: %w", r.prefix+key, err)
	}
	return nil
}

var _ Store = (*Redis)(nil)
