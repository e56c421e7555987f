package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dentalcalc/backend/internal/domain/costing"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisRateCache caches each clinic's aggregated cost pool in Redis so a
// pricing pass does not have to re-sum every cost row. Entries are written
// with a TTL as a backstop; writes through the costing services invalidate
// eagerly, so the TTL only matters when an invalidation is lost.
type RedisRateCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisRateCache creates a rate cache on an existing Redis client
func NewRedisRateCache(client *redis.Client, ttl time.Duration) *RedisRateCache {
	return &RedisRateCache{
		client:    client,
		keyPrefix: "pricing:pool:",
		ttl:       ttl,
	}
}

func (c *RedisRateCache) key(clinicID uuid.UUID) string {
	return c.keyPrefix + clinicID.String()
}

// GetPool returns the cached cost pool, or (nil, nil) on a cache miss
func (c *RedisRateCache) GetPool(ctx context.Context, clinicID uuid.UUID) (*costing.CostPool, error) {
	data, err := c.client.Get(ctx, c.key(clinicID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached cost pool: %w", err)
	}

	var pool costing.CostPool
	if err := json.Unmarshal(data, &pool); err != nil {
		// A corrupt entry is treated as a miss; the next SetPool overwrites it.
		return nil, nil
	}
	return &pool, nil
}

// SetPool stores the cost pool with the configured TTL
func (c *RedisRateCache) SetPool(ctx context.Context, clinicID uuid.UUID, pool costing.CostPool) error {
	data, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("failed to marshal cost pool: %w", err)
	}
	if err := c.client.Set(ctx, c.key(clinicID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache cost pool: %w", err)
	}
	return nil
}

// Invalidate drops the cached pool for a clinic
func (c *RedisRateCache) Invalidate(ctx context.Context, clinicID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(clinicID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cost pool: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (c *RedisRateCache) Close() error {
	return c.client.Close()
}
