package cache

import (
	"context"
	"sync"
	"time"

	"github.com/dentalcalc/backend/internal/domain/costing"
	"github.com/google/uuid"
)

// InMemoryRateCache is a process-local cost pool cache for single-instance
// deployments and tests. Expired entries are evicted lazily on read.
type InMemoryRateCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]rateEntry
	ttl     time.Duration
}

type rateEntry struct {
	pool      costing.CostPool
	expiresAt time.Time
}

// NewInMemoryRateCache creates a new in-memory rate cache
func NewInMemoryRateCache(ttl time.Duration) *InMemoryRateCache {
	return &InMemoryRateCache{
		entries: make(map[uuid.UUID]rateEntry),
		ttl:     ttl,
	}
}

// GetPool returns the cached cost pool, or (nil, nil) on a miss
func (c *InMemoryRateCache) GetPool(_ context.Context, clinicID uuid.UUID) (*costing.CostPool, error) {
	c.mu.RLock()
	entry, ok := c.entries[clinicID]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, clinicID)
		c.mu.Unlock()
		return nil, nil
	}

	pool := entry.pool
	return &pool, nil
}

// SetPool stores the cost pool with the configured TTL
func (c *InMemoryRateCache) SetPool(_ context.Context, clinicID uuid.UUID, pool costing.CostPool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[clinicID] = rateEntry{
		pool:      pool,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

// Invalidate drops the cached pool for a clinic
func (c *InMemoryRateCache) Invalidate(_ context.Context, clinicID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, clinicID)
	return nil
}
