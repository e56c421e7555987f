package cache

import (
	"context"
	"testing"
	"time"

	"github.com/dentalcalc/backend/internal/domain/costing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool(rate int64) costing.CostPool {
	return costing.CostPool{
		MonthlyOverhead: decimal.NewFromInt(rate).Mul(decimal.NewFromFloat(153.6)),
		EffectiveHours:  decimal.NewFromFloat(153.6),
		OverheadPerHour: decimal.NewFromInt(rate),
	}
}

func TestInMemoryRateCache(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored pool until invalidated", func(t *testing.T) {
		cache := NewInMemoryRateCache(time.Hour)
		clinicID := uuid.New()

		require.NoError(t, cache.SetPool(ctx, clinicID, testPool(100)))

		pool, err := cache.GetPool(ctx, clinicID)
		require.NoError(t, err)
		require.NotNil(t, pool)
		assert.True(t, pool.OverheadPerHour.Equal(decimal.NewFromInt(100)))

		require.NoError(t, cache.Invalidate(ctx, clinicID))

		pool, err = cache.GetPool(ctx, clinicID)
		require.NoError(t, err)
		assert.Nil(t, pool)
	})

	t.Run("miss for unknown clinic", func(t *testing.T) {
		cache := NewInMemoryRateCache(time.Hour)

		pool, err := cache.GetPool(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, pool)
	})

	t.Run("expired entry reads as a miss", func(t *testing.T) {
		cache := NewInMemoryRateCache(time.Nanosecond)
		clinicID := uuid.New()

		require.NoError(t, cache.SetPool(ctx, clinicID, testPool(100)))
		time.Sleep(10 * time.Millisecond)

		pool, err := cache.GetPool(ctx, clinicID)
		require.NoError(t, err)
		assert.Nil(t, pool)
	})

	t.Run("returned pool is a copy", func(t *testing.T) {
		cache := NewInMemoryRateCache(time.Hour)
		clinicID := uuid.New()

		require.NoError(t, cache.SetPool(ctx, clinicID, testPool(100)))

		first, err := cache.GetPool(ctx, clinicID)
		require.NoError(t, err)
		first.OverheadPerHour = decimal.NewFromInt(999)

		second, err := cache.GetPool(ctx, clinicID)
		require.NoError(t, err)
		assert.True(t, second.OverheadPerHour.Equal(decimal.NewFromInt(100)))
	})
}
