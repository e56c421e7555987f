package telemetry_test

import (
	"context"
	"testing"

	"github.com/dentalcalc/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func disabledTracerConfig() telemetry.Config {
	return telemetry.Config{
		Enabled:           false,
		CollectorEndpoint: "localhost:14317",
		SamplingRatio:     1.0,
		ServiceName:       "dentalcalc-test",
	}
}

func TestTracerProviderDisabled(t *testing.T) {
	ctx := context.Background()
	cfg := disabledTracerConfig()

	tp, err := telemetry.NewTracerProvider(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.False(t, tp.IsEnabled())
	assert.Equal(t, cfg.ServiceName, tp.GetConfig().ServiceName)

	t.Run("tracer still hands out working no-op spans", func(t *testing.T) {
		tracer := tp.Tracer("pricing")
		require.NotNil(t, tracer)

		_, span := tracer.Start(ctx, "compute_price")
		span.End()
	})

	t.Run("flush and shutdown are no-ops", func(t *testing.T) {
		assert.NoError(t, tp.ForceFlush(ctx))
		assert.NoError(t, tp.Shutdown(ctx))
	})

	t.Run("shutdown survives a cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		assert.NoError(t, tp.Shutdown(cancelled))
	})
}

func TestTracerProviderSamplingRatios(t *testing.T) {
	// The sampler choice is internal; these exercise the three code
	// paths without an exporter by keeping the provider disabled.
	for _, ratio := range []float64{1.0, 0.0, 0.25} {
		cfg := disabledTracerConfig()
		cfg.SamplingRatio = ratio

		tp, err := telemetry.NewTracerProvider(context.Background(), cfg, zaptest.NewLogger(t))
		require.NoError(t, err, "ratio %v", ratio)
		assert.False(t, tp.IsEnabled())
		assert.NoError(t, tp.Shutdown(context.Background()))
	}
}

func TestTracerProviderEnabled(t *testing.T) {
	// Needs a collector listening on localhost:14317 (make otel-up).
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg := disabledTracerConfig()
	cfg.Enabled = true
	cfg.Insecure = true

	tp, err := telemetry.NewTracerProvider(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.True(t, tp.IsEnabled())

	_, span := tp.Tracer("pricing").Start(ctx, "compute_price")
	span.End()

	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NoError(t, tp.Shutdown(ctx))
}
