package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/dentalcalc/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
)

func disabledMeterProvider(t *testing.T) *telemetry.MeterProvider {
	t.Helper()
	mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:     false,
		ServiceName: "dentalcalc-test",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	return mp
}

// manualMeter returns a meter whose recordings can be read back through
// the manual reader.
func manualMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return reader, provider
}

func collectMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) (metricdata.Metrics, bool) {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func TestMeterProviderDisabled(t *testing.T) {
	ctx := context.Background()
	mp := disabledMeterProvider(t)

	assert.False(t, mp.IsEnabled())
	assert.Equal(t, "dentalcalc-test", mp.GetConfig().ServiceName)

	// disabled provider still hands out a usable (no-op) meter
	assert.NotNil(t, mp.Meter("pricing"))

	assert.NoError(t, mp.ForceFlush(ctx))
	assert.NoError(t, mp.Shutdown(ctx))
	// shutdown is repeatable
	assert.NoError(t, mp.Shutdown(ctx))
}

func TestCounterRecordsPerAttribute(t *testing.T) {
	ctx := context.Background()
	reader, provider := manualMeter(t)
	meter := provider.Meter("pricing")

	quotes, err := telemetry.NewCounter(meter, "price_quotes_total", "Price quotes served", "{quote}")
	require.NoError(t, err)

	quotes.Add(ctx, 3, attribute.String("fee_mode", "hourly"))
	quotes.Inc(ctx, attribute.String("fee_mode", "hourly"))
	quotes.Inc(ctx, attribute.String("fee_mode", "percentage"))

	m, found := collectMetric(t, reader, "price_quotes_total")
	require.True(t, found)

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	byMode := map[string]int64{}
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value("fee_mode"); ok {
			byMode[v.AsString()] = dp.Value
		}
	}
	assert.Equal(t, int64(4), byMode["hourly"])
	assert.Equal(t, int64(1), byMode["percentage"])
}

func TestHistogramRecordsDurations(t *testing.T) {
	ctx := context.Background()
	reader, provider := manualMeter(t)
	meter := provider.Meter("pricing")

	latency, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "price_list_duration_seconds",
		Description: "Full price list computation time",
		Unit:        "s",
		Boundaries:  telemetry.HTTPDurationBuckets,
	})
	require.NoError(t, err)

	latency.Record(ctx, 0.012)
	latency.RecordDuration(ctx, 8*time.Millisecond)

	m, found := collectMetric(t, reader, "price_list_duration_seconds")
	require.True(t, found)

	hist, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
	assert.InDelta(t, 0.020, hist.DataPoints[0].Sum, 0.0001)
}

func TestGaugeKeepsLatestValue(t *testing.T) {
	ctx := context.Background()
	reader, provider := manualMeter(t)
	meter := provider.Meter("db")

	inUse, err := telemetry.NewGauge(meter, "db_pool_connections", "Open connections", "{connection}")
	require.NoError(t, err)

	inUse.Record(ctx, 4, telemetry.AttrDBState.String("in_use"))
	inUse.Record(ctx, 7, telemetry.AttrDBState.String("in_use"))

	m, found := collectMetric(t, reader, "db_pool_connections")
	require.True(t, found)

	gauge, ok := m.Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(7), gauge.DataPoints[0].Value)
}

func TestAttributeKeys(t *testing.T) {
	// label names are part of the dashboard contract
	assert.Equal(t, attribute.Key("clinic_id"), telemetry.AttrClinicID)
	assert.Equal(t, attribute.Key("http.method"), telemetry.AttrHTTPMethod)
	assert.Equal(t, attribute.Key("http.status_code"), telemetry.AttrHTTPStatusCode)
	assert.Equal(t, attribute.Key("http.route"), telemetry.AttrHTTPRoute)
	assert.Equal(t, attribute.Key("db.operation"), telemetry.AttrDBOperation)
	assert.Equal(t, attribute.Key("db.table"), telemetry.AttrDBTable)
	assert.Equal(t, attribute.Key("db.pool.state"), telemetry.AttrDBState)
}

func TestBucketBoundariesAreSorted(t *testing.T) {
	for name, buckets := range map[string][]float64{
		"http": telemetry.HTTPDurationBuckets,
		"db":   telemetry.DBDurationBuckets,
	} {
		require.NotEmpty(t, buckets, name)
		for i := 1; i < len(buckets); i++ {
			assert.Less(t, buckets[i-1], buckets[i], "%s bucket %d", name, i)
		}
	}
}
