package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newGormTestLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), logs
}

func TestNewGormLogger_Defaults(t *testing.T) {
	gl, _ := newGormTestLogger(gormlogger.Warn)

	assert.Equal(t, 200*time.Millisecond, gl.slowThreshold)
	assert.True(t, gl.ignoreRecordNotFoundError)
}

func TestGormLogger_Options(t *testing.T) {
	gl, _ := newGormTestLogger(gormlogger.Warn,
		WithSlowThreshold(50*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, 50*time.Millisecond, gl.slowThreshold)
	assert.False(t, gl.ignoreRecordNotFoundError)
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, _ := newGormTestLogger(gormlogger.Warn)

	quiet := gl.LogMode(gormlogger.Silent)
	// LogMode returns a copy, the original keeps its level
	assert.Equal(t, gormlogger.Warn, gl.logLevel)
	assert.Equal(t, gormlogger.Silent, quiet.(*GormLogger).logLevel)
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()
	pricingQuery := func() (string, int64) {
		return "SELECT * FROM services WHERE clinic_id = $1", 12
	}

	t.Run("silent level logs nothing", func(t *testing.T) {
		gl, logs := newGormTestLogger(gormlogger.Silent)
		gl.Trace(ctx, time.Now(), pricingQuery, nil)
		assert.Empty(t, logs.All())
	})

	t.Run("info level logs the query with sql and rows", func(t *testing.T) {
		gl, logs := newGormTestLogger(gormlogger.Info)
		gl.Trace(ctx, time.Now(), pricingQuery, nil)

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "SQL Query", entries[0].Message)
		fields := entries[0].ContextMap()
		assert.Equal(t, "SELECT * FROM services WHERE clinic_id = $1", fields["sql"])
		assert.EqualValues(t, 12, fields["rows"])
	})

	t.Run("slow query logs at warn", func(t *testing.T) {
		gl, logs := newGormTestLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))
		begin := time.Now().Add(-time.Millisecond)
		gl.Trace(ctx, begin, pricingQuery, nil)

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Contains(t, entries[0].Message, "SLOW SQL")
	})

	t.Run("errors log at error with the error field", func(t *testing.T) {
		gl, logs := newGormTestLogger(gormlogger.Error)
		gl.Trace(ctx, time.Now(), pricingQuery, assert.AnError)

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "SQL Error", entries[0].Message)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	})

	t.Run("record-not-found is suppressed by default", func(t *testing.T) {
		gl, logs := newGormTestLogger(gormlogger.Error)
		gl.Trace(ctx, time.Now(), pricingQuery, gormlogger.ErrRecordNotFound)
		assert.Empty(t, logs.All())
	})

	t.Run("record-not-found logs when suppression is off", func(t *testing.T) {
		gl, logs := newGormTestLogger(gormlogger.Error, WithIgnoreRecordNotFoundError(false))
		gl.Trace(ctx, time.Now(), pricingQuery, gormlogger.ErrRecordNotFound)
		require.Len(t, logs.All(), 1)
	})

	t.Run("request id from context is attached", func(t *testing.T) {
		gl, logs := newGormTestLogger(gormlogger.Info)
		reqCtx, _ := WithRequestID(ctx, zap.NewNop(), "req-7")
		gl.Trace(reqCtx, time.Now(), pricingQuery, nil)

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-7", entries[0].ContextMap()["request_id"])
	})
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"bogus", gormlogger.Warn},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapGormLogLevel(tt.level), "level %q", tt.level)
	}
}
