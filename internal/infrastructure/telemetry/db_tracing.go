package telemetry

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled bool
	// LogFullSQL includes query variables in spans. Dev only, leaks data in prod.
	LogFullSQL      bool
	SlowQueryThresh time.Duration
	DBSystem        string
}

// DefaultDBTracingConfig returns the configuration used when nothing is set.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:         false,
		LogFullSQL:      false,
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}
}

// DBTracingPlugin wraps otelgorm with slow-query and error annotations on
// the query spans.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	return &DBTracingPlugin{config: cfg, logger: logger}
}

type tracingContextKey string

const queryStartTimeKey tracingContextKey = "otel_query_start_time"

// RegisterOtelGorm installs otelgorm plus the timing callbacks on the DB.
// A disabled config is a no-op.
func (p *DBTracingPlugin) RegisterOtelGorm(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	dbSystem := p.config.DBSystem
	if dbSystem == "" {
		dbSystem = "postgresql"
	}
	opts := []otelgorm.Option{
		otelgorm.WithDBName(dbSystem),
	}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	before := func(db *gorm.DB) {
		if db.Statement.Context != nil {
			db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
		}
	}

	type callbackSlot interface {
		Register(name string, fn func(*gorm.DB)) error
	}
	hooks := []struct {
		name string
		slot callbackSlot
		fn   func(*gorm.DB)
	}{
		{"otel_timing:before_create", db.Callback().Create().Before("gorm:create"), before},
		{"otel_timing:after_create", db.Callback().Create().After("gorm:create"), p.annotateSpan},
		{"otel_timing:before_query", db.Callback().Query().Before("gorm:query"), before},
		{"otel_timing:after_query", db.Callback().Query().After("gorm:query"), p.annotateSpan},
		{"otel_timing:before_update", db.Callback().Update().Before("gorm:update"), before},
		{"otel_timing:after_update", db.Callback().Update().After("gorm:update"), p.annotateSpan},
		{"otel_timing:before_delete", db.Callback().Delete().Before("gorm:delete"), before},
		{"otel_timing:after_delete", db.Callback().Delete().After("gorm:delete"), p.annotateSpan},
		{"otel_timing:before_row", db.Callback().Row().Before("gorm:row"), before},
		{"otel_timing:after_row", db.Callback().Row().After("gorm:row"), p.annotateSpan},
		{"otel_timing:before_raw", db.Callback().Raw().Before("gorm:raw"), before},
		{"otel_timing:after_raw", db.Callback().Raw().After("gorm:raw"), p.annotateSpan},
	}
	for _, h := range hooks {
		if err := h.slot.Register(h.name, h.fn); err != nil {
			return err
		}
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", dbSystem),
	)

	return nil
}

// annotateSpan runs after each gorm operation and enriches the otelgorm span
// with rows-affected, table, error status and slow-query markers.
func (p *DBTracingPlugin) annotateSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}

	// not-found is an ordinary outcome for lookups, keep the span green
	if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if startTime, ok := ctx.Value(queryStartTimeKey).(time.Time); ok {
		elapsed := time.Since(startTime)
		if elapsed > p.config.SlowQueryThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
			span.AddEvent("slow_query_warning", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
			))
		}
	}
}
