package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func chargeQuery() (string, int64) {
	return `SELECT * FROM "charges" WHERE lease_id = 'x'`, 3
}

func TestNewGormLogger_Options(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
	)
	assert.Equal(t, 500*time.Millisecond, gl.slowThreshold)
	assert.False(t, gl.ignoreRecordNotFoundError)

	warn, ok := gl.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, warn.logLevel)
	assert.Equal(t, gormlogger.Info, gl.logLevel)
}

func TestGormLogger_Trace(t *testing.T) {
	tests := []struct {
		name    string
		level   gormlogger.LogLevel
		opts    []GormLoggerOption
		begin   time.Time
		err     error
		wantMsg string
		wantLvl zapcore.Level
	}{
		{"error", gormlogger.Error, nil, time.Now(), errors.New("unique violation"), "SQL Error", zapcore.ErrorLevel},
		{"slow", gormlogger.Warn, []GormLoggerOption{WithSlowThreshold(time.Nanosecond)}, time.Now().Add(-time.Second), nil, "SLOW SQL", zapcore.WarnLevel},
		{"normal at info", gormlogger.Info, nil, time.Now(), nil, "SQL Query", zapcore.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)
			gl := NewGormLogger(zap.New(core), tt.level, tt.opts...)

			gl.Trace(context.Background(), tt.begin, chargeQuery, tt.err)

			entries := recorded.All()
			require.Len(t, entries, 1)
			assert.Contains(t, entries[0].Message, tt.wantMsg)
			assert.Equal(t, tt.wantLvl, entries[0].Level)
			assert.Equal(t, "gorm", entries[0].LoggerName)
		})
	}
}

func TestGormLogger_Trace_Suppressed(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)

	NewGormLogger(zap.New(core), gormlogger.Silent).Trace(context.Background(), time.Now(), chargeQuery, nil)
	NewGormLogger(zap.New(core), gormlogger.Error).Trace(context.Background(), time.Now(), chargeQuery, gormlogger.ErrRecordNotFound)
	NewGormLogger(zap.New(core), gormlogger.Warn).Trace(context.Background(), time.Now(), chargeQuery, nil)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_Trace_CorrelationFields(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Info)

	ctx := context.WithValue(spanContext(t), RequestIDKey, "req-42")
	ctx = context.WithValue(ctx, LeaseIDKey, "lease-7")
	gl.Trace(ctx, time.Now(), chargeQuery, nil)

	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "lease-7", fields["lease_id"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, int64(3), fields["rows"])
}

func TestGormLogger_TruncatesLongSQL(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Info, WithMaxSQLLength(10))

	gl.Trace(context.Background(), time.Now(), chargeQuery, nil)

	sql := recorded.All()[0].ContextMap()["sql"]
	assert.Equal(t, `SELECT * F...(truncated)`, sql)
}

func TestGormLogger_Messages(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn)

	gl.Info(context.Background(), "hidden %d", 1)
	gl.Warn(context.Background(), "pool %s", "low")
	gl.Error(context.WithValue(context.Background(), RequestIDKey, "req-9"), "failed %s", "ping")

	entries := recorded.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "pool low", entries[0].Message)
	assert.Equal(t, "failed ping", entries[1].Message)
	assert.Equal(t, "req-9", entries[1].ContextMap()["request_id"])
}

func TestMapGormLogLevel(t *testing.T) {
	tests := map[string]gormlogger.LogLevel{
		"silent":  gormlogger.Silent,
		"error":   gormlogger.Error,
		"warn":    gormlogger.Warn,
		"info":    gormlogger.Info,
		"debug":   gormlogger.Info,
		"unknown": gormlogger.Warn,
		"":        gormlogger.Warn,
	}
	for in, want := range tests {
		assert.Equal(t, want, MapGormLogLevel(in), in)
	}
}

var _ gormlogger.Interface = (*GormLogger)(nil)
