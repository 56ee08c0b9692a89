package db

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"dogwalk-app-go/pkg/logger"
)

func query() (string, int64) { return "SELECT 1", 1 }

func TestGormLoggerTrace(t *testing.T) {
	tests := []struct {
		name  string
		level gormlogger.LogLevel
		begin time.Time
		err   error
		want  string
	}{
		{"failed query", gormlogger.Warn, time.Now(), errors.New("boom"), `"msg":"db: query failed"`},
		{"record not found", gormlogger.Warn, time.Now(), gorm.ErrRecordNotFound, ""},
		{"slow query", gormlogger.Warn, time.Now().Add(-time.Second), nil, `"msg":"db: slow query"`},
		{"fast query below info", gormlogger.Warn, time.Now(), nil, ""},
		{"every query at info", gormlogger.Info, time.Now(), nil, `"msg":"db: query"`},
		{"silent", gormlogger.Silent, time.Now(), errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newGormLogger(logger.New(&buf, slog.LevelDebug, "json"), gormlogger.Warn).LogMode(tt.level)

			l.Trace(context.Background(), tt.begin, query, tt.err)

			if tt.want == "" {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), `"sql":"SELECT 1"`)
		})
	}
}

func TestGormLoggerUsesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(&buf, slog.LevelDebug, "json")
	ctx := logger.WithContext(context.Background(), base.With("request_id", "req-7"))

	newGormLogger(logger.Discard(), gormlogger.Warn).Trace(ctx, time.Now(), query, errors.New("boom"))

	assert.Contains(t, buf.String(), `"request_id":"req-7"`)
}
