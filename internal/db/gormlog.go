package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"dogwalk-app-go/pkg/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLogger sends gorm output through the application logger, picking up
// request-scoped fields from the context when present.
type gormLogger struct {
	log           logger.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func newGormLogger(log logger.Logger, level gormlogger.LogLevel) *gormLogger {
	return &gormLogger{log: log, level: level, slowThreshold: slowQueryThreshold}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		logger.FromContext(ctx, l.log).Info("db: " + fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		logger.FromContext(ctx, l.log).Warn("db: " + fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		logger.FromContext(ctx, l.log).Error("db: " + fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	log := logger.FromContext(ctx, l.log)
	// Not-found results are reported to callers as domain errors.
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		log.Error("db: query failed", "error", err, "elapsed_ms", elapsed.Milliseconds(), "rows", rows, "sql", sql)
	case elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		log.Warn("db: slow query", "elapsed_ms", elapsed.Milliseconds(), "rows", rows, "sql", sql)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		log.Debug("db: query", "elapsed_ms", elapsed.Milliseconds(), "rows", rows, "sql", sql)
	}
}
