package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger implements gormlogger.Interface on top of zap.
type GormLogger struct {
	base          *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger builds a GormLogger. Record-not-found is never logged as an error
// since repositories treat it as an ordinary miss.
func NewGormLogger(base *zap.Logger, level gormlogger.LogLevel, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{
		base:          Named(base, "gorm"),
		level:         level,
		slowThreshold: slowThreshold,
	}
}

// ParseGormLevel maps a textual level onto gorm's levels.
func ParseGormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	copy := *l
	copy.level = level
	return &copy
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		l.from(ctx).Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.from(ctx).Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		l.from(ctx).Sugar().Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		sql, rows := fc()
		l.from(ctx).Error("gorm.query", queryFields(sql, rows, elapsed, zap.Error(err))...)
	case l.slowThreshold != 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.from(ctx).Warn("gorm.slow_query", queryFields(sql, rows, elapsed)...)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.from(ctx).Debug("gorm.query", queryFields(sql, rows, elapsed)...)
	}
}

func (l *GormLogger) from(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && log != nil {
			return log.Named("gorm")
		}
	}
	return l.base
}

func queryFields(sql string, rows int64, elapsed time.Duration, extra ...zap.Field) []zap.Field {
	fields := []zap.Field{
		zap.String("sql", strings.TrimSpace(sql)),
		zap.Int64("duration_ms", elapsed.Milliseconds()),
	}
	if rows >= 0 {
		fields = append(fields, zap.Int64("rows_affected", rows))
	}
	return append(fields, extra...)
}

var _ gormlogger.Interface = (*GormLogger)(nil)
