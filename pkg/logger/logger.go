package logger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configures the zap logger.
type Config struct {
	ServiceName string
	Environment string
	Level       string
	Format      string
}

type ctxKey struct{}

// New builds a structured zap.Logger. JSON output unless Format is "console".
func New(cfg Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "console") {
		zapCfg.Encoding = "console"
	}
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.OutputPaths = []string{"stdout"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	level := strings.TrimSpace(cfg.Level)
	if level == "" {
		level = "info"
	}
	if err := zapCfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return log.With(
		zap.String("service", cfg.ServiceName),
		zap.String("env", cfg.Environment),
	), nil
}

// Must is a helper that panics when the logger cannot be created.
func Must(log *zap.Logger, err error) *zap.Logger {
	if err != nil {
		panic(err)
	}
	return log
}

// Named returns a child logger with the provided component name.
func Named(base *zap.Logger, component string) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.Named(component)
}

// WithContext stores a request-scoped logger in ctx.
func WithContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the request-scoped logger, falling back to the global one.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && log != nil {
			return log
		}
	}
	return zap.L()
}
