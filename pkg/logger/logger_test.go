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

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	require.Error(t, err)
}

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	assert.Equal(t, zap.L(), FromContext(context.Background()))

	log := zap.NewNop()
	ctx := WithContext(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
}

func TestGormLogger_SkipsRecordNotFound(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn, time.Second)

	gl.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, gormlogger.ErrRecordNotFound)
	assert.Zero(t, logs.Len())

	gl.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "gorm.query", logs.All()[0].Message)
}

func TestParseGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, ParseGormLevel("silent"))
	assert.Equal(t, gormlogger.Info, ParseGormLevel("debug"))
	assert.Equal(t, gormlogger.Warn, ParseGormLevel(""))
}
