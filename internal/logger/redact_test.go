package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedactingCore(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core), nil)
	t.Cleanup(func() { Set(zap.NewNop(), nil) })

	InfoCtx(context.Background(), "calling with Bearer abc123",
		zap.String("url", "https://api.test/x?token=t0k"),
		zap.String("access_token", "raw"),
		zap.Int("page", 2),
	)
	ErrorCtx(context.Background(), errors.New("login failed password=hunter2"))
	Warn("warn", zap.Error(errors.New("secret: s3")))

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)

	first := entries[0]
	assert.Equal(t, "calling with Bearer [REDACTED]", first.Message)
	ctx := first.ContextMap()
	assert.Equal(t, "https://api.test/x?token=[REDACTED]", ctx["url"])
	assert.Equal(t, "[REDACTED]", ctx["access_token"])
	assert.EqualValues(t, 2, ctx["page"])

	assert.Equal(t, "login failed password=[REDACTED]", entries[1].Message)
	assert.Equal(t, "secret: [REDACTED]", entries[2].ContextMap()["error"])
}

func TestRedactingCore_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Set(zap.New(core), nil)
	t.Cleanup(func() { Set(zap.NewNop(), nil) })

	Default().With(zap.String("auth", "Bearer xyz")).Info("hello")
	Debug("filtered")

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, "Bearer [REDACTED]", entries[0].ContextMap()["auth"])
}
