package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGet_BeforeInitIsNop(t *testing.T) {
	Set(nil)
	assert.NotNil(t, Get())
	Info("dropped")
}

func TestInit_Levels(t *testing.T) {
	require.NoError(t, Init("debug", "production"))
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Init("warn", "development"))
	assert.False(t, Get().Core().Enabled(zapcore.InfoLevel))

	require.NoError(t, Init("bogus", "production"))
	assert.True(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Get().Core().Enabled(zapcore.DebugLevel))
}

func TestNamed(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Set(zap.New(core))
	defer Set(nil)

	Named("collector").Info("source failed", zap.String("source", "yahoo"))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "collector", entry.LoggerName)
	assert.Equal(t, "yahoo", entry.ContextMap()["source"])
}
