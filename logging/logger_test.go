package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoggerDefaultsToNop(t *testing.T) {
	assert.NotNil(t, Logger)
	assert.NotNil(t, Named("test"))
}

func TestInitLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, InitLogger())
	assert.True(t, Logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Logger.Core().Enabled(zapcore.DebugLevel))
}

func TestInitLoggerWithLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	require.NoError(t, InitLogger())
	assert.True(t, Logger.Core().Enabled(zapcore.DebugLevel))
}

func TestInitLoggerWithInvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	require.NoError(t, InitLogger())
	assert.True(t, Logger.Core().Enabled(zapcore.InfoLevel))
}
