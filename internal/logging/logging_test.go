package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"nyaya/internal/config"
	"nyaya/internal/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, logging.ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, logging.ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, logging.ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, logging.ParseLevel("verbose"))
	assert.Equal(t, zapcore.InfoLevel, logging.ParseLevel(""))
}

func TestNew(t *testing.T) {
	for _, format := range []string{"console", "json", ""} {
		logger, err := logging.New(config.LogConfig{Level: "warn", Format: format})
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	}
}
