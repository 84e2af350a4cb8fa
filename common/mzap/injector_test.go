package mzap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeLoggerReturnsWorkingLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	logger := InitializeLogger()
	require.NotNil(t, logger)

	zapLogger, ok := logger.(*ZapLogger)
	require.True(t, ok)

	assert.NotNil(t, zapLogger.Logger)

	logger.Infof("test message %d", 1)
	// Sync can return an error against a non-file stdout (e.g. /dev/null in
	// some sandboxes); only its absence of a panic matters here.
	_ = logger.Sync()
}

func TestInitializeLoggerFallsBackOnInvalidLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "not-a-level")

	logger := InitializeLogger()
	require.NotNil(t, logger)
}
