package logger_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/TomGruner85/task-manager-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	log := logger.Setup("debug")
	require.NotNil(t, log)
	assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))

	log = logger.Setup("warn")
	require.NotNil(t, log)
	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, log.Enabled(context.Background(), slog.LevelWarn))
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	log := logger.Setup("loud")
	require.NotNil(t, log)
	assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
}

func TestFromContext(t *testing.T) {
	stored := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := logger.WithLogger(context.Background(), stored)

	assert.Same(t, stored, logger.FromContext(ctx))

	// Without a stored logger the process default comes back.
	assert.NotNil(t, logger.FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))

	stored := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := logger.WithLogger(context.Background(), stored)
	assert.Same(t, stored, logger.FromContextOrDefault(ctx, fallback))
}
