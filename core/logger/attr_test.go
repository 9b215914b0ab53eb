package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/smartcommand/core/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("cmd", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "cmd", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

// ============================================================================
// Error Handling Tests
// ============================================================================

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

// ============================================================================
// Command Lifecycle Tests
// ============================================================================

func TestCommand(t *testing.T) {
	t.Parallel()
	attr := logger.Command("save")
	assert.Equal(t, "command", attr.Key)
	assert.Equal(t, "save", attr.Value.String())

	assert.True(t, logger.Command("").Equal(slog.Attr{}))
}

func TestTimestamp(t *testing.T) {
	t.Parallel()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	attr := logger.Timestamp(at)
	assert.Equal(t, "timestamp", attr.Key)
	assert.Equal(t, at, attr.Value.Time())

	assert.True(t, logger.Timestamp(time.Time{}).Equal(slog.Attr{}))
}

// ============================================================================
// Generic Metadata Tests
// ============================================================================

func TestMetadata(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "binder", logger.Component("binder").Value.String())
	assert.Equal(t, "started", logger.Event("started").Value.String())
	assert.Equal(t, "Save", logger.Method("Save").Value.String())
	assert.True(t, logger.Method("").Equal(slog.Attr{}))
	assert.Equal(t, "v", logger.Key("k", "v").Value.String())
	assert.True(t, logger.Key("k", nil).Equal(slog.Attr{}))
}
