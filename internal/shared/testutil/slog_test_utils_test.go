package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("dump loaded", slog.String("dump", "fe.pkl"))
		logger.Error("derivation failed", slog.Int("code", 422))

		assert.Len(t, handler.GetRecords(), 2)
		assert.True(t, handler.ContainsMessage("dump loaded"))
		assert.True(t, handler.ContainsAttr("dump", "fe.pkl"))
		assert.False(t, handler.ContainsAttr("dump", "cu.pkl"))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelWarn), 1)
		assert.Equal(t, 4, handler.Count())
	})

	t.Run("derived loggers share the buffer", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With("component", "parser").WithGroup("probe").Warn("skipped", "name", "P1")

		records := handler.GetRecords()
		require.Len(t, records, 1)
		assert.Equal(t, "parser", records[0].Attrs["component"])
		assert.Equal(t, "P1", records[0].Attrs["probe.name"])
	})

	t.Run("clear functionality", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("one")
		handler.Clear()

		assert.Equal(t, 0, handler.Count())
	})
}
