package render

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogBuffer_Ring(t *testing.T) {
	lb := NewLogBuffer(3)
	assert.Empty(t, lb.GetRecent(10))

	for _, msg := range []string{"a", "b", "c", "d"} {
		lb.Add(LogEntry{Message: msg})
	}

	recent := lb.GetRecent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "d", recent[0].Message)
	assert.Equal(t, "b", recent[2].Message)
	assert.Len(t, lb.GetRecent(2), 2)

	lb.Clear()
	assert.Empty(t, lb.GetRecent(0))
}

func TestLogBufferHandler(t *testing.T) {
	lb := NewLogBuffer(10)
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	logger := slog.New(NewLogBufferHandler(lb, level))

	logger.Debug("hidden")
	logger.Info("Advanced to note", "index", 3)
	logger.With("timer", "TA1").WithGroup("irq").Warn("Storm", "count", 2)

	recent := lb.GetRecent(0)
	require.Len(t, recent, 2)
	assert.Equal(t, "Storm timer=TA1 irq.count=2", recent[0].Message)
	assert.Equal(t, "Advanced to note index=3", recent[1].Message)
	assert.Equal(t, slog.LevelWarn, recent[0].Level)

	level.Set(slog.LevelDebug)
	logger.Debug("shown")
	assert.Equal(t, "shown", lb.GetRecent(1)[0].Message)
}

func TestFormatLogEntry(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 30, 5, 0, time.UTC)
	assert.Equal(t, "12:30:05 [WRN] hi", FormatLogEntry(LogEntry{Time: ts, Level: slog.LevelWarn, Message: "hi"}))
	assert.Equal(t, "12:30:05 [???] x", FormatLogEntry(LogEntry{Time: ts, Level: slog.Level(2), Message: "x"}))
}
