package logger

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingKeepsInsertionOrder(t *testing.T) {
	ring := NewRing()
	ring.Append("first")
	ring.Append("second")
	ring.Append("third")

	assert.Equal(t, []string{"first", "second", "third"}, ring.Entries())
}

func TestRingEvictsOldest(t *testing.T) {
	ring := NewRing()
	for i := 0; i < RingCapacity+10; i++ {
		ring.Append(fmt.Sprintf("line-%d", i))
	}

	entries := ring.Entries()
	require.Len(t, entries, RingCapacity)
	assert.Equal(t, "line-10", entries[0], "the oldest lines are evicted first")
	assert.Equal(t, fmt.Sprintf("line-%d", RingCapacity+9), entries[len(entries)-1])
}

func TestTeeToRingCapturesRecords(t *testing.T) {
	ring := NewRing()
	handler := TeeToRing(slog.NewTextHandler(discardWriter{}, nil), ring)
	log := slog.New(handler)

	log.Info("shop refreshed")
	log.Warn("save failed")

	entries := ring.Entries()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0], "shop refreshed")
	assert.Contains(t, entries[1], "WARN")
}

func TestWithRequestIDRoundTrip(t *testing.T) {
	id := GenerateRequestID()
	ctx := WithRequestID(context.Background(), id)

	got, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = RequestIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestRingHandlerFormatsLine(t *testing.T) {
	ring := NewRing()
	handler := TeeToRing(slog.NewTextHandler(discardWriter{}, nil), ring)

	rec := slog.NewRecord(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), slog.LevelInfo, "hello", 0)
	require.NoError(t, handler.Handle(context.Background(), rec))

	entries := ring.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "[03:04:05] INFO: hello", entries[0])
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
