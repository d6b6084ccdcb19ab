package logger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// RingCapacity caps the in-memory debug buffer at 100 entries; the oldest
// entry is evicted when the cap is reached.
const RingCapacity = 100

// Ring keeps the most recent log lines for the debug endpoint.
type Ring struct {
	mu   sync.Mutex
	seq  int
	logs *lru.Cache[int, string]
}

// NewRing creates an empty debug ring.
func NewRing() *Ring {
	cache, _ := lru.New[int, string](RingCapacity)
	return &Ring{logs: cache}
}

// Append records one formatted log line, evicting the oldest at capacity.
func (r *Ring) Append(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs.Add(r.seq, line)
	r.seq++
}

// Entries returns the buffered lines, oldest first.
func (r *Ring) Entries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := r.logs.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if line, ok := r.logs.Peek(k); ok {
			out = append(out, line)
		}
	}
	return out
}

// ringHandler tees records into the ring before delegating.
type ringHandler struct {
	next slog.Handler
	ring *Ring
}

// TeeToRing wraps a handler so every record is also kept in the ring.
func TeeToRing(next slog.Handler, ring *Ring) slog.Handler {
	return &ringHandler{next: next, ring: ring}
}

func (h *ringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ringHandler) Handle(ctx context.Context, rec slog.Record) error {
	h.ring.Append(fmt.Sprintf("[%s] %s: %s",
		rec.Time.Format(time.TimeOnly), rec.Level, rec.Message))
	return h.next.Handle(ctx, rec)
}

func (h *ringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ringHandler{next: h.next.WithAttrs(attrs), ring: h.ring}
}

func (h *ringHandler) WithGroup(name string) slog.Handler {
	return &ringHandler{next: h.next.WithGroup(name), ring: h.ring}
}
