package recordcache_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/goliatone/go-record-cache/cache"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRegistry(t *testing.T) *cache.Registry {
	t.Helper()

	registry, err := cache.NewRegistry(cache.DefaultConfigs())
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}
	return registry
}

func mustGet(t *testing.T, registry *cache.Registry, name string) cache.Instance {
	t.Helper()

	inst, err := registry.Get(name)
	if err != nil {
		t.Fatalf("failed to get cache %q: %v", name, err)
	}
	return inst
}

// logEntry is one captured slog record.
type logEntry struct {
	level slog.Level
	msg   string
	attrs map[string]any
}

// captureHandler collects slog records so tests can assert on structured
// output from the warmer and the monitor.
type captureHandler struct {
	mu      sync.Mutex
	entries []logEntry
}

func newCaptureLogger() (*slog.Logger, *captureHandler) {
	h := &captureHandler{}
	return slog.New(h), h
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	h.entries = append(h.entries, logEntry{level: r.Level, msg: r.Message, attrs: attrs})
	h.mu.Unlock()
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

// find returns every captured entry with the given message.
func (h *captureHandler) find(msg string) []logEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []logEntry
	for _, e := range h.entries {
		if e.msg == msg {
			out = append(out, e)
		}
	}
	return out
}
