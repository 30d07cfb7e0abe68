package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// LogRecord is one captured log entry.
type LogRecord struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogCapture collects slog records in memory so tests can assert on what a
// component logged. All levels are captured regardless of the logger's
// configured level.
type LogCapture struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewTestLogger returns a logger whose output lands in the returned capture.
func NewTestLogger() (*slog.Logger, *LogCapture) {
	capture := &LogCapture{}
	return slog.New(&captureHandler{capture: capture}), capture
}

// Records returns a copy of everything captured so far.
func (c *LogCapture) Records() []LogRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := make([]LogRecord, len(c.records))
	copy(records, c.records)
	return records
}

// RecordsAtLevel returns the captured records of exactly the given level.
func (c *LogCapture) RecordsAtLevel(level slog.Level) []LogRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	var filtered []LogRecord
	for _, r := range c.records {
		if r.Level == level {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// ContainsMessage reports whether any captured record's message contains
// the given substring.
func (c *LogCapture) ContainsMessage(message string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range c.records {
		if strings.Contains(r.Message, message) {
			return true
		}
	}
	return false
}

// ContainsAttr reports whether any captured record carries the attribute.
func (c *LogCapture) ContainsAttr(key string, value any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range c.records {
		if v, ok := r.Attrs[key]; ok && v == value {
			return true
		}
	}
	return false
}

func (c *LogCapture) add(r LogRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, r)
}

// captureHandler feeds records into a LogCapture. Attribute groups are
// flattened into dotted keys, which is enough for test assertions.
type captureHandler struct {
	capture *LogCapture
	attrs   []slog.Attr
	prefix  string
}

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		attrs[h.prefix+a.Key] = a.Value.Resolve().Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[h.prefix+a.Key] = a.Value.Resolve().Any()
		return true
	})

	h.capture.add(LogRecord{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	child := *h
	child.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &child
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	child := *h
	child.prefix = h.prefix + name + "."
	return &child
}
