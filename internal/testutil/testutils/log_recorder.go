package helpers

import (
	"context"
	"log/slog"
	"sync"
)

// RecordedLog is one log event captured by LogRecorder.
type RecordedLog struct {
	Level   slog.Level
	Message string
	Attrs   map[string]string
}

// LogRecorder is a slog.Handler that keeps every record it handles so
// tests can assert on levels and exact messages. Attributes bound with
// Logger.With or groups are not tracked; record-level attributes are.
type LogRecorder struct {
	mu      sync.Mutex
	records []RecordedLog
}

// NewLogRecorder returns an empty recorder accepting all levels.
func NewLogRecorder() *LogRecorder { return &LogRecorder{} }

// Logger wraps the recorder in a slog.Logger.
func (r *LogRecorder) Logger() *slog.Logger { return slog.New(r) }

func (r *LogRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *LogRecorder) Handle(_ context.Context, rec slog.Record) error {
	attrs := make(map[string]string, rec.NumAttrs())
	rec.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.String()
		return true
	})
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, RecordedLog{Level: rec.Level, Message: rec.Message, Attrs: attrs})
	return nil
}

func (r *LogRecorder) WithAttrs([]slog.Attr) slog.Handler { return r }

func (r *LogRecorder) WithGroup(string) slog.Handler { return r }

// Records returns a copy of everything captured so far.
func (r *LogRecorder) Records() []RecordedLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedLog, len(r.records))
	copy(out, r.records)
	return out
}

// Messages returns the messages recorded at exactly the given level, in order.
func (r *LogRecorder) Messages(level slog.Level) []string {
	var out []string
	for _, rec := range r.Records() {
		if rec.Level == level {
			out = append(out, rec.Message)
		}
	}
	return out
}

// CountMessage counts records with exactly the given level and message.
func (r *LogRecorder) CountMessage(level slog.Level, message string) int {
	n := 0
	for _, rec := range r.Records() {
		if rec.Level == level && rec.Message == message {
			n++
		}
	}
	return n
}
