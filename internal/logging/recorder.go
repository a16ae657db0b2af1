package logging

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-blockgen/pkg/interfaces"
)

// Entry is a log line captured by a Recorder.
type Entry struct {
	Level   string
	Message string
	Args    []any
	Fields  map[string]any
}

// Recorder is an in-memory logger used by tests to assert on emitted entries.
type Recorder struct {
	mu      *sync.Mutex
	entries *[]Entry
	fields  map[string]any
}

// NewRecorder constructs an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{mu: &sync.Mutex{}, entries: &[]Entry{}}
}

// GetLogger satisfies interfaces.LoggerProvider; every name shares storage.
func (r *Recorder) GetLogger(string) interfaces.Logger { return r }

func (r *Recorder) Trace(msg string, args ...any) { r.record("trace", msg, args) }
func (r *Recorder) Debug(msg string, args ...any) { r.record("debug", msg, args) }
func (r *Recorder) Info(msg string, args ...any)  { r.record("info", msg, args) }
func (r *Recorder) Warn(msg string, args ...any)  { r.record("warn", msg, args) }
func (r *Recorder) Error(msg string, args ...any) { r.record("error", msg, args) }
func (r *Recorder) Fatal(msg string, args ...any) { r.record("fatal", msg, args) }

// WithContext returns the recorder unchanged.
func (r *Recorder) WithContext(context.Context) interfaces.Logger { return r }

// WithFields returns a child recorder sharing storage with r.
func (r *Recorder) WithFields(fields map[string]any) interfaces.Logger {
	merged := make(map[string]any, len(r.fields)+len(fields))
	for k, v := range r.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Recorder{mu: r.mu, entries: r.entries, fields: merged}
}

// Entries returns a copy of the captured entries.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), (*r.entries)...)
}

// Has reports whether an entry with level and message was captured.
func (r *Recorder) Has(level, msg string) bool {
	for _, entry := range r.Entries() {
		if entry.Level == level && entry.Message == msg {
			return true
		}
	}
	return false
}

func (r *Recorder) String() string {
	return fmt.Sprintf("%v", r.Entries())
}

func (r *Recorder) record(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = append(*r.entries, Entry{Level: level, Message: msg, Args: args, Fields: r.fields})
}
