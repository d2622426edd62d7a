// internal/requestlog/requestlog.go

// Package requestlog keeps the most recent mock service calls in a bounded
// in-memory ring and optionally forwards each entry to durable sinks.
package requestlog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mwiater/ideamock/internal/logging"
)

// DefaultCapacity is how many entries the in-memory log retains.
const DefaultCapacity = 100

// Entry describes one mock service call.
type Entry struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Method     string         `json:"method"`
	Scenario   string         `json:"scenario"`
	Params     map[string]any `json:"params,omitempty"`
	DurationMs int64          `json:"durationMs"`
	StatusCode int            `json:"statusCode"`
	Success    bool           `json:"success"`
	Error      string         `json:"error,omitempty"`
}

// Sink receives a copy of every entry added to a Log.
type Sink interface {
	Log(ctx context.Context, e Entry) error
}

// Log is a FIFO ring of entries. The oldest entry is evicted on overflow.
type Log struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
	sinks    []Sink
	now      func() time.Time
}

// New creates a log holding up to capacity entries. A non-positive capacity
// means DefaultCapacity.
func New(capacity int, sinks ...Sink) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		capacity: capacity,
		sinks:    sinks,
		now:      time.Now,
	}
}

// AddSink registers another sink.
func (l *Log) AddSink(s Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sinks = append(l.sinks, s)
}

// Add stores e, filling in ID and Timestamp when empty, and forwards it to
// every sink. Sink failures are logged and do not fail the call.
func (l *Log) Add(ctx context.Context, e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = l.now().UTC()
	}

	l.mu.Lock()
	l.entries = append(l.entries, e)
	if over := len(l.entries) - l.capacity; over > 0 {
		l.entries = append(l.entries[:0:0], l.entries[over:]...)
	}
	sinks := append([]Sink(nil), l.sinks...)
	l.mu.Unlock()

	for _, s := range sinks {
		if err := s.Log(ctx, e); err != nil {
			logging.LogWarn("request log sink: %v", err)
		}
	}
	return e
}

// Entries returns a copy of the retained entries, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Len reports how many entries are retained.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear drops the in-memory entries. Sinks are untouched.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
