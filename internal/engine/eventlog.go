package engine

import (
	"github.com/google/uuid"
)

// EventCap bounds the in-memory event log; the oldest entries are dropped.
const EventCap = 500

// Event is one line of human-readable narration.
type Event struct {
	ID       string `json:"id"`
	SimTime  string `json:"sim_time"`
	Message  string `json:"message"`
	Category string `json:"category"` // "work", "economy", "social", "romance", "election", "birth", "death", "system"
}

// Sink receives every emitted event, in addition to the ring buffer.
// Implementations must not block.
type Sink interface {
	Emit(e Event)
}

// EventLog is an append-only ring buffer of narration. Emitting never
// blocks and never fails.
type EventLog struct {
	entries []Event
	sink    Sink
}

// NewEventLog creates an empty log with an optional secondary sink.
func NewEventLog(sink Sink) *EventLog {
	return &EventLog{sink: sink}
}

// Emit appends a narrated line, evicting the oldest past capacity.
func (l *EventLog) Emit(simTime, message, category string) {
	e := Event{
		ID:       uuid.New().String(),
		SimTime:  simTime,
		Message:  message,
		Category: category,
	}
	l.entries = append(l.entries, e)
	if len(l.entries) > EventCap {
		l.entries = l.entries[len(l.entries)-EventCap:]
	}
	if l.sink != nil {
		l.sink.Emit(e)
	}
}

// Recent returns up to n of the newest entries, oldest first.
func (l *EventLog) Recent(n int) []Event {
	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Event, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

// Len returns the number of retained entries.
func (l *EventLog) Len() int { return len(l.entries) }
