// Package audit records an append-only trail of ledger mutations.
//
// Every write to the record store (new order, settlement, adjustment,
// member change) emits one Event. Events are best-effort: they are queued
// on a buffered channel and persisted by a background worker, so a slow or
// failing sink never blocks a request. The ledger computation itself never
// emits events — it has no side effects.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is one audited mutation.
type Event struct {
	ID        uuid.UUID         `json:"id"`
	Type      string            `json:"event_type"`
	Data      map[string]string `json:"event_data,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewEvent builds an event of the given type with its payload.
func NewEvent(eventType string, data map[string]string) Event {
	return Event{
		ID:        uuid.New(),
		Type:      eventType,
		Data:      data,
		CreatedAt: time.Now(),
	}
}

// Sink persists events.
type Sink interface {
	Save(ctx context.Context, e Event) error
}

// Recorder accepts events for asynchronous persistence. Worker implements
// it; tests use lighter stand-ins.
type Recorder interface {
	Record(e Event)
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) Record(Event) {}
