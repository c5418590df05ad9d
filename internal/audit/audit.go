package audit

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one audit record for a workflow state change (actor created or
// regraded, form created, signed, executed). Key groups related events onto
// the same partition; callers use the form or actor ID.
type Event struct {
	ID        uuid.UUID              `json:"id"`
	EventType string                 `json:"eventType"`
	Key       string                 `json:"key,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Ts        time.Time              `json:"ts"`
}

// Emitter publishes audit events. Emission is best-effort from the caller's
// point of view: the workflow result is already committed when Emit runs.
type Emitter interface {
	Emit(ctx context.Context, ev Event) error
	Close() error
}

func fill(ev Event) Event {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.Ts.IsZero() {
		ev.Ts = time.Now().UTC()
	}
	return ev
}

// LogEmitter writes events to the process log. Used when no broker is
// configured.
type LogEmitter struct{}

func NewLogEmitter() *LogEmitter { return &LogEmitter{} }

func (e *LogEmitter) Emit(ctx context.Context, ev Event) error {
	ev = fill(ev)
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	log.Printf("[audit] %s %s", ev.EventType, b)
	return nil
}

func (e *LogEmitter) Close() error { return nil }

// MemoryEmitter records events for tests.
type MemoryEmitter struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryEmitter() *MemoryEmitter { return &MemoryEmitter{} }

func (e *MemoryEmitter) Emit(ctx context.Context, ev Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, fill(ev))
	return nil
}

func (e *MemoryEmitter) Close() error { return nil }

func (e *MemoryEmitter) Events() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Event, len(e.events))
	copy(out, e.events)
	return out
}
