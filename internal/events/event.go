// Package events announces successful mutations of the remote data so other
// household tools can react to them. Publishing is best effort: a failed
// publish is logged and never undoes or fails the action that caused it.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"familyspend/internal/core"
)

// Kind names the mutation.
type Kind string

const (
	ExpenseCreated Kind = "expense.created"
	ExpenseDeleted Kind = "expense.deleted"
	CardCreated    Kind = "card.created"
	CardUpdated    Kind = "card.updated"
	CardDeleted    Kind = "card.deleted"
)

// Event is the message body. Consumers fetch the entity itself from the
// data service when they need more than its id.
type Event struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	EntityID  core.ID   `json:"entity_id"`
	ProfileID core.ID   `json:"profile_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// New stamps an event with a fresh id and the current time.
func New(kind Kind, entity, profile core.ID) Event {
	return Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		EntityID:  entity,
		ProfileID: profile,
		Timestamp: time.Now().UTC(),
	}
}

func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON decodes an event body.
func FromJSON(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	return e, nil
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Noop discards events. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

// Memory keeps published events in order.
type Memory struct {
	mu     sync.Mutex
	events []Event
	err    error
}

// FailWith makes subsequent publishes return err.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Memory) Publish(_ context.Context, e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, e)
	return nil
}

func (m *Memory) Close() error { return nil }

// Events returns what was published so far.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

// Kinds returns the kinds published so far, in order.
func (m *Memory) Kinds() []Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Kind, len(m.events))
	for i, e := range m.events {
		out[i] = e.Kind
	}
	return out
}
