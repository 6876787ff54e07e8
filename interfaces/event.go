package interfaces

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	// Session events
	EventTypeLogin       EventType = "session.login"
	EventTypeLoginFailed EventType = "session.login_failed"
	EventTypeLogout      EventType = "session.logout"
	EventTypeNavigate    EventType = "session.navigate"

	// Transaction events
	EventTypeTransaction       EventType = "transaction.completed"
	EventTypeTransactionFailed EventType = "transaction.failed"

	// System events
	EventTypeStart EventType = "system.start"
	EventTypeStop  EventType = "system.stop"
)

type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	SessionID string                 `json:"session_id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// EventPublisher delivers events to whoever is listening. Implementations
// must not block the caller for long; a session never waits on observers.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

func (e *Event) String() string {
	jsonData, err := json.Marshal(e)
	if err != nil {
		return "Error serializing event"
	}
	return string(jsonData)
}

// NewEvent creates a new event with the current timestamp
func NewEvent(eventType EventType, source string) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    source,
		Data:      make(map[string]interface{}),
	}
}

// WithSession tags the event with the session it came from
func (e *Event) WithSession(sessionID string) *Event {
	e.SessionID = sessionID
	return e
}

// WithData adds data to the event
func (e *Event) WithData(key string, value interface{}) *Event {
	e.Data[key] = value
	return e
}

// WithError adds an error to the event
func (e *Event) WithError(err error) *Event {
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// NopPublisher drops every event. Used when no event bus is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *Event) error { return nil }
func (NopPublisher) Close() error                          { return nil }
