package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	// TypeScoreChanged is emitted when a profile's rounded score moves.
	TypeScoreChanged = "score.changed"
)

// Event is a notification about something that happened to a profile.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	ProfileID uuid.UUID       `json:"profile_id"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// ScoreChangedPayload is the payload of a TypeScoreChanged event.
type ScoreChangedPayload struct {
	PreviousScore int    `json:"previous_score"`
	Score         int    `json:"score"`
	Band          string `json:"band"`
	Reason        string `json:"reason"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an event for profileID with a JSON-encoded payload.
func NewEvent(eventType string, profileID uuid.UUID, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		ProfileID: profileID,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler processes events delivered by an EventEmitter.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventHandlerFunc adapts a plain function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter publishes events to interested handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}
