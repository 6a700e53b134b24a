// Package events provides a minimal event-driven seam between the user
// service and side-effect handlers such as email notifications. Services can
// emit lifecycle events without knowing which handlers will process them,
// keeping non-critical side effects out of the request path's error flow.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User lifecycle event types.
const (
	// UserRegistered is emitted after a new account has been persisted.
	UserRegistered = "user.registered"

	// UserDeleted is emitted after an account (and its tasks) have been removed.
	UserDeleted = "user.deleted"
)

// UserEvent describes a user lifecycle change.
type UserEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the event type constants above
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UserPayload is the payload carried by the user lifecycle events.
type UserPayload struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *UserEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewUserEvent creates a UserEvent with the specified type and payload.
func NewUserEvent(eventType string, payload interface{}) (*UserEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &UserEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler processes emitted events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *UserEvent) error
}

// EventEmitter publishes events to registered handlers.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *UserEvent) error
}
