package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/TomGruner85/task-manager-api/internal/events"
)

// sendTimeout bounds a single provider call once it has been detached from
// the originating request.
const sendTimeout = 30 * time.Second

// EventHandler listens for user lifecycle events and sends the matching
// transactional email. Sending happens on a separate goroutine so the
// request that triggered the event never waits for the provider, and send
// failures are logged but never propagated.
type EventHandler struct {
	mailer Mailer
	logger *slog.Logger
}

// Ensure EventHandler implements events.EventHandler interface
var _ events.EventHandler = (*EventHandler)(nil)

// NewEventHandler creates an EventHandler dispatching to the given Mailer.
func NewEventHandler(mailer Mailer, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		mailer: mailer,
		logger: logger.With("component", "email_event_handler"),
	}
}

// HandleEvent implements events.EventHandler. Unknown event types are
// ignored so additional handlers can share the same emitter.
func (h *EventHandler) HandleEvent(ctx context.Context, event *events.UserEvent) error {
	switch event.Type {
	case events.UserRegistered, events.UserDeleted:
	default:
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload events.UserPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal event payload",
			"error", err,
			"event_id", event.ID)
		return nil
	}

	// Fire and forget: detach from the request context so the email outlives
	// the request, and swallow any send error after logging it.
	go func(eventType string, payload events.UserPayload) {
		sendCtx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		var err error
		switch eventType {
		case events.UserRegistered:
			err = h.mailer.SendWelcome(sendCtx, payload.Email, payload.Name)
		case events.UserDeleted:
			err = h.mailer.SendCancellation(sendCtx, payload.Email, payload.Name)
		}

		if err != nil {
			h.logger.Error("failed to send account email",
				"error", err,
				"event_type", eventType,
				"user_id", payload.UserID)
		}
	}(event.Type, payload)

	return nil
}
