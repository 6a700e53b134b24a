package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler counts the events it sees and can be made to fail.
type recordingHandler struct {
	HandledCount int
	LastEvent    *UserEvent
	HandlerError error
}

func (h *recordingHandler) HandleEvent(ctx context.Context, event *UserEvent) error {
	h.HandledCount++
	h.LastEvent = event
	return h.HandlerError
}

func TestInMemoryEventEmitter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		event, err := NewUserEvent(UserRegistered, UserPayload{Email: "ana@x.com", Name: "Ana"})
		require.NoError(t, err)

		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
	})

	t.Run("emit event reaches every handler", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		handler1 := &recordingHandler{}
		handler2 := &recordingHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event, err := NewUserEvent(UserDeleted, UserPayload{Email: "ana@x.com", Name: "Ana"})
		require.NoError(t, err)

		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Equal(t, event, handler1.LastEvent)
	})

	t.Run("failing handler does not block the rest", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		failing := &recordingHandler{HandlerError: errors.New("handler error")}
		succeeding := &recordingHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(succeeding)

		event, err := NewUserEvent(UserRegistered, UserPayload{Email: "ana@x.com", Name: "Ana"})
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.EqualError(t, err, "handler error")
		assert.Equal(t, 1, failing.HandledCount)
		assert.Equal(t, 1, succeeding.HandledCount)
	})
}

func TestUserEventPayloadRoundTrip(t *testing.T) {
	event, err := NewUserEvent(UserRegistered, UserPayload{Email: "ana@x.com", Name: "Ana"})
	require.NoError(t, err)

	var payload UserPayload
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, "ana@x.com", payload.Email)
	assert.Equal(t, "Ana", payload.Name)
}
