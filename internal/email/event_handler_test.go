package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/TomGruner85/task-manager-api/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMailer records calls and signals each one on a channel.
type recordingMailer struct {
	mu        sync.Mutex
	welcomes  []string
	cancels   []string
	sendErr   error
	callsMade chan struct{}
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{callsMade: make(chan struct{}, 8)}
}

func (m *recordingMailer) SendWelcome(ctx context.Context, to, name string) error {
	m.mu.Lock()
	m.welcomes = append(m.welcomes, to)
	m.mu.Unlock()
	m.callsMade <- struct{}{}
	return m.sendErr
}

func (m *recordingMailer) SendCancellation(ctx context.Context, to, name string) error {
	m.mu.Lock()
	m.cancels = append(m.cancels, to)
	m.mu.Unlock()
	m.callsMade <- struct{}{}
	return m.sendErr
}

func (m *recordingMailer) waitForCall(t *testing.T) {
	t.Helper()
	select {
	case <-m.callsMade:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for mailer call")
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEventHandlerSendsWelcomeEmail(t *testing.T) {
	mailer := newRecordingMailer()
	handler := NewEventHandler(mailer, testLogger())

	event, err := events.NewUserEvent(
		events.UserRegistered,
		events.UserPayload{Email: "ana@x.com", Name: "Ana"},
	)
	require.NoError(t, err)

	require.NoError(t, handler.HandleEvent(context.Background(), event))

	mailer.waitForCall(t)
	assert.Equal(t, []string{"ana@x.com"}, mailer.welcomes)
	assert.Empty(t, mailer.cancels)
}

func TestEventHandlerSendsCancellationEmail(t *testing.T) {
	mailer := newRecordingMailer()
	handler := NewEventHandler(mailer, testLogger())

	event, err := events.NewUserEvent(
		events.UserDeleted,
		events.UserPayload{Email: "ana@x.com", Name: "Ana"},
	)
	require.NoError(t, err)

	require.NoError(t, handler.HandleEvent(context.Background(), event))

	mailer.waitForCall(t)
	assert.Equal(t, []string{"ana@x.com"}, mailer.cancels)
}

func TestEventHandlerIgnoresUnknownEventTypes(t *testing.T) {
	mailer := newRecordingMailer()
	handler := NewEventHandler(mailer, testLogger())

	event, err := events.NewUserEvent("task.created", events.UserPayload{})
	require.NoError(t, err)

	require.NoError(t, handler.HandleEvent(context.Background(), event))

	select {
	case <-mailer.callsMade:
		t.Fatal("mailer must not be called for unrelated events")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEventHandlerSwallowsSendFailures(t *testing.T) {
	mailer := newRecordingMailer()
	mailer.sendErr = errors.New("provider down")
	handler := NewEventHandler(mailer, testLogger())

	event, err := events.NewUserEvent(
		events.UserRegistered,
		events.UserPayload{Email: "ana@x.com", Name: "Ana"},
	)
	require.NoError(t, err)

	// The handler must report success regardless of the provider outcome.
	assert.NoError(t, handler.HandleEvent(context.Background(), event))
	mailer.waitForCall(t)
}

func TestNoopMailer(t *testing.T) {
	mailer := NewNoopMailer()
	assert.NoError(t, mailer.SendWelcome(context.Background(), "ana@x.com", "Ana"))
	assert.NoError(t, mailer.SendCancellation(context.Background(), "ana@x.com", "Ana"))
}
