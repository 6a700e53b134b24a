package mocks

import (
	"context"
	"sync"

	"github.com/TomGruner85/task-manager-api/internal/email"
	"github.com/TomGruner85/task-manager-api/internal/events"
)

// MockEventEmitter records every emitted event for later assertions.
type MockEventEmitter struct {
	mu     sync.Mutex
	events []*events.UserEvent

	EmitEventFn func(ctx context.Context, event *events.UserEvent) error
}

var _ events.EventEmitter = (*MockEventEmitter)(nil)

// NewMockEventEmitter creates an emitter with no recorded events.
func NewMockEventEmitter() *MockEventEmitter {
	return &MockEventEmitter{}
}

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.UserEvent) error {
	if m.EmitEventFn != nil {
		return m.EmitEventFn(ctx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Events returns a snapshot of everything emitted so far.
func (m *MockEventEmitter) Events() []*events.UserEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*events.UserEvent, len(m.events))
	copy(out, m.events)
	return out
}

// EventTypes returns the emitted event types in order.
func (m *MockEventEmitter) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.events))
	for i, e := range m.events {
		types[i] = e.Type
	}
	return types
}

// MockMailer is a configurable mock implementation of email.Mailer.
type MockMailer struct {
	mu            sync.Mutex
	welcomes      []string
	cancellations []string

	SendWelcomeFn      func(ctx context.Context, to, name string) error
	SendCancellationFn func(ctx context.Context, to, name string) error
}

var _ email.Mailer = (*MockMailer)(nil)

func (m *MockMailer) SendWelcome(ctx context.Context, to, name string) error {
	if m.SendWelcomeFn != nil {
		return m.SendWelcomeFn(ctx, to, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomes = append(m.welcomes, to)
	return nil
}

func (m *MockMailer) SendCancellation(ctx context.Context, to, name string) error {
	if m.SendCancellationFn != nil {
		return m.SendCancellationFn(ctx, to, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancellations = append(m.cancellations, to)
	return nil
}

// Welcomes returns the recipients of recorded welcome emails.
func (m *MockMailer) Welcomes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.welcomes))
	copy(out, m.welcomes)
	return out
}

// Cancellations returns the recipients of recorded cancellation emails.
func (m *MockMailer) Cancellations() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.cancellations))
	copy(out, m.cancellations)
	return out
}
