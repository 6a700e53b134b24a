// Package email sends transactional account emails through an external
// provider. Sending is a non-critical side effect: failures are logged by the
// caller and never surfaced to the end user.
package email

import "context"

// Mailer defines the transactional emails the application sends.
type Mailer interface {
	// SendWelcome greets a freshly registered user.
	SendWelcome(ctx context.Context, to, name string) error

	// SendCancellation says goodbye to a user who deleted their account.
	SendCancellation(ctx context.Context, to, name string) error
}

// NoopMailer discards every email. Used when no provider API key is
// configured, typically in development and tests.
type NoopMailer struct{}

// NewNoopMailer creates a NoopMailer.
func NewNoopMailer() *NoopMailer {
	return &NoopMailer{}
}

// SendWelcome implements Mailer.
func (m *NoopMailer) SendWelcome(ctx context.Context, to, name string) error {
	return nil
}

// SendCancellation implements Mailer.
func (m *NoopMailer) SendCancellation(ctx context.Context, to, name string) error {
	return nil
}
