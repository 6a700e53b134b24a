package email

import (
	"context"
	"fmt"

	"github.com/TomGruner85/task-manager-api/internal/config"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer implements Mailer against the SendGrid v3 API.
type SendGridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

// Ensure SendGridMailer implements Mailer interface
var _ Mailer = (*SendGridMailer)(nil)

// NewSendGridMailer creates a SendGridMailer from the email configuration.
func NewSendGridMailer(cfg config.EmailConfig) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   mail.NewEmail("Task App", cfg.FromAddress),
	}
}

// SendWelcome implements Mailer.
func (m *SendGridMailer) SendWelcome(ctx context.Context, to, name string) error {
	body := fmt.Sprintf(
		"Welcome to the Task App, %s. Let me know how you get along with the app.",
		name,
	)
	return m.send(ctx, to, name, "Welcome to Task App", body)
}

// SendCancellation implements Mailer.
func (m *SendGridMailer) SendCancellation(ctx context.Context, to, name string) error {
	body := fmt.Sprintf(
		"%s, we are very sorry to see you leave. Please let us know how we can improve our service.",
		name,
	)
	return m.send(ctx, to, name, "Sorry to see you leave", body)
}

func (m *SendGridMailer) send(ctx context.Context, to, name, subject, body string) error {
	message := mail.NewSingleEmail(m.from, subject, mail.NewEmail(name, to), body, "")

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("email provider rejected message: status %d", response.StatusCode)
	}

	return nil
}
