package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/danieltanr/webauth/config"
	"github.com/danieltanr/webauth/internal/auth/domain"
)

// SMTPMailer delivers the password-reset emails. Dial and send timeouts are
// handled by the underlying client; callers only see pass or fail.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

func New(cfg *config.Config) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
	}

	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPMailer{client: client, from: cfg.EmailFrom}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, email domain.Email) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextPlain, email.Body)

	return m.client.DialAndSendWithContext(ctx, msg)
}
