package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"legal_cms_go/config"

	"github.com/resend/resend-go/v2"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer delivers outbound email
type Mailer interface {
	Send(ctx context.Context, email *Email) error
	Name() string
}

// NewMailer builds the mailer selected by MAIL_PROVIDER. It returns nil when
// no provider is configured. In test mode mail is logged instead of sent.
func NewMailer(cfg *config.Config) (Mailer, error) {
	if !cfg.MailConfigured() {
		return nil, nil
	}

	from := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	if cfg.EmailTestMode {
		return &ConsoleMailer{From: from}, nil
	}

	switch cfg.MailProvider {
	case "resend":
		if cfg.ResendAPIKey == "" {
			return nil, fmt.Errorf("RESEND_API_KEY not configured")
		}
		return NewResendMailer(cfg.ResendAPIKey, from), nil
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY not configured")
		}
		return NewSendGridMailer(cfg.SendGridAPIKey, cfg.EmailFromName, cfg.EmailFrom), nil
	default:
		return nil, fmt.Errorf("unsupported MAIL_PROVIDER %q", cfg.MailProvider)
	}
}

// NewPlainEmail builds a single-recipient message from plain text, with an
// escaped HTML alternative
func NewPlainEmail(to, subject, body string) *Email {
	return &Email{
		To:       []string{to},
		Subject:  subject,
		TextBody: body,
		HTMLBody: "<p>" + strings.ReplaceAll(html.EscapeString(body), "\n", "<br>") + "</p>",
	}
}

// ResendMailer sends through the Resend API
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from}
}

func (m *ResendMailer) Name() string {
	return "resend"
}

func (m *ResendMailer) Send(ctx context.Context, email *Email) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	zap.L().Info("email sent", zap.String("provider", "resend"), zap.String("id", sent.Id), zap.Strings("to", email.To))
	return nil
}

// SendGridMailer sends through the SendGrid v3 API
type SendGridMailer struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
}

func NewSendGridMailer(apiKey, fromName, fromAddr string) *SendGridMailer {
	return &SendGridMailer{client: sendgrid.NewSendClient(apiKey), fromName: fromName, fromAddr: fromAddr}
}

func (m *SendGridMailer) Name() string {
	return "sendgrid"
}

func (m *SendGridMailer) Send(ctx context.Context, email *Email) error {
	from := mail.NewEmail(m.fromName, m.fromAddr)
	for _, recipient := range email.To {
		to := mail.NewEmail("", recipient)
		message := mail.NewSingleEmail(from, email.Subject, to, email.TextBody, email.HTMLBody)

		response, err := m.client.SendWithContext(ctx, message)
		if err != nil {
			return fmt.Errorf("failed to send email via SendGrid: %w", err)
		}
		if response.StatusCode >= 400 {
			zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body, "to", recipient)
			return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
		}
	}

	zap.L().Info("email sent", zap.String("provider", "sendgrid"), zap.Strings("to", email.To))
	return nil
}

// ConsoleMailer logs messages instead of sending them
type ConsoleMailer struct {
	From string
}

func (m *ConsoleMailer) Name() string {
	return "console"
}

func (m *ConsoleMailer) Send(_ context.Context, email *Email) error {
	zap.S().Infow("email logged (test mode, not sent)",
		"from", m.From,
		"to", email.To,
		"subject", email.Subject,
		"body", truncate(email.TextBody, 500),
	)
	return nil
}

// truncate truncates a string to at most maxLen runes
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
