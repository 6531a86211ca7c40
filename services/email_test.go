package services

import (
	"context"
	"testing"

	"legal_cms_go/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailer(t *testing.T) {
	base := config.Config{EmailFrom: "noreply@legalcms.in", EmailFromName: "Legal CMS"}

	t.Run("no provider", func(t *testing.T) {
		cfg := base
		mailer, err := NewMailer(&cfg)
		require.NoError(t, err)
		assert.Nil(t, mailer)
	})

	t.Run("test mode logs", func(t *testing.T) {
		cfg := base
		cfg.MailProvider = "resend"
		cfg.EmailTestMode = true
		mailer, err := NewMailer(&cfg)
		require.NoError(t, err)
		require.NotNil(t, mailer)
		assert.Equal(t, "console", mailer.Name())
		assert.NoError(t, mailer.Send(context.Background(), NewPlainEmail("a@example.com", "Hi", "Body")))
	})

	t.Run("resend", func(t *testing.T) {
		cfg := base
		cfg.MailProvider = "resend"
		_, err := NewMailer(&cfg)
		assert.EqualError(t, err, "RESEND_API_KEY not configured")

		cfg.ResendAPIKey = "re_test"
		mailer, err := NewMailer(&cfg)
		require.NoError(t, err)
		assert.Equal(t, "resend", mailer.Name())
	})

	t.Run("sendgrid", func(t *testing.T) {
		cfg := base
		cfg.MailProvider = "sendgrid"
		_, err := NewMailer(&cfg)
		assert.EqualError(t, err, "SENDGRID_API_KEY not configured")

		cfg.SendGridAPIKey = "SG.test"
		mailer, err := NewMailer(&cfg)
		require.NoError(t, err)
		assert.Equal(t, "sendgrid", mailer.Name())
	})

	t.Run("unsupported", func(t *testing.T) {
		cfg := base
		cfg.MailProvider = "pigeon"
		_, err := NewMailer(&cfg)
		assert.Error(t, err)
	})
}

func TestNewPlainEmail(t *testing.T) {
	email := NewPlainEmail("client@example.com", "Order", "Hearing <moved>\nSee you")
	assert.Equal(t, []string{"client@example.com"}, email.To)
	assert.Equal(t, "Hearing <moved>\nSee you", email.TextBody)
	assert.Equal(t, "<p>Hearing &lt;moved&gt;<br>See you</p>", email.HTMLBody)
}

func TestResendMailerRequiresBody(t *testing.T) {
	mailer := NewResendMailer("re_test", "Legal CMS <noreply@legalcms.in>")
	err := mailer.Send(context.Background(), &Email{To: []string{"a@example.com"}, Subject: "Empty"})
	assert.EqualError(t, err, "email must have either HTMLBody or TextBody")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "न्या", truncate("न्याय", 4))
}
