package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MAIL_PROVIDER", "")
	t.Setenv("S3_BUCKET", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(50*1024*1024), cfg.MaxUploadSize)
	assert.NotEmpty(t, cfg.JWTSecret, "development should generate a secret")
	assert.True(t, cfg.EmailTestMode)
	assert.False(t, cfg.MailConfigured())
	assert.False(t, cfg.S3Configured())
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-very-long-secret-value-for-testing-only-123")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	t.Setenv("MAX_UPLOAD_MB", "10")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("MAIL_PROVIDER", "sendgrid")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg := Load()

	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadSize)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.True(t, cfg.MailConfigured())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))

	t.Setenv("SOME_INT", "-3")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FLAG", "yes")
	assert.True(t, getEnvBool("FLAG", false))

	t.Setenv("FLAG", "off")
	assert.False(t, getEnvBool("FLAG", true))

	t.Setenv("FLAG", "maybe")
	assert.True(t, getEnvBool("FLAG", true))
}

func TestGenerateSecureSecret(t *testing.T) {
	a := GenerateSecureSecret()
	b := GenerateSecureSecret()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
