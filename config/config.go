package config

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// MinJWTSecretLength is the minimum required length for the token signing secret in production
	MinJWTSecretLength = 32
)

type Config struct {
	ServerPort  string
	Environment string

	// Database
	DBDriver         string // sqlite, postgres, libsql
	DBPath           string
	DatabaseURL      string
	TursoDatabaseURL string
	TursoAuthToken   string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration
	RedisURL  string

	// Uploads
	UploadDir     string
	MaxUploadSize int64

	// Email
	MailProvider   string // resend, sendgrid, or empty for no mail service
	ResendAPIKey   string
	SendGridAPIKey string
	EmailFrom      string
	EmailFromName  string
	EmailTestMode  bool // When true, emails are logged instead of sent

	// S3-compatible storage
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// Observability
	LogLevel     string
	LogFormat    string
	OTLPEndpoint string

	// Other
	AllowedOrigins []string
	SeedDemoData   bool
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")
	jwtSecret := getEnv("JWT_SECRET", "")

	ValidateJWTSecret(jwtSecret, environment)

	if jwtSecret == "" && environment != "production" {
		jwtSecret = GenerateSecureSecret()
		log.Println("[INFO] Generated temporary JWT secret for development. Set JWT_SECRET env var for persistence.")
	}

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		Environment:       environment,
		DBDriver:          strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:            getEnv("DB_PATH", "db/app.db"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		TursoDatabaseURL:  getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:    getEnv("TURSO_AUTH_TOKEN", ""),
		JWTSecret:         jwtSecret,
		TokenTTL:          time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		RedisURL:          getEnv("REDIS_URL", ""),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSize:     int64(getEnvInt("MAX_UPLOAD_MB", 50)) * 1024 * 1024,
		MailProvider:      strings.ToLower(getEnv("MAIL_PROVIDER", "")),
		ResendAPIKey:      getEnv("RESEND_API_KEY", ""),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		EmailFrom:         getEnv("EMAIL_FROM", "noreply@legalcms.in"),
		EmailFromName:     getEnv("EMAIL_FROM_NAME", "Legal CMS"),
		EmailTestMode:     getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Region:          getEnv("S3_REGION", "auto"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", defaultLogFormat(environment)),
		OTLPEndpoint:      getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		AllowedOrigins:    strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		SeedDemoData:      getEnvBool("SEED_DEMO_DATA", false),
	}
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// MailConfigured reports whether an outbound mail provider has been selected
func (c *Config) MailConfigured() bool {
	return c.MailProvider != ""
}

// S3Configured reports whether S3-compatible blob storage credentials are present
func (c *Config) S3Configured() bool {
	return c.S3Bucket != "" && c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}

func defaultLogFormat(environment string) string {
	if environment == "production" {
		return "json"
	}
	return "console"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("[WARNING] Invalid value for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// ValidateJWTSecret validates the token signing secret.
// In production it must be at least 32 bytes and not a known insecure default.
func ValidateJWTSecret(secret string, environment string) error {
	insecureDefaults := []string{
		"super-secret-jwt-key-change-in-production",
		"change-me",
		"secret",
		"development",
		"test",
		"",
	}

	for _, insecure := range insecureDefaults {
		if strings.EqualFold(secret, insecure) {
			if environment == "production" {
				log.Fatal("[CRITICAL] JWT_SECRET is set to an insecure default value. Generate a secure random secret with: openssl rand -base64 32")
			}
			if secret != "" {
				log.Printf("[WARNING] JWT_SECRET is set to an insecure default value. This is acceptable only in development.")
			}
			return nil
		}
	}

	if environment == "production" && len(secret) < MinJWTSecretLength {
		log.Fatalf("[CRITICAL] JWT_SECRET must be at least %d characters in production (current: %d). Generate with: openssl rand -base64 32", MinJWTSecretLength, len(secret))
	}

	return nil
}

// GenerateSecureSecret generates a cryptographically secure random secret.
// Used only in development when no secret is provided.
func GenerateSecureSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Printf("[WARNING] Failed to generate secure secret: %v", err)
		return ""
	}
	return base64.StdEncoding.EncodeToString(bytes)
}
