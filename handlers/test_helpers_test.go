package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"legal_cms_go/config"
	"legal_cms_go/middleware"
	"legal_cms_go/models"
	"legal_cms_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "handlers-test-secret-0123456789abcdef"

// testServer is the full API wired against an in-memory database
type testServer struct {
	e       *echo.Echo
	db      *gorm.DB
	tokens  *services.TokenService
	storage *services.LocalStorage
}

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared-memory name isolates each test's database
	dsn := fmt.Sprintf("file:mem_%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.New().String())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	require.NoError(t, testDB.AutoMigrate(models.All()...))
	return testDB
}

func setupServer(t *testing.T) *testServer {
	return setupServerWithMailer(t, nil)
}

func setupServerWithMailer(t *testing.T, mailer services.Mailer) *testServer {
	testDB := setupTestDB(t)
	storage := services.NewLocalStorage(t.TempDir())
	tokens := services.NewTokenService(testSecret, time.Hour, services.NewMemoryRevocationStore())

	cfg := &config.Config{
		Environment:   "test",
		JWTSecret:     testSecret,
		TokenTTL:      time.Hour,
		MaxUploadSize: services.MaxUploadSize,
	}

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{Requests: 1000, Window: time.Minute})
	RegisterRoutes(e, New(testDB, cfg, tokens, storage, mailer), limiter)

	return &testServer{e: e, db: testDB, tokens: tokens, storage: storage}
}

// createUser inserts a user directly and returns a bearer token for it
func (s *testServer) createUser(t *testing.T, name, email, role string) (*models.User, string) {
	hash, err := services.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{Name: name, Email: email, Password: hash, Role: role}
	require.NoError(t, s.db.Create(user).Error)

	token, err := s.tokens.Issue(user.ID)
	require.NoError(t, err)
	return user, token
}

func (s *testServer) createCase(t *testing.T, c *models.Case) *models.Case {
	if c.CaseType == "" {
		c.CaseType = models.DefaultCaseType
	}
	if c.Status == "" {
		c.Status = models.CaseStatusFiled
	}
	if c.Priority == "" {
		c.Priority = models.PriorityMedium
	}
	if c.FilingDate.IsZero() {
		c.FilingDate = services.Today()
	}
	require.NoError(t, s.db.Create(c).Error)
	return c
}

// do sends a request through the router. A non-nil body is encoded as JSON
// unless it is already an io.Reader.
func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	contentType := echo.MIMEApplicationJSON
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, contentType)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), "body: %s", rec.Body.String())
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	var body map[string]string
	decode(t, rec, &body)
	return body["error"]
}

func stringPtr(s string) *string {
	return &s
}

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

// recordingMailer captures sent mail
type recordingMailer struct {
	sent []*services.Email
	err  error
}

func (m *recordingMailer) Send(_ context.Context, email *services.Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

func (m *recordingMailer) Name() string {
	return "recording"
}

var _ services.Mailer = (*recordingMailer)(nil)
