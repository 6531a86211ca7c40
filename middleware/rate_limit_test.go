package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
	})

	assert.NotNil(t, rl)
	assert.Equal(t, 10, rl.config.Requests)
	assert.Equal(t, time.Minute, rl.config.Window)
	assert.NotNil(t, rl.config.KeyFunc)
	assert.Equal(t, "Too many requests. Please try again later.", rl.config.Message)
}

func TestRateLimiterMiddleware(t *testing.T) {
	e := echo.New()

	t.Run("WithinLimit", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{Requests: 2, Window: time.Minute})
		handler := rl.Middleware()(okHandler)

		for i := 0; i < 2; i++ {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), rec)
			assert.NoError(t, handler(c))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("ExceededLimit", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{Requests: 1, Window: time.Minute, Message: "slow down"})
		handler := rl.Middleware()(okHandler)

		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), httptest.NewRecorder())
		assert.NoError(t, handler(c))

		c = e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), httptest.NewRecorder())
		err := handler(c)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusTooManyRequests, he.Code)
		assert.Equal(t, "slow down", he.Message)
	})

	t.Run("SeparateKeys", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{Requests: 1, Window: time.Minute})
		handler := rl.Middleware()(okHandler)

		for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
			req.Header.Set(echo.HeaderXRealIP, ip)
			assert.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))
		}
	})
}

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2025, 2, 20, 10, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(RateLimitConfig{Requests: 5, Window: time.Minute})
	rl.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("1.2.3.4"))
	}
	assert.False(t, rl.Allow("1.2.3.4"))

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("1.2.3.4"), "a new window starts after expiry")
}

func TestRateLimiterLazySweep(t *testing.T) {
	now := time.Date(2025, 2, 20, 10, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(RateLimitConfig{Requests: 1, Window: time.Minute})
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	rl.Allow("b")
	assert.Equal(t, 2, rl.size())

	now = now.Add(2 * time.Minute)
	rl.Allow("c")
	assert.Equal(t, 1, rl.size(), "expired keys are dropped on the next request")
}

func TestNewAuthRateLimiter(t *testing.T) {
	rl := NewAuthRateLimiter()
	assert.Equal(t, 5, rl.config.Requests)
	assert.Equal(t, time.Minute, rl.config.Window)
}
