package handlers

import (
	"net/http"
	"testing"

	"legal_cms_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seededServer loads the demo data set and returns a login helper for it
func seededServer(t *testing.T) (*testServer, func(email string) string) {
	t.Helper()
	s := setupServer(t)
	_, err := services.SeedDemoData(s.db)
	require.NoError(t, err)

	login := func(email string) string {
		rec := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": email, "password": services.DemoPassword,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body struct {
			Token string `json:"token"`
		}
		decode(t, rec, &body)
		return body.Token
	}
	return s, login
}

func TestDashboard(t *testing.T) {
	s, login := seededServer(t)

	t.Run("Court", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/analytics/dashboard", login("court@example.com"), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var d services.CourtDashboard
		decode(t, rec, &d)
		assert.Equal(t, int64(8), d.TotalCases)
		assert.Equal(t, int64(7), d.PendingCases)
		assert.Equal(t, int64(3), d.AdvocatesCount)
	})

	t.Run("Advocate", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/analytics/dashboard", login("priya@example.com"), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var d services.AdvocateDashboard
		decode(t, rec, &d)
		assert.Equal(t, int64(3), d.ActiveCases)
	})

	t.Run("Public", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/analytics/dashboard", login("rajesh@example.com"), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var d services.PublicDashboard
		decode(t, rec, &d)
		assert.Equal(t, int64(2), d.ActiveCases)
	})
}

func TestAnalyticsSeries(t *testing.T) {
	s, login := seededServer(t)
	token := login("court@example.com")

	t.Run("Trend", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/analytics/cases-trend", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var points []services.TrendPoint
		decode(t, rec, &points)
		assert.Len(t, points, 7)
	})

	t.Run("Pendency", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/analytics/pendency", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var points []services.PendencyPoint
		decode(t, rec, &points)
		assert.Len(t, points, 12)
	})

	t.Run("DailyHearings", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/analytics/daily-hearings", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var days []services.DayLoad
		decode(t, rec, &days)
		require.Len(t, days, 6)
		assert.Equal(t, "Mon", days[0].Day)
		assert.Equal(t, "Sat", days[5].Day)
	})

	t.Run("ByType", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/analytics/cases-by-type", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var slices []services.TypeSlice
		decode(t, rec, &slices)
		var total int64
		for _, sl := range slices {
			total += sl.Value
			assert.NotEmpty(t, sl.Color)
		}
		assert.Equal(t, int64(8), total)
	})
}

func TestAdvocatePerformance(t *testing.T) {
	s, login := seededServer(t)

	rec := s.do(t, http.MethodGet, "/api/analytics/advocate-performance", login("priya@example.com"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var perf services.AdvocatePerformance
	decode(t, rec, &perf)
	assert.Equal(t, int64(3), perf.TotalCases)
	assert.Equal(t, "0.0%", perf.WinRate)
	assert.Len(t, perf.Specializations, 2)

	t.Run("CourtPicksAdvocate", func(t *testing.T) {
		token := login("court@example.com")
		rec := s.do(t, http.MethodGet, "/api/analytics/advocate-performance?advocate_id=999", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
