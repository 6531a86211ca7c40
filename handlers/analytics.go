package handlers

import (
	"net/http"
	"time"

	"legal_cms_go/middleware"
	"legal_cms_go/services"

	"github.com/labstack/echo/v4"
)

// Dashboard returns role-specific headline numbers
func (h *Handler) Dashboard(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	stats, err := services.Dashboard(h.db(c), user, time.Now().UTC())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) CasesTrend(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	points, err := services.CasesTrend(h.db(c), user, time.Now().UTC())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, points)
}

func (h *Handler) CasesByType(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	slices, err := services.CasesByType(h.db(c), user)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, slices)
}

func (h *Handler) DailyHearings(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	days, err := services.DailyHearings(h.db(c), user, time.Now().UTC())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, days)
}

// AdvocatePerformance reports the caller's own record. Court users may ask
// for any advocate with ?advocate_id=.
func (h *Handler) AdvocatePerformance(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	advocateID, err := queryID(c, "advocate_id")
	if err != nil {
		return err
	}

	perf, err := services.AdvocatePerformanceFor(h.db(c), user, advocateID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, perf)
}

func (h *Handler) Pendency(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	points, err := services.Pendency(h.db(c), user, time.Now().UTC())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, points)
}
