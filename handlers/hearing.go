package handlers

import (
	"net/http"

	"legal_cms_go/middleware"
	"legal_cms_go/models"
	"legal_cms_go/services"

	"github.com/labstack/echo/v4"
)

type hearingRequest struct {
	CaseID    uint    `json:"caseId"`
	Date      string  `json:"date"`
	Type      string  `json:"type"`
	Notes     *string `json:"notes"`
	Location  *string `json:"location"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
}

type hearingUpdateRequest struct {
	Type      *string `json:"type"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes"`
	Location  *string `json:"location"`
	Date      *string `json:"date"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
}

// ListHearings returns hearings on visible cases, optionally for one case
func (h *Handler) ListHearings(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	caseID, err := queryID(c, "case_id")
	if err != nil {
		return err
	}

	hearings, err := services.ListHearings(h.db(c), user, caseID)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]models.HearingResponse, 0, len(hearings))
	for i := range hearings {
		resp = append(resp, hearings[i].ToResponse())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) Calendar(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	events, err := services.CalendarEvents(h.db(c), user)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, events)
}

// CreateHearing schedules a hearing and may advance the case's next hearing
func (h *Handler) CreateHearing(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req hearingRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	hearing, err := services.ScheduleHearing(h.db(c), user, services.HearingInput{
		CaseID:    req.CaseID,
		Date:      req.Date,
		Type:      req.Type,
		Notes:     req.Notes,
		Location:  req.Location,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Hearing scheduled",
		"hearing": hearing.ToResponse(),
	})
}

func (h *Handler) UpdateHearing(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Hearing not found")
	if err != nil {
		return err
	}

	var req hearingUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	hearing, err := services.UpdateHearing(h.db(c), user, id, services.HearingUpdate{
		Type:      req.Type,
		Status:    req.Status,
		Notes:     req.Notes,
		Location:  req.Location,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Hearing updated",
		"hearing": hearing.ToResponse(),
	})
}

func (h *Handler) DeleteHearing(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Hearing not found")
	if err != nil {
		return err
	}

	if err := services.DeleteHearing(h.db(c), user, id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Hearing deleted"})
}
