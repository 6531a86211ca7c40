package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"legal_cms_go/middleware"
	"legal_cms_go/models"
	"legal_cms_go/services"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type caseRequest struct {
	CaseNumber   string  `json:"caseNumber"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	CaseType     string  `json:"caseType"`
	Priority     string  `json:"priority"`
	Petitioner   string  `json:"petitioner"`
	PetitionerID *uint   `json:"petitionerId"`
	Respondent   string  `json:"respondent"`
	AdvocateID   *uint   `json:"advocateId"`
	Judge        *string `json:"judge"`
	CourtRoom    *string `json:"courtRoom"`
	CourtroomID  *uint   `json:"courtroomId"`
}

type caseUpdateRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	CaseType     *string `json:"caseType"`
	Status       *string `json:"status"`
	Priority     *string `json:"priority"`
	Petitioner   *string `json:"petitioner"`
	PetitionerID *uint   `json:"petitionerId"`
	Respondent   *string `json:"respondent"`
	Judge        *string `json:"judge"`
	CourtRoom    *string `json:"courtRoom"`
	CourtroomID  *uint   `json:"courtroomId"`
	AdvocateID   *uint   `json:"advocateId"`
}

type timelineRequest struct {
	Event       string  `json:"event"`
	Description *string `json:"description"`
	Date        string  `json:"date"`
}

func caseList(cases []models.Case) []models.CaseResponse {
	resp := make([]models.CaseResponse, 0, len(cases))
	for i := range cases {
		resp = append(resp, cases[i].ToResponse())
	}
	return resp
}

// ListCases returns the caller's visible cases, optionally filtered by
// status, type and priority
func (h *Handler) ListCases(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	cases, err := services.ListCases(h.db(c), user, services.CaseFilter{
		Status:   c.QueryParam("status"),
		Type:     c.QueryParam("type"),
		Priority: c.QueryParam("priority"),
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, caseList(cases))
}

func (h *Handler) SearchCases(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	cases, err := services.SearchCases(h.db(c), user, c.QueryParam("q"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, caseList(cases))
}

func (h *Handler) GetCase(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Case not found")
	if err != nil {
		return err
	}

	caseRecord, err := services.GetCase(h.db(c), user, id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, caseRecord.ToDetailResponse())
}

// GetCaseByQR resolves a scanned case number. Case numbers contain slashes,
// so the number is taken from the wildcard segment.
func (h *Handler) GetCaseByQR(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	caseNumber, err := url.PathUnescape(c.Param("*"))
	if err != nil || caseNumber == "" {
		return echo.NewHTTPError(http.StatusNotFound, "Case not found")
	}

	caseRecord, err := services.GetCaseByNumber(h.db(c), user, caseNumber)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, caseRecord.ToDetailResponse())
}

func (h *Handler) CreateCase(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req caseRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	caseRecord, err := services.CreateCase(h.db(c), user, services.CaseInput{
		CaseNumber:   req.CaseNumber,
		Title:        req.Title,
		Description:  req.Description,
		CaseType:     req.CaseType,
		Priority:     req.Priority,
		Petitioner:   req.Petitioner,
		PetitionerID: req.PetitionerID,
		Respondent:   req.Respondent,
		AdvocateID:   req.AdvocateID,
		Judge:        req.Judge,
		CourtRoom:    req.CourtRoom,
		CourtroomID:  req.CourtroomID,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Case created",
		"case":    caseRecord.ToResponse(),
	})
}

func (h *Handler) UpdateCase(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Case not found")
	if err != nil {
		return err
	}

	var req caseUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	caseRecord, err := services.UpdateCase(h.db(c), user, id, services.CaseUpdate{
		Title:        req.Title,
		Description:  req.Description,
		CaseType:     req.CaseType,
		Status:       req.Status,
		Priority:     req.Priority,
		Petitioner:   req.Petitioner,
		PetitionerID: req.PetitionerID,
		Respondent:   req.Respondent,
		Judge:        req.Judge,
		CourtRoom:    req.CourtRoom,
		CourtroomID:  req.CourtroomID,
		AdvocateID:   req.AdvocateID,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Case updated",
		"case":    caseRecord.ToResponse(),
	})
}

// DeleteCase removes a case with everything attached to it
func (h *Handler) DeleteCase(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Case not found")
	if err != nil {
		return err
	}

	if err := services.DeleteCase(c.Request().Context(), h.db(c), h.Storage, user, id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Case deleted"})
}

func (h *Handler) AddTimelineEntry(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Case not found")
	if err != nil {
		return err
	}

	var req timelineRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	entry, err := services.AddTimelineEntry(h.db(c), user, id, services.TimelineInput{
		Event:       req.Event,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Timeline updated",
		"timeline": entry.ToResponse(),
	})
}

// ImportCases files every row of an uploaded xlsx workbook
func (h *Handler) ImportCases(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file selected")
	}
	if services.FileExtension(fileHeader.Filename) != "xlsx" {
		return echo.NewHTTPError(http.StatusBadRequest, "Only .xlsx files can be imported")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	result, err := services.ImportCases(h.db(c), user, file)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Import completed",
		"result":  result,
	})
}

func (h *Handler) GetImportTemplate(c echo.Context) error {
	buf, err := services.GenerateImportTemplate()
	if err != nil {
		return toHTTPError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="case_import_template.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportCases streams a workbook of every case visible to the caller
func (h *Handler) ExportCases(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	now := time.Now().UTC()

	buf, err := services.ExportCasesWorkbook(h.db(c), user, now)
	if err != nil {
		return toHTTPError(err)
	}

	filename := fmt.Sprintf("cases_%s.xlsx", now.Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
