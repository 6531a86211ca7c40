package handlers

import (
	"net/http"

	"legal_cms_go/middleware"
	"legal_cms_go/models"
	"legal_cms_go/services"

	"github.com/labstack/echo/v4"
)

type noteRequest struct {
	CaseID  uint    `json:"caseId"`
	Content *string `json:"content"`
}

func (h *Handler) ListNotes(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	caseID, err := queryID(c, "case_id")
	if err != nil {
		return err
	}

	notes, err := services.ListNotes(h.db(c), user, caseID)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]models.CaseNoteResponse, 0, len(notes))
	for i := range notes {
		resp = append(resp, notes[i].ToResponse())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateNote(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req noteRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	content := ""
	if req.Content != nil {
		content = *req.Content
	}
	note, err := services.CreateNote(h.db(c), user, req.CaseID, content)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Note created",
		"note":    note.ToResponse(),
	})
}

func (h *Handler) UpdateNote(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Note not found")
	if err != nil {
		return err
	}

	var req noteRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	note, err := services.UpdateNote(h.db(c), user, id, req.Content)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Note updated",
		"note":    note.ToResponse(),
	})
}

func (h *Handler) DeleteNote(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Note not found")
	if err != nil {
		return err
	}

	if err := services.DeleteNote(h.db(c), user, id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Note deleted"})
}
