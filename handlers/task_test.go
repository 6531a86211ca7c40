package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"legal_cms_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasks(t *testing.T) {
	s := setupServer(t)
	petitioner, publicToken := s.createUser(t, "Ramesh Kumar", "ramesh@example.com", models.RolePublic)
	_, otherToken := s.createUser(t, "Adv. Vikram Singh", "vikram@example.com", models.RoleAdvocate)
	c := s.createCase(t, &models.Case{CaseNumber: "CS/2025/0001", Title: "Property Dispute", Petitioner: "Ramesh Kumar", PetitionerID: &petitioner.ID, Respondent: "B"})

	create := func(body map[string]interface{}) models.TaskResponse {
		rec := s.do(t, http.MethodPost, "/api/tasks", publicToken, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var resp struct {
			Message string              `json:"message"`
			Task    models.TaskResponse `json:"task"`
		}
		decode(t, rec, &resp)
		assert.Equal(t, "Task created", resp.Message)
		return resp.Task
	}

	undated := create(map[string]interface{}{"caseId": c.ID, "title": "Collect receipts"})
	later := create(map[string]interface{}{"caseId": c.ID, "title": "Call advocate", "dueDate": "2030-05-10", "priority": "high"})
	sooner := create(map[string]interface{}{"caseId": c.ID, "title": "Sign affidavit", "dueDate": "2030-05-01"})
	assert.Equal(t, models.PriorityMedium, undated.Priority)

	t.Run("OrderedByDueDateNullsLast", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/tasks", publicToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var tasks []models.TaskResponse
		decode(t, rec, &tasks)
		require.Len(t, tasks, 3)
		assert.Equal(t, []uint{sooner.DBID, later.DBID, undated.DBID}, []uint{tasks[0].DBID, tasks[1].DBID, tasks[2].DBID})
	})

	t.Run("OwnOnly", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/tasks", otherToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())

		rec = s.do(t, http.MethodPut, fmt.Sprintf("/api/tasks/%d", sooner.DBID), otherToken, map[string]bool{"completed": true})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("CaseMustBeVisible", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/tasks", otherToken, map[string]interface{}{"caseId": c.ID, "title": "Snoop"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Validation", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/tasks", publicToken, map[string]interface{}{"caseId": c.ID})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "caseId and title are required", errorMessage(t, rec))

		rec = s.do(t, http.MethodPost, "/api/tasks", publicToken, map[string]interface{}{"caseId": c.ID, "title": "x", "dueDate": "10/05/2030"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UpdateAndDelete", func(t *testing.T) {
		path := fmt.Sprintf("/api/tasks/%d", sooner.DBID)
		rec := s.do(t, http.MethodPut, path, publicToken, map[string]bool{"completed": true})
		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Task models.TaskResponse `json:"task"`
		}
		decode(t, rec, &resp)
		assert.True(t, resp.Task.Completed)
		assert.Equal(t, "Sign affidavit", resp.Task.Title)

		rec = s.do(t, http.MethodDelete, path, publicToken, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		rec = s.do(t, http.MethodDelete, path, publicToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestNotes(t *testing.T) {
	s := setupServer(t)
	advocate, token := s.createUser(t, "Adv. Priya Sharma", "priya@example.com", models.RoleAdvocate)
	_, otherToken := s.createUser(t, "Justice R.K. Verma", "judge@example.com", models.RoleCourt)
	c := s.createCase(t, &models.Case{CaseNumber: "CS/2025/0001", Title: "Property Dispute", Petitioner: "A", Respondent: "B", AdvocateID: &advocate.ID})

	rec := s.do(t, http.MethodPost, "/api/notes", token, map[string]interface{}{
		"caseId": c.ID, "content": `Witness list <script>alert("x")</script>ready`,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Note models.CaseNoteResponse `json:"note"`
	}
	decode(t, rec, &created)
	assert.NotContains(t, created.Note.Content, "<script>")
	assert.Contains(t, created.Note.Content, "Witness list")

	t.Run("PrivateToAuthor", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/notes", otherToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())

		rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/notes/%d", created.Note.DBID), otherToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Update", func(t *testing.T) {
		rec := s.do(t, http.MethodPut, fmt.Sprintf("/api/notes/%d", created.Note.DBID), token, map[string]string{"content": "Revised"})
		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Message string                  `json:"message"`
			Note    models.CaseNoteResponse `json:"note"`
		}
		decode(t, rec, &resp)
		assert.Equal(t, "Note updated", resp.Message)
		assert.Equal(t, "Revised", resp.Note.Content)
	})

	t.Run("FilterByCase", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, fmt.Sprintf("/api/notes?case_id=%d", c.ID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var notes []models.CaseNoteResponse
		decode(t, rec, &notes)
		assert.Len(t, notes, 1)

		rec = s.do(t, http.MethodGet, "/api/notes?case_id=abc", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
