package handlers

import (
	"net/http"

	"legal_cms_go/middleware"
	"legal_cms_go/models"
	"legal_cms_go/services"

	"github.com/labstack/echo/v4"
)

type taskRequest struct {
	CaseID   uint   `json:"caseId"`
	Title    string `json:"title"`
	Priority string `json:"priority"`
	DueDate  string `json:"dueDate"`
}

type taskUpdateRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
	Priority  *string `json:"priority"`
	DueDate   *string `json:"dueDate"`
}

// ListTasks returns the caller's own tasks
func (h *Handler) ListTasks(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	caseID, err := queryID(c, "case_id")
	if err != nil {
		return err
	}

	tasks, err := services.ListTasks(h.db(c), user, caseID)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]models.TaskResponse, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, tasks[i].ToResponse())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateTask(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var req taskRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	task, err := services.CreateTask(h.db(c), user, services.TaskInput{
		CaseID:   req.CaseID,
		Title:    req.Title,
		Priority: req.Priority,
		DueDate:  req.DueDate,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Task created",
		"task":    task.ToResponse(),
	})
}

func (h *Handler) UpdateTask(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Task not found")
	if err != nil {
		return err
	}

	var req taskUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	task, err := services.UpdateTask(h.db(c), user, id, services.TaskUpdate{
		Title:     req.Title,
		Completed: req.Completed,
		Priority:  req.Priority,
		DueDate:   req.DueDate,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Task updated",
		"task":    task.ToResponse(),
	})
}

func (h *Handler) DeleteTask(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	id, err := parseID(c, "id", "Task not found")
	if err != nil {
		return err
	}

	if err := services.DeleteTask(h.db(c), user, id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Task deleted"})
}
