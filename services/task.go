package services

import (
	"errors"
	"fmt"
	"strings"

	"legal_cms_go/models"

	"gorm.io/gorm"
)

// ListTasks returns the user's own tasks ordered by due date, undated last
func ListTasks(db *gorm.DB, user *models.User, caseID uint) ([]models.Task, error) {
	query := db.Where("user_id = ?", user.ID)
	if caseID != 0 {
		query = query.Where("case_id = ?", caseID)
	}

	var tasks []models.Task
	err := query.Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END").
		Order("due_date ASC").
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

type TaskInput struct {
	CaseID   uint
	Title    string
	Priority string
	DueDate  string
}

// CreateTask adds a task owned by user on a case they can see
func CreateTask(db *gorm.DB, user *models.User, input TaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if input.CaseID == 0 || title == "" {
		return nil, BadRequest("caseId and title are required")
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.IsValidPriority(priority) {
		return nil, BadRequest("Invalid priority")
	}

	task := &models.Task{
		CaseID:   input.CaseID,
		UserID:   user.ID,
		Title:    title,
		Priority: priority,
	}
	if input.DueDate != "" {
		due, err := models.ParseDate(input.DueDate)
		if err != nil {
			return nil, BadRequest("Invalid dueDate format, expected YYYY-MM-DD")
		}
		task.DueDate = &due
	}

	if err := RequireVisibleCase(db, user, input.CaseID); err != nil {
		return nil, err
	}

	if err := db.Create(task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

type TaskUpdate struct {
	Title     *string
	Completed *bool
	Priority  *string
	DueDate   *string
}

// UpdateTask merges fields into one of the user's tasks
func UpdateTask(db *gorm.DB, user *models.User, id uint, input TaskUpdate) (*models.Task, error) {
	task, err := findOwnTask(db, user, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, BadRequest("Title cannot be empty")
		}
		task.Title = title
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}
	if input.Priority != nil {
		if !models.IsValidPriority(*input.Priority) {
			return nil, BadRequest("Invalid priority")
		}
		task.Priority = *input.Priority
	}
	if input.DueDate != nil && *input.DueDate != "" {
		due, err := models.ParseDate(*input.DueDate)
		if err != nil {
			return nil, BadRequest("Invalid dueDate format, expected YYYY-MM-DD")
		}
		task.DueDate = &due
	}

	if err := db.Save(task).Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes one of the user's tasks
func DeleteTask(db *gorm.DB, user *models.User, id uint) error {
	task, err := findOwnTask(db, user, id)
	if err != nil {
		return err
	}
	if err := db.Delete(task).Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func findOwnTask(db *gorm.DB, user *models.User, id uint) (*models.Task, error) {
	var task models.Task
	if err := db.Where("id = ? AND user_id = ?", id, user.ID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Task not found")
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	return &task, nil
}
