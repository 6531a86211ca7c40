package models

import (
	"time"
)

// Task is a to-do item owned by a single user and attached to a case
type Task struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	CaseID    uint       `gorm:"not null;index" json:"case_id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Title     string     `gorm:"size:300;not null" json:"title"`
	Completed bool       `gorm:"not null;default:false" json:"completed"`
	Priority  string     `gorm:"size:10;not null;default:medium" json:"priority"`
	DueDate   *time.Time `gorm:"type:date" json:"due_date"`

	Case *Case `gorm:"foreignKey:CaseID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for Task model
func (Task) TableName() string {
	return "tasks"
}

type TaskResponse struct {
	ID        string  `json:"id"`
	DBID      uint    `json:"dbId"`
	CaseID    uint    `json:"caseId"`
	Title     string  `json:"title"`
	Completed bool    `json:"completed"`
	Priority  string  `json:"priority"`
	DueDate   *string `json:"dueDate"`
}

func (t *Task) ToResponse() TaskResponse {
	return TaskResponse{
		ID:        displayID("TASK", t.ID),
		DBID:      t.ID,
		CaseID:    t.CaseID,
		Title:     t.Title,
		Completed: t.Completed,
		Priority:  t.Priority,
		DueDate:   FormatDate(t.DueDate),
	}
}
