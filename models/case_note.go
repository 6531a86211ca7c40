package models

import (
	"time"
)

// CaseNote is a private note visible only to its author
type CaseNote struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
	CaseID    uint      `gorm:"not null;index" json:"case_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`

	Case *Case `gorm:"foreignKey:CaseID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for CaseNote model
func (CaseNote) TableName() string {
	return "case_notes"
}

type CaseNoteResponse struct {
	ID        string  `json:"id"`
	DBID      uint    `json:"dbId"`
	CaseID    uint    `json:"caseId"`
	Content   string  `json:"content"`
	CreatedAt *string `json:"createdAt"`
	UpdatedAt *string `json:"updatedAt"`
}

func (n *CaseNote) ToResponse() CaseNoteResponse {
	return CaseNoteResponse{
		ID:        displayID("NOTE", n.ID),
		DBID:      n.ID,
		CaseID:    n.CaseID,
		Content:   n.Content,
		CreatedAt: FormatDateTime(&n.CreatedAt),
		UpdatedAt: FormatDateTime(&n.UpdatedAt),
	}
}
