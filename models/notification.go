package models

import (
	"time"
)

// Notification types
const (
	NotificationTypeHearing  = "hearing"
	NotificationTypeUpdate   = "update"
	NotificationTypeDocument = "document"
	NotificationTypeReminder = "reminder"
	NotificationTypeSystem   = "system"
)

type Notification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Type      string    `gorm:"size:30;not null;default:system" json:"type"`
	Title     string    `gorm:"size:300;not null" json:"title"`
	Message   *string   `gorm:"type:text" json:"message"`
	Priority  string    `gorm:"size:10;not null;default:low" json:"priority"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

type NotificationResponse struct {
	ID        string  `json:"id"`
	DBID      uint    `json:"dbId"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Message   *string `json:"message"`
	Priority  string  `json:"priority"`
	Read      bool    `json:"read"`
	Time      *string `json:"time"`
	Timestamp *string `json:"timestamp"`
}

func (n *Notification) ToResponse() NotificationResponse {
	resp := NotificationResponse{
		ID:       displayID("NOT", n.ID),
		DBID:     n.ID,
		Type:     n.Type,
		Title:    n.Title,
		Message:  n.Message,
		Priority: n.Priority,
		Read:     n.IsRead,
		Time:     FormatDateTime(&n.CreatedAt),
	}
	if !n.CreatedAt.IsZero() {
		ts := n.CreatedAt.Format(time.RFC3339)
		resp.Timestamp = &ts
	}
	return resp
}
