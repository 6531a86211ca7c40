package models

import (
	"time"
)

// Hearing status constants
const (
	HearingStatusScheduled = "scheduled"
	HearingStatusCompleted = "completed"
)

// DefaultHearingType is used when a hearing is scheduled without a type
const DefaultHearingType = "Hearing"

// IsValidHearingStatus checks if the status is scheduled or completed
func IsValidHearingStatus(status string) bool {
	return status == HearingStatusScheduled || status == HearingStatusCompleted
}

type Hearing struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	CaseID    uint       `gorm:"not null;index" json:"case_id"`
	Date      time.Time  `gorm:"type:date;not null;index" json:"date"`
	Type      string     `gorm:"size:100;not null" json:"type"`
	Status    string     `gorm:"size:20;not null;default:scheduled" json:"status"`
	Notes     *string    `gorm:"type:text" json:"notes"`
	Location  *string    `gorm:"size:200" json:"location"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	// set once the day-before reminder has gone out
	ReminderSentAt *time.Time `json:"-"`

	Case *Case `gorm:"foreignKey:CaseID" json:"-"`
}

// TableName specifies the table name for Hearing model
func (Hearing) TableName() string {
	return "hearings"
}

type HearingResponse struct {
	ID        uint    `json:"id"`
	CaseID    uint    `json:"caseId"`
	Date      *string `json:"date"`
	Type      string  `json:"type"`
	Status    string  `json:"status"`
	Notes     string  `json:"notes"`
	Location  *string `json:"location"`
	Court     *string `json:"court"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
}

func (h *Hearing) ToResponse() HearingResponse {
	return HearingResponse{
		ID:        h.ID,
		CaseID:    h.CaseID,
		Date:      FormatDate(&h.Date),
		Type:      h.Type,
		Status:    h.Status,
		Notes:     derefString(h.Notes),
		Location:  h.Location,
		Court:     h.Location,
		StartTime: FormatDateTime(h.StartTime),
		EndTime:   FormatDateTime(h.EndTime),
	}
}

// CalendarEvent is a hearing rendered for calendar widgets
type CalendarEvent struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Start    string  `json:"start"`
	End      *string `json:"end"`
	Type     string  `json:"type"`
	CaseID   uint    `json:"caseId"`
	Location *string `json:"location"`
}

// ToCalendarEvent renders the hearing as a calendar event. The title is the
// case title when Case is preloaded; start falls back to the hearing date.
func (h *Hearing) ToCalendarEvent() CalendarEvent {
	title := h.Type
	if h.Case != nil {
		title = h.Case.Title
	}

	start := h.Date.Format(DateLayout)
	if h.StartTime != nil {
		start = h.StartTime.Format(DateTimeLayout)
	}

	return CalendarEvent{
		ID:       displayID("EVT", h.ID),
		Title:    title,
		Start:    start,
		End:      FormatDateTime(h.EndTime),
		Type:     "hearing",
		CaseID:   h.CaseID,
		Location: h.Location,
	}
}
