package models

import (
	"fmt"
	"time"
)

// Case status constants
const (
	CaseStatusFiled            = "filed"
	CaseStatusUnderReview      = "under_review"
	CaseStatusHearingScheduled = "hearing_scheduled"
	CaseStatusInProgress       = "in_progress"
	CaseStatusJudgmentReserved = "judgment_reserved"
	CaseStatusClosed           = "closed"
	CaseStatusDismissed        = "dismissed"
)

// Priority constants shared by cases, tasks and notifications
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// DefaultCaseType is applied when a case is filed without a type
const DefaultCaseType = "Civil"

// ActiveCaseStatuses are the statuses counted as active work
var ActiveCaseStatuses = []string{
	CaseStatusFiled,
	CaseStatusUnderReview,
	CaseStatusHearingScheduled,
	CaseStatusInProgress,
}

// PendingCaseStatuses are the statuses counted as pending before the court
var PendingCaseStatuses = []string{
	CaseStatusFiled,
	CaseStatusUnderReview,
	CaseStatusHearingScheduled,
	CaseStatusInProgress,
	CaseStatusJudgmentReserved,
}

// IsValidCaseStatus checks if the status is one of the seven case statuses
func IsValidCaseStatus(status string) bool {
	switch status {
	case CaseStatusFiled, CaseStatusUnderReview, CaseStatusHearingScheduled,
		CaseStatusInProgress, CaseStatusJudgmentReserved, CaseStatusClosed, CaseStatusDismissed:
		return true
	}
	return false
}

// IsValidPriority checks if the priority is high, medium or low
func IsValidPriority(priority string) bool {
	return priority == PriorityHigh || priority == PriorityMedium || priority == PriorityLow
}

// IsPendingStatus reports whether status counts toward pendency
func IsPendingStatus(status string) bool {
	for _, s := range PendingCaseStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsActiveStatus reports whether status counts as active work
func IsActiveStatus(status string) bool {
	for _, s := range ActiveCaseStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Case represents a legal proceeding and is the aggregate root for its
// hearings, timeline, documents, tasks and notes
type Case struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CaseNumber  string  `gorm:"size:50;uniqueIndex;not null" json:"case_number"`
	Title       string  `gorm:"size:300;not null" json:"title"`
	Description *string `gorm:"type:text" json:"description"`
	CaseType    string  `gorm:"size:50;not null" json:"case_type"`
	Status      string  `gorm:"size:30;not null;default:filed;index" json:"status"`
	Priority    string  `gorm:"size:10;not null;default:medium" json:"priority"`

	// Parties
	Petitioner   string  `gorm:"size:200;not null" json:"petitioner"`
	PetitionerID *uint   `gorm:"index" json:"petitioner_id"`
	Respondent   string  `gorm:"size:200;not null" json:"respondent"`
	AdvocateID   *uint   `gorm:"index" json:"advocate_id"`
	Judge        *string `gorm:"size:200" json:"judge"`

	// Venue
	CourtroomID   *uint   `gorm:"index" json:"courtroom_id"`
	CourtRoomName *string `gorm:"size:100" json:"court_room_name"`

	NextHearing *time.Time `json:"next_hearing"`
	FilingDate  time.Time  `gorm:"type:date;not null;index" json:"filing_date"`

	// Relationships
	Advocate       *User          `gorm:"foreignKey:AdvocateID" json:"-"`
	PetitionerUser *User          `gorm:"foreignKey:PetitionerID" json:"-"`
	Courtroom      *Courtroom     `gorm:"foreignKey:CourtroomID" json:"-"`
	Hearings       []Hearing      `gorm:"foreignKey:CaseID" json:"-"`
	Timeline       []CaseTimeline `gorm:"foreignKey:CaseID" json:"-"`
	Documents      []Document     `gorm:"foreignKey:CaseID" json:"-"`
	Tasks          []Task         `gorm:"foreignKey:CaseID" json:"-"`
	Notes          []CaseNote     `gorm:"foreignKey:CaseID" json:"-"`
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "cases"
}

// DisplayID returns the presentation identifier CASE-<filing year>-<id>
func (c *Case) DisplayID() string {
	if c.FilingDate.IsZero() {
		return fmt.Sprintf("%d", c.ID)
	}
	return fmt.Sprintf("CASE-%d-%03d", c.FilingDate.Year(), c.ID)
}

type CaseAdvocate struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CaseResponse struct {
	ID          string        `json:"id"`
	DBID        uint          `json:"dbId"`
	CaseNumber  string        `json:"caseNumber"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	CaseType    string        `json:"caseType"`
	Status      string        `json:"status"`
	Priority    string        `json:"priority"`
	Petitioner  string        `json:"petitioner"`
	Respondent  string        `json:"respondent"`
	Judge       *string       `json:"judge"`
	CourtRoom   *string       `json:"courtRoom"`
	NextHearing *string       `json:"nextHearing"`
	FilingDate  *string       `json:"filingDate"`
	Advocate    *CaseAdvocate `json:"advocate,omitempty"`
}

// CaseDetailResponse adds hearings and timeline to the case summary
type CaseDetailResponse struct {
	CaseResponse
	Hearings []HearingResponse  `json:"hearings"`
	Timeline []TimelineResponse `json:"timeline"`
}

// ToResponse serializes the case summary. Advocate must be preloaded to be included.
func (c *Case) ToResponse() CaseResponse {
	resp := CaseResponse{
		ID:          c.DisplayID(),
		DBID:        c.ID,
		CaseNumber:  c.CaseNumber,
		Title:       c.Title,
		Description: c.Description,
		CaseType:    c.CaseType,
		Status:      c.Status,
		Priority:    c.Priority,
		Petitioner:  c.Petitioner,
		Respondent:  c.Respondent,
		Judge:       c.Judge,
		CourtRoom:   c.CourtRoomName,
		NextHearing: FormatDateTime(c.NextHearing),
		FilingDate:  FormatDate(&c.FilingDate),
	}
	if c.Advocate != nil {
		resp.Advocate = &CaseAdvocate{ID: c.Advocate.ID, Name: c.Advocate.Name, Email: c.Advocate.Email}
	}
	return resp
}

// ToDetailResponse serializes the case with its preloaded hearings and timeline
func (c *Case) ToDetailResponse() CaseDetailResponse {
	resp := CaseDetailResponse{
		CaseResponse: c.ToResponse(),
		Hearings:     make([]HearingResponse, 0, len(c.Hearings)),
		Timeline:     make([]TimelineResponse, 0, len(c.Timeline)),
	}
	for i := range c.Hearings {
		resp.Hearings = append(resp.Hearings, c.Hearings[i].ToResponse())
	}
	for i := range c.Timeline {
		resp.Timeline = append(resp.Timeline, c.Timeline[i].ToResponse())
	}
	return resp
}

// CaseTimeline is an append-only audit entry on a case
type CaseTimeline struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	CaseID      uint      `gorm:"not null;index" json:"case_id"`
	Date        time.Time `gorm:"type:date;not null" json:"date"`
	Event       string    `gorm:"size:200;not null" json:"event"`
	Description *string   `gorm:"size:500" json:"description"`
}

// TableName specifies the table name for CaseTimeline model
func (CaseTimeline) TableName() string {
	return "case_timeline"
}

type TimelineResponse struct {
	Date        *string `json:"date"`
	Event       string  `json:"event"`
	Description string  `json:"description"`
}

func (t *CaseTimeline) ToResponse() TimelineResponse {
	return TimelineResponse{
		Date:        FormatDate(&t.Date),
		Event:       t.Event,
		Description: derefString(t.Description),
	}
}
