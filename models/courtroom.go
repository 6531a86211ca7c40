package models

// Courtroom status constants
const (
	CourtroomStatusInSession = "in_session"
	CourtroomStatusAvailable = "available"
	CourtroomStatusRecess    = "recess"
	CourtroomStatusClosed    = "closed"
)

// IsValidCourtroomStatus checks if the status is a known courtroom status
func IsValidCourtroomStatus(status string) bool {
	switch status {
	case CourtroomStatusInSession, CourtroomStatusAvailable, CourtroomStatusRecess, CourtroomStatusClosed:
		return true
	}
	return false
}

type Courtroom struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Judge       *string `gorm:"size:200" json:"judge"`
	Status      string  `gorm:"size:20;not null;default:available;index" json:"status"`
	CurrentCase *string `gorm:"size:50" json:"current_case"`
	CaseTitle   *string `gorm:"size:300" json:"case_title"`
	StartTime   *string `gorm:"size:20" json:"start_time"`
	CaseType    *string `gorm:"size:50" json:"case_type"`
}

func (Courtroom) TableName() string {
	return "courtrooms"
}

type CourtroomResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Judge       *string `json:"judge"`
	Status      string  `json:"status"`
	CurrentCase *string `json:"currentCase"`
	CaseTitle   *string `json:"caseTitle"`
	StartTime   *string `json:"startTime"`
	Type        *string `json:"type"`
}

func (r *Courtroom) ToResponse() CourtroomResponse {
	return CourtroomResponse{
		ID:          r.ID,
		Name:        r.Name,
		Judge:       r.Judge,
		Status:      r.Status,
		CurrentCase: r.CurrentCase,
		CaseTitle:   r.CaseTitle,
		StartTime:   r.StartTime,
		Type:        r.CaseType,
	}
}
