package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"legal_cms_go/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ListHearings returns hearings on cases visible to user, latest date first.
// A non-zero caseID narrows the list to that case.
func ListHearings(db *gorm.DB, user *models.User, caseID uint) ([]models.Hearing, error) {
	query := db.Model(&models.Hearing{}).Where("hearings.case_id IN (?)", VisibleCaseIDs(db, user))
	if caseID != 0 {
		query = query.Where("hearings.case_id = ?", caseID)
	}

	var hearings []models.Hearing
	if err := query.Order("hearings.date DESC").Order("hearings.id DESC").Find(&hearings).Error; err != nil {
		return nil, fmt.Errorf("failed to list hearings: %w", err)
	}
	return hearings, nil
}

// CalendarEvents returns one calendar event per visible hearing
func CalendarEvents(db *gorm.DB, user *models.User) ([]models.CalendarEvent, error) {
	var hearings []models.Hearing
	err := db.Preload("Case").
		Where("hearings.case_id IN (?)", VisibleCaseIDs(db, user)).
		Order("hearings.date ASC").Order("hearings.id ASC").
		Find(&hearings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar: %w", err)
	}

	events := make([]models.CalendarEvent, 0, len(hearings))
	for i := range hearings {
		events = append(events, hearings[i].ToCalendarEvent())
	}
	return events, nil
}

// HearingInput is the payload for scheduling a hearing
type HearingInput struct {
	CaseID    uint
	Date      string
	Type      string
	Notes     *string
	Location  *string
	StartTime string
	EndTime   string
}

// ScheduleHearing inserts a hearing and, when its start time is earlier than
// the case's next hearing (or the case has none), moves next_hearing to it
// and sets the case status to hearing_scheduled. Later start times leave the
// case untouched.
func ScheduleHearing(db *gorm.DB, user *models.User, input HearingInput) (*models.Hearing, error) {
	if !user.CanManageCases() {
		return nil, Forbidden("Only court/advocate can schedule hearings")
	}
	if input.CaseID == 0 {
		return nil, BadRequest("caseId is required")
	}
	if input.Date == "" {
		return nil, BadRequest("date is required")
	}

	date, err := models.ParseDate(input.Date)
	if err != nil {
		return nil, BadRequest("Invalid date format, expected YYYY-MM-DD")
	}
	start, err := parseOptionalDateTime(input.StartTime, "startTime")
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDateTime(input.EndTime, "endTime")
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, BadRequest("endTime must not be before startTime")
	}

	hearingType := strings.TrimSpace(input.Type)
	if hearingType == "" {
		hearingType = models.DefaultHearingType
	}

	hearing := &models.Hearing{
		CaseID:    input.CaseID,
		Date:      date,
		Type:      hearingType,
		Status:    models.HearingStatusScheduled,
		Notes:     input.Notes,
		Location:  input.Location,
		StartTime: start,
		EndTime:   end,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var c models.Case
		if err := tx.Scopes(CaseScope(user)).Where("cases.id = ?", input.CaseID).First(&c).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Case not found")
			}
			return fmt.Errorf("failed to load case: %w", err)
		}

		if err := tx.Create(hearing).Error; err != nil {
			return fmt.Errorf("failed to create hearing: %w", err)
		}

		if start != nil && (c.NextHearing == nil || start.Before(*c.NextHearing)) {
			err := tx.Model(&models.Case{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
				"next_hearing": *start,
				"status":       models.CaseStatusHearingScheduled,
			}).Error
			if err != nil {
				return fmt.Errorf("failed to update case schedule: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("hearing scheduled",
		zap.Uint("hearing_id", hearing.ID),
		zap.Uint("case_id", hearing.CaseID),
		zap.Uint("user_id", user.ID),
	)
	return hearing, nil
}

// HearingUpdate holds the mutable hearing fields. Nil means unchanged.
type HearingUpdate struct {
	Type      *string
	Status    *string
	Notes     *string
	Location  *string
	Date      *string
	StartTime *string
	EndTime   *string
}

// UpdateHearing merges fields into a hearing on a visible case. The parent
// case's next_hearing is not recomputed.
func UpdateHearing(db *gorm.DB, user *models.User, id uint, input HearingUpdate) (*models.Hearing, error) {
	if !user.CanManageCases() {
		return nil, Forbidden("Only court/advocate can update hearings")
	}

	hearing, err := findVisibleHearing(db, user, id)
	if err != nil {
		return nil, err
	}

	if input.Type != nil && strings.TrimSpace(*input.Type) != "" {
		hearing.Type = strings.TrimSpace(*input.Type)
	}
	if input.Status != nil {
		if !models.IsValidHearingStatus(*input.Status) {
			return nil, BadRequest("Invalid status")
		}
		hearing.Status = *input.Status
	}
	if input.Notes != nil {
		hearing.Notes = input.Notes
	}
	if input.Location != nil {
		hearing.Location = input.Location
	}
	if input.Date != nil && *input.Date != "" {
		date, err := models.ParseDate(*input.Date)
		if err != nil {
			return nil, BadRequest("Invalid date format, expected YYYY-MM-DD")
		}
		hearing.Date = date
	}
	if input.StartTime != nil && *input.StartTime != "" {
		start, err := parseOptionalDateTime(*input.StartTime, "startTime")
		if err != nil {
			return nil, err
		}
		hearing.StartTime = start
	}
	if input.EndTime != nil && *input.EndTime != "" {
		end, err := parseOptionalDateTime(*input.EndTime, "endTime")
		if err != nil {
			return nil, err
		}
		hearing.EndTime = end
	}

	if err := db.Omit("Case").Save(hearing).Error; err != nil {
		return nil, fmt.Errorf("failed to update hearing: %w", err)
	}
	return hearing, nil
}

// DeleteHearing removes a hearing on a visible case. The parent case's
// next_hearing may keep pointing at the removed hearing.
func DeleteHearing(db *gorm.DB, user *models.User, id uint) error {
	if !user.CanManageCases() {
		return Forbidden("Only court/advocate can delete hearings")
	}

	hearing, err := findVisibleHearing(db, user, id)
	if err != nil {
		return err
	}

	if err := db.Delete(hearing).Error; err != nil {
		return fmt.Errorf("failed to delete hearing: %w", err)
	}
	return nil
}

func findVisibleHearing(db *gorm.DB, user *models.User, id uint) (*models.Hearing, error) {
	var hearing models.Hearing
	err := db.Where("hearings.id = ? AND hearings.case_id IN (?)", id, VisibleCaseIDs(db, user)).First(&hearing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Hearing not found")
		}
		return nil, fmt.Errorf("failed to load hearing: %w", err)
	}
	return &hearing, nil
}

func parseOptionalDateTime(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := models.ParseDateTime(value)
	if err != nil {
		return nil, BadRequest("Invalid %s, expected ISO datetime", field)
	}
	return &t, nil
}
