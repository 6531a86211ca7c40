package services

import (
	"errors"
	"fmt"

	"legal_cms_go/models"

	"gorm.io/gorm"
)

// ListCourtrooms returns courtrooms in id order, optionally by status
func ListCourtrooms(db *gorm.DB, status string) ([]models.Courtroom, error) {
	query := db.Model(&models.Courtroom{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var rooms []models.Courtroom
	if err := query.Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list courtrooms: %w", err)
	}
	return rooms, nil
}

func GetCourtroom(db *gorm.DB, id uint) (*models.Courtroom, error) {
	var room models.Courtroom
	if err := db.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Courtroom not found")
		}
		return nil, fmt.Errorf("failed to load courtroom: %w", err)
	}
	return &room, nil
}

// CourtroomUpdate holds the fields a court user may change. Nil fields are
// left untouched.
type CourtroomUpdate struct {
	Status      *string `json:"status"`
	Judge       *string `json:"judge"`
	CurrentCase *string `json:"currentCase"`
	CaseTitle   *string `json:"caseTitle"`
	StartTime   *string `json:"startTime"`
	Type        *string `json:"type"`
}

// UpdateCourtroom merges input into the courtroom. Only court users may
// change courtroom state.
func UpdateCourtroom(db *gorm.DB, user *models.User, id uint, input CourtroomUpdate) (*models.Courtroom, error) {
	if !user.IsCourt() {
		return nil, Forbidden("Only court users can update courtrooms")
	}

	room, err := GetCourtroom(db, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !models.IsValidCourtroomStatus(*input.Status) {
			return nil, BadRequest("Invalid courtroom status")
		}
		room.Status = *input.Status
	}
	if input.Judge != nil {
		room.Judge = input.Judge
	}
	if input.CurrentCase != nil {
		room.CurrentCase = input.CurrentCase
	}
	if input.CaseTitle != nil {
		room.CaseTitle = input.CaseTitle
	}
	if input.StartTime != nil {
		room.StartTime = input.StartTime
	}
	if input.Type != nil {
		room.CaseType = input.Type
	}

	if err := db.Save(room).Error; err != nil {
		return nil, fmt.Errorf("failed to update courtroom: %w", err)
	}
	return room, nil
}
