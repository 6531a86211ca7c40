package services

import (
	"errors"
	"fmt"

	"legal_cms_go/models"

	"gorm.io/gorm"
)

// ListNotes returns the author's own notes, most recently edited first
func ListNotes(db *gorm.DB, user *models.User, caseID uint) ([]models.CaseNote, error) {
	query := db.Where("user_id = ?", user.ID)
	if caseID != 0 {
		query = query.Where("case_id = ?", caseID)
	}

	var notes []models.CaseNote
	if err := query.Order("updated_at DESC").Order("id DESC").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// CreateNote adds a private note on a case the author can see
func CreateNote(db *gorm.DB, user *models.User, caseID uint, content string) (*models.CaseNote, error) {
	content = SanitizeContent(content)
	if caseID == 0 || content == "" {
		return nil, BadRequest("caseId and content are required")
	}

	if err := RequireVisibleCase(db, user, caseID); err != nil {
		return nil, err
	}

	note := &models.CaseNote{CaseID: caseID, UserID: user.ID, Content: content}
	if err := db.Create(note).Error; err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

// UpdateNote replaces the content of one of the author's notes
func UpdateNote(db *gorm.DB, user *models.User, id uint, content *string) (*models.CaseNote, error) {
	note, err := findOwnNote(db, user, id)
	if err != nil {
		return nil, err
	}

	if content != nil {
		clean := SanitizeContent(*content)
		if clean == "" {
			return nil, BadRequest("Content cannot be empty")
		}
		note.Content = clean
	}

	if err := db.Save(note).Error; err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return note, nil
}

// DeleteNote removes one of the author's notes
func DeleteNote(db *gorm.DB, user *models.User, id uint) error {
	note, err := findOwnNote(db, user, id)
	if err != nil {
		return err
	}
	if err := db.Delete(note).Error; err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func findOwnNote(db *gorm.DB, user *models.User, id uint) (*models.CaseNote, error) {
	var note models.CaseNote
	if err := db.Where("id = ? AND user_id = ?", id, user.ID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Note not found")
		}
		return nil, fmt.Errorf("failed to load note: %w", err)
	}
	return &note, nil
}
