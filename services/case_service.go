package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"legal_cms_go/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// maxSearchResults caps case search responses
	maxSearchResults = 20
	// maxCaseNumberRetries bounds case number generation on collisions
	maxCaseNumberRetries = 10
)

// Today returns the current UTC calendar date at midnight
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// CaseFilter holds the optional list filters
type CaseFilter struct {
	Status   string
	Type     string
	Priority string
}

// ListCases returns the cases visible to user, newest first
func ListCases(db *gorm.DB, user *models.User, filter CaseFilter) ([]models.Case, error) {
	query := db.Model(&models.Case{}).Scopes(CaseScope(user)).Preload("Advocate")

	if filter.Status != "" {
		query = query.Where("cases.status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("cases.case_type = ?", filter.Type)
	}
	if filter.Priority != "" {
		query = query.Where("cases.priority = ?", filter.Priority)
	}

	var cases []models.Case
	if err := query.Order("cases.created_at DESC").Order("cases.id DESC").Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}

func preloadCaseDetail(db *gorm.DB) *gorm.DB {
	return db.Preload("Advocate").
		Preload("Hearings", func(tx *gorm.DB) *gorm.DB { return tx.Order("hearings.date ASC").Order("hearings.id ASC") }).
		Preload("Timeline", func(tx *gorm.DB) *gorm.DB { return tx.Order("case_timeline.date ASC").Order("case_timeline.id ASC") })
}

// GetCase returns a visible case with its hearings and timeline
func GetCase(db *gorm.DB, user *models.User, id uint) (*models.Case, error) {
	var c models.Case
	err := db.Scopes(CaseScope(user), preloadCaseDetail).Where("cases.id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Case not found")
		}
		return nil, fmt.Errorf("failed to load case: %w", err)
	}
	return &c, nil
}

// GetCaseByNumber looks up a visible case by exact case number
func GetCaseByNumber(db *gorm.DB, user *models.User, caseNumber string) (*models.Case, error) {
	var c models.Case
	err := db.Scopes(CaseScope(user), preloadCaseDetail).Where("cases.case_number = ?", caseNumber).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Case not found")
		}
		return nil, fmt.Errorf("failed to load case: %w", err)
	}
	return &c, nil
}

// SearchCases matches q case-insensitively against number, title, parties
// and type. An empty query returns no results.
func SearchCases(db *gorm.DB, user *models.User, q string) ([]models.Case, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []models.Case{}, nil
	}

	pattern := "%" + strings.ToLower(q) + "%"
	var cases []models.Case
	err := db.Model(&models.Case{}).Scopes(CaseScope(user)).Preload("Advocate").
		Where("LOWER(cases.case_number) LIKE ? OR LOWER(cases.title) LIKE ? OR LOWER(cases.petitioner) LIKE ? OR LOWER(cases.respondent) LIKE ? OR LOWER(cases.case_type) LIKE ?",
			pattern, pattern, pattern, pattern, pattern).
		Order("cases.id DESC").
		Limit(maxSearchResults).
		Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search cases: %w", err)
	}
	return cases, nil
}

// GenerateCaseNumber returns the next case number for the year
// Format: CS/{YEAR}/{SEQUENCE}
// Example: CS/2026/0042
func GenerateCaseNumber(db *gorm.DB, year int) (string, error) {
	prefix := fmt.Sprintf("CS/%d/", year)

	var numbers []string
	if err := db.Model(&models.Case{}).Where("case_number LIKE ?", prefix+"%").Pluck("case_number", &numbers).Error; err != nil {
		return "", fmt.Errorf("failed to query case numbers: %w", err)
	}

	sequence := 0
	for _, n := range numbers {
		var parsed int
		if _, err := fmt.Sscanf(strings.TrimPrefix(n, prefix), "%d", &parsed); err == nil && parsed > sequence {
			sequence = parsed
		}
	}

	return fmt.Sprintf("%s%04d", prefix, sequence+1), nil
}

// EnsureUniqueCaseNumber generates a case number and walks forward until an
// unused one is found
func EnsureUniqueCaseNumber(db *gorm.DB, year int) (string, error) {
	candidate, err := GenerateCaseNumber(db, year)
	if err != nil {
		return "", err
	}

	prefix := fmt.Sprintf("CS/%d/", year)
	var sequence int
	fmt.Sscanf(strings.TrimPrefix(candidate, prefix), "%d", &sequence)

	for i := 0; i < maxCaseNumberRetries; i++ {
		var count int64
		if err := db.Model(&models.Case{}).Where("case_number = ?", candidate).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check case number uniqueness: %w", err)
		}
		if count == 0 {
			return candidate, nil
		}
		sequence++
		candidate = fmt.Sprintf("%s%04d", prefix, sequence)
	}

	return "", fmt.Errorf("failed to generate unique case number after %d retries", maxCaseNumberRetries)
}

// CaseInput is the payload for filing a case
type CaseInput struct {
	CaseNumber   string
	Title        string
	Description  *string
	CaseType     string
	Priority     string
	Petitioner   string
	PetitionerID *uint
	Respondent   string
	AdvocateID   *uint
	Judge        *string
	CourtRoom    *string
	CourtroomID  *uint
	// FilingDate defaults to today
	FilingDate *time.Time
}

// CreateCase files a case together with its "Case Filed" timeline entry.
// Advocates filing without an advocate become the assigned advocate.
func CreateCase(db *gorm.DB, user *models.User, input CaseInput) (*models.Case, error) {
	if !user.CanManageCases() {
		return nil, Forbidden("Only court/advocate can create cases")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, BadRequest("Title is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.IsValidPriority(priority) {
		return nil, BadRequest("Invalid priority")
	}

	caseType := strings.TrimSpace(input.CaseType)
	if caseType == "" {
		caseType = models.DefaultCaseType
	}

	advocateID := input.AdvocateID
	if advocateID == nil && user.IsAdvocate() {
		id := user.ID
		advocateID = &id
	}

	c := &models.Case{
		Title:         title,
		Description:   input.Description,
		CaseType:      caseType,
		Status:        models.CaseStatusFiled,
		Priority:      priority,
		Petitioner:    strings.TrimSpace(input.Petitioner),
		PetitionerID:  input.PetitionerID,
		Respondent:    strings.TrimSpace(input.Respondent),
		AdvocateID:    advocateID,
		Judge:         input.Judge,
		CourtRoomName: input.CourtRoom,
		CourtroomID:   input.CourtroomID,
		FilingDate:    Today(),
	}
	if input.FilingDate != nil {
		c.FilingDate = input.FilingDate.UTC()
	}

	// An auto-numbered insert can lose a race for its number; it picks the
	// next free one and tries again.
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		c.ID = 0
		err = createCaseTx(db, c, input.CaseNumber)
		if !errors.Is(err, errCaseNumberTaken) {
			break
		}
	}
	if errors.Is(err, errCaseNumberTaken) {
		err = Conflict("Case number already exists")
	}
	if err != nil {
		return nil, err
	}

	if err := db.Preload("Advocate").First(c, c.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload case: %w", err)
	}

	zap.L().Info("case filed",
		zap.Uint("case_id", c.ID),
		zap.String("case_number", c.CaseNumber),
		zap.Uint("user_id", user.ID),
	)
	return c, nil
}

var errCaseNumberTaken = errors.New("generated case number taken")

func createCaseTx(db *gorm.DB, c *models.Case, requestedNumber string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := resolveCaseReferences(tx, c); err != nil {
			return err
		}

		if requestedNumber != "" {
			c.CaseNumber = strings.TrimSpace(requestedNumber)
			var count int64
			if err := tx.Model(&models.Case{}).Where("case_number = ?", c.CaseNumber).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check case number: %w", err)
			}
			if count > 0 {
				return Conflict("Case number already exists")
			}
		} else {
			number, err := EnsureUniqueCaseNumber(tx, c.FilingDate.Year())
			if err != nil {
				return err
			}
			c.CaseNumber = number
		}

		if err := tx.Create(c).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				if requestedNumber == "" {
					return errCaseNumberTaken
				}
				return Conflict("Case number already exists")
			}
			return fmt.Errorf("failed to create case: %w", err)
		}

		description := "Case registered with Court Registry"
		entry := &models.CaseTimeline{
			CaseID:      c.ID,
			Date:        c.FilingDate,
			Event:       "Case Filed",
			Description: &description,
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create timeline entry: %w", err)
		}
		return nil
	})
}

// resolveCaseReferences validates advocate, petitioner and courtroom ids and
// fills the courtroom display name when only the id was given
func resolveCaseReferences(tx *gorm.DB, c *models.Case) error {
	if c.AdvocateID != nil {
		var advocate models.User
		if err := tx.First(&advocate, *c.AdvocateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return BadRequest("Advocate not found")
			}
			return fmt.Errorf("failed to load advocate: %w", err)
		}
		if !advocate.IsAdvocate() {
			return BadRequest("Assigned user is not an advocate")
		}
	}

	if c.PetitionerID != nil {
		var petitioner models.User
		if err := tx.First(&petitioner, *c.PetitionerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return BadRequest("Petitioner not found")
			}
			return fmt.Errorf("failed to load petitioner: %w", err)
		}
		if c.Petitioner == "" {
			c.Petitioner = petitioner.Name
		}
	}

	if c.CourtroomID != nil {
		var room models.Courtroom
		if err := tx.First(&room, *c.CourtroomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return BadRequest("Courtroom not found")
			}
			return fmt.Errorf("failed to load courtroom: %w", err)
		}
		if c.CourtRoomName == nil {
			c.CourtRoomName = &room.Name
		}
	}

	return nil
}

// CaseUpdate holds the mutable case fields. Nil means unchanged.
type CaseUpdate struct {
	Title        *string
	Description  *string
	CaseType     *string
	Status       *string
	Priority     *string
	Petitioner   *string
	PetitionerID *uint
	Respondent   *string
	Judge        *string
	CourtRoom    *string
	CourtroomID  *uint
	AdvocateID   *uint
}

// UpdateCase merges the supplied fields into a visible case. Status must be
// one of the seven case statuses; transitions between them are not restricted.
func UpdateCase(db *gorm.DB, user *models.User, id uint, input CaseUpdate) (*models.Case, error) {
	if !user.CanManageCases() {
		return nil, Forbidden("Only court/advocate can update cases")
	}

	var c models.Case
	if err := db.Scopes(CaseScope(user)).Where("cases.id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Case not found")
		}
		return nil, fmt.Errorf("failed to load case: %w", err)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, BadRequest("Title cannot be empty")
		}
		c.Title = title
	}
	if input.Description != nil {
		c.Description = input.Description
	}
	if input.CaseType != nil && strings.TrimSpace(*input.CaseType) != "" {
		c.CaseType = strings.TrimSpace(*input.CaseType)
	}
	if input.Status != nil {
		if !models.IsValidCaseStatus(*input.Status) {
			return nil, BadRequest("Invalid status")
		}
		c.Status = *input.Status
	}
	if input.Priority != nil {
		if !models.IsValidPriority(*input.Priority) {
			return nil, BadRequest("Invalid priority")
		}
		c.Priority = *input.Priority
	}
	if input.Petitioner != nil {
		c.Petitioner = strings.TrimSpace(*input.Petitioner)
	}
	if input.Respondent != nil {
		c.Respondent = strings.TrimSpace(*input.Respondent)
	}
	if input.Judge != nil {
		c.Judge = input.Judge
	}
	if input.CourtRoom != nil {
		c.CourtRoomName = input.CourtRoom
	}

	// Only references supplied in this update are re-validated
	refs := models.Case{
		AdvocateID:    input.AdvocateID,
		PetitionerID:  input.PetitionerID,
		CourtroomID:   input.CourtroomID,
		Petitioner:    c.Petitioner,
		CourtRoomName: input.CourtRoom,
	}
	if err := resolveCaseReferences(db, &refs); err != nil {
		return nil, err
	}
	if input.AdvocateID != nil {
		c.AdvocateID = input.AdvocateID
	}
	if input.PetitionerID != nil {
		c.PetitionerID = input.PetitionerID
		c.Petitioner = refs.Petitioner
	}
	if input.CourtroomID != nil {
		c.CourtroomID = input.CourtroomID
		c.CourtRoomName = refs.CourtRoomName
	}

	if err := db.Omit("Advocate", "PetitionerUser", "Courtroom").Save(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to update case: %w", err)
	}

	if err := db.Preload("Advocate").First(&c, c.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload case: %w", err)
	}
	return &c, nil
}

// DeleteCase removes a case and all of its hearings, timeline, documents,
// tasks and notes in one transaction, then removes the stored blobs of its
// documents. Blob removal failures are logged and never undo the delete.
func DeleteCase(ctx context.Context, db *gorm.DB, storage StorageProvider, user *models.User, id uint) error {
	if !user.IsCourt() {
		return Forbidden("Only court can delete cases")
	}

	var blobKeys []string
	err := db.Transaction(func(tx *gorm.DB) error {
		var c models.Case
		if err := tx.First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Case not found")
			}
			return fmt.Errorf("failed to load case: %w", err)
		}

		if err := tx.Model(&models.Document{}).Where("case_id = ? AND file_path IS NOT NULL AND file_path <> ''", id).
			Pluck("file_path", &blobKeys).Error; err != nil {
			return fmt.Errorf("failed to collect document paths: %w", err)
		}

		children := []interface{}{
			&models.Hearing{},
			&models.CaseTimeline{},
			&models.Document{},
			&models.Task{},
			&models.CaseNote{},
		}
		for _, child := range children {
			if err := tx.Where("case_id = ?", id).Delete(child).Error; err != nil {
				return fmt.Errorf("failed to delete case children: %w", err)
			}
		}

		if err := tx.Delete(&c).Error; err != nil {
			return fmt.Errorf("failed to delete case: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	removeBlobs(ctx, storage, blobKeys)

	zap.L().Info("case deleted", zap.Uint("case_id", id), zap.Uint("user_id", user.ID))
	return nil
}

func removeBlobs(ctx context.Context, storage StorageProvider, keys []string) {
	if storage == nil {
		return
	}
	for _, key := range keys {
		if err := storage.Delete(ctx, key); err != nil {
			zap.L().Warn("failed to remove stored document", zap.String("key", key), zap.Error(err))
		}
	}
}

// TimelineInput is a manual timeline entry
type TimelineInput struct {
	Event       string
	Description *string
	Date        string
}

// AddTimelineEntry appends an event to a visible case's timeline
func AddTimelineEntry(db *gorm.DB, user *models.User, caseID uint, input TimelineInput) (*models.CaseTimeline, error) {
	if !user.CanManageCases() {
		return nil, Forbidden("Only court/advocate can update the case timeline")
	}

	event := strings.TrimSpace(input.Event)
	if event == "" {
		return nil, BadRequest("Event is required")
	}

	if err := RequireVisibleCase(db, user, caseID); err != nil {
		return nil, err
	}

	date := Today()
	if input.Date != "" {
		parsed, err := models.ParseDate(input.Date)
		if err != nil {
			return nil, BadRequest("Invalid date format, expected YYYY-MM-DD")
		}
		date = parsed
	}

	entry := &models.CaseTimeline{
		CaseID:      caseID,
		Date:        date,
		Event:       event,
		Description: input.Description,
	}
	if err := db.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create timeline entry: %w", err)
	}
	return entry, nil
}
