package services

import (
	"testing"
	"time"

	"legal_cms_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated shared-cache in-memory database with the
// full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:mem_" + uuid.New().String() + "?mode=memory&cache=shared&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func mustUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()
	user, err := Register(db, RegisterInput{Name: name, Email: email, Password: "password123", Role: role})
	require.NoError(t, err)
	return user
}

func mustCase(t *testing.T, db *gorm.DB, c *models.Case) *models.Case {
	t.Helper()
	if c.CaseType == "" {
		c.CaseType = models.DefaultCaseType
	}
	if c.Status == "" {
		c.Status = models.CaseStatusFiled
	}
	if c.Priority == "" {
		c.Priority = models.PriorityMedium
	}
	if c.FilingDate.IsZero() {
		c.FilingDate = Today()
	}
	require.NoError(t, db.Omit("Advocate", "PetitionerUser", "Courtroom").Create(c).Error)
	return c
}
