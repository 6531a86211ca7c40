package services

import (
	"legal_cms_go/models"

	"gorm.io/gorm"
)

// CaseScope restricts a query on the cases table to the rows user may see.
// Court sees every case, advocates the cases assigned to them, and public
// users the cases where they are the petitioner. Rows filed before the
// petitioner was linked by id fall back to a display-name match.
func CaseScope(user *models.User) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch user.Role {
		case models.RoleCourt:
			return db
		case models.RoleAdvocate:
			return db.Where("cases.advocate_id = ?", user.ID)
		case models.RolePublic:
			return db.Where("(cases.petitioner_id = ? OR (cases.petitioner_id IS NULL AND cases.petitioner = ?))", user.ID, user.Name)
		default:
			return db.Where("1 = 0")
		}
	}
}

// VisibleCaseIDs is a subquery selecting the ids of cases visible to user
func VisibleCaseIDs(db *gorm.DB, user *models.User) *gorm.DB {
	return db.Model(&models.Case{}).Scopes(CaseScope(user)).Select("cases.id")
}

// CanSeeCase reports whether caseID exists and is visible to user
func CanSeeCase(db *gorm.DB, user *models.User, caseID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Case{}).Scopes(CaseScope(user)).Where("cases.id = ?", caseID).Count(&count).Error
	return count > 0, err
}

// RequireVisibleCase fails with NotFound unless caseID is visible to user
func RequireVisibleCase(db *gorm.DB, user *models.User, caseID uint) error {
	ok, err := CanSeeCase(db, user, caseID)
	if err != nil {
		return err
	}
	if !ok {
		return NotFound("Case not found")
	}
	return nil
}
