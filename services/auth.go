package services

import (
	"errors"
	"fmt"
	"strings"

	"legal_cms_go/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// VerifyPassword verifies a password against a bcrypt hash
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// NormalizeEmail trims and lowercases an email address for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Role           string
	Phone          *string
	CitizenID      *string
	BarCouncilID   *string
	Specialization *string
	Experience     *string
	CourtName      *string
}

// Register creates a user account. Role defaults to public.
func Register(db *gorm.DB, input RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := NormalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, BadRequest("Name, email, and password are required")
	}

	role := input.Role
	if role == "" {
		role = models.RolePublic
	}
	if !models.IsValidRole(role) {
		return nil, BadRequest("Invalid role")
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, Conflict("Email already registered")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     role,
		Phone:    input.Phone,
	}
	switch role {
	case models.RolePublic:
		user.CitizenID = input.CitizenID
	case models.RoleAdvocate:
		user.BarCouncilID = input.BarCouncilID
		user.Specialization = input.Specialization
		user.Experience = input.Experience
	case models.RoleCourt:
		user.CourtName = input.CourtName
	}

	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("Email already registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	zap.L().Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", role))
	return user, nil
}

// Login returns the user matching the credentials. Unknown emails and wrong
// passwords fail with the same message.
func Login(db *gorm.DB, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, BadRequest("Email and password are required")
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			LogSecurityEvent("LOGIN_FAILED", 0, "unknown email")
			return nil, Unauthorized("Invalid email or password")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !VerifyPassword(user.Password, password) {
		LogSecurityEvent("LOGIN_FAILED", user.ID, "password mismatch")
		return nil, Unauthorized("Invalid email or password")
	}

	return &user, nil
}

// GetUserByID loads a user by primary key
func GetUserByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// ChangePassword replaces the password hash after checking the current password
func ChangePassword(db *gorm.DB, user *models.User, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return BadRequest("Current and new password required")
	}

	if !VerifyPassword(user.Password, currentPassword) {
		LogSecurityEvent("PASSWORD_CHANGE_FAILED", user.ID, "current password mismatch")
		return Unauthorized("Current password is incorrect")
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := db.Model(user).Update("password", hash).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	user.Password = hash

	LogSecurityEvent("PASSWORD_CHANGED", user.ID, "")
	return nil
}

// ProfileUpdate holds the self-service profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Name           *string
	Phone          *string
	Avatar         *string
	Specialization *string
	Experience     *string
	CourtName      *string
}

// UpdateProfile merges the supplied fields into the user's profile.
// Specialization and experience apply to advocates, court name to court users.
func UpdateProfile(db *gorm.DB, user *models.User, input ProfileUpdate) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return BadRequest("Name cannot be empty")
		}
		user.Name = name
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Avatar != nil {
		user.Avatar = input.Avatar
	}

	switch user.Role {
	case models.RoleAdvocate:
		if input.Specialization != nil {
			user.Specialization = input.Specialization
		}
		if input.Experience != nil {
			user.Experience = input.Experience
		}
	case models.RoleCourt:
		if input.CourtName != nil {
			user.CourtName = input.CourtName
		}
	}

	if err := db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// LogSecurityEvent logs security-related events
func LogSecurityEvent(eventType string, userID uint, details string) {
	zap.L().Warn("security event",
		zap.String("event", eventType),
		zap.Uint("user_id", userID),
		zap.String("details", details),
	)
}
