package models

import (
	"time"
)

// User roles
const (
	RolePublic   = "public"
	RoleAdvocate = "advocate"
	RoleCourt    = "court"
)

// IsValidRole checks if the role is one of the supported roles
func IsValidRole(role string) bool {
	switch role {
	case RolePublic, RoleAdvocate, RoleCourt:
		return true
	}
	return false
}

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string  `gorm:"size:150;not null" json:"name"`
	Email    string  `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password string  `gorm:"size:255;not null" json:"-"`
	Role     string  `gorm:"size:20;not null;default:public;index" json:"role"`
	Phone    *string `gorm:"size:20" json:"phone"`
	Avatar   *string `gorm:"size:255" json:"avatar"`

	// Public
	CitizenID *string `gorm:"size:50" json:"citizenId,omitempty"`

	// Advocate
	BarCouncilID   *string `gorm:"size:50" json:"barCouncilId,omitempty"`
	Specialization *string `gorm:"size:100" json:"specialization,omitempty"`
	Experience     *string `gorm:"size:50" json:"experience,omitempty"`
	Rating         float64 `gorm:"default:0" json:"rating"`
	ActiveCases    int     `gorm:"default:0" json:"activeCases"`

	// Court
	CourtName *string `gorm:"size:200" json:"courtName,omitempty"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// UserResponse is the public profile of a user. Role-specific fields are
// only populated for the matching role.
type UserResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Phone     *string `json:"phone"`
	Avatar    *string `json:"avatar"`
	CreatedAt *string `json:"created_at"`

	CitizenID *string `json:"citizenId,omitempty"`

	BarCouncilID   *string  `json:"barCouncilId,omitempty"`
	Specialization *string  `json:"specialization,omitempty"`
	Experience     *string  `json:"experience,omitempty"`
	Rating         *float64 `json:"rating,omitempty"`
	ActiveCases    *int     `json:"activeCases,omitempty"`

	CourtName *string `json:"courtName,omitempty"`
}

func (u *User) ToResponse() UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Phone:     u.Phone,
		Avatar:    u.Avatar,
		CreatedAt: FormatDateTime(&u.CreatedAt),
	}

	switch u.Role {
	case RolePublic:
		resp.CitizenID = u.CitizenID
	case RoleAdvocate:
		rating := u.Rating
		active := u.ActiveCases
		resp.BarCouncilID = u.BarCouncilID
		resp.Specialization = u.Specialization
		resp.Experience = u.Experience
		resp.Rating = &rating
		resp.ActiveCases = &active
	case RoleCourt:
		resp.CourtName = u.CourtName
	}

	return resp
}

// IsCourt reports whether the user acts for the court
func (u *User) IsCourt() bool {
	return u.Role == RoleCourt
}

// IsAdvocate reports whether the user is an advocate
func (u *User) IsAdvocate() bool {
	return u.Role == RoleAdvocate
}

// CanManageCases reports whether the user may create cases, hearings and documents
func (u *User) CanManageCases() bool {
	return u.Role == RoleCourt || u.Role == RoleAdvocate
}
