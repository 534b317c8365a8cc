package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"globeswap/internal/types"

	"gorm.io/gorm"
)

const (
	MaxUsernameLength = 80
	MaxEmailLength    = 120
	MinPasswordLength = 8
)

type User struct {
	BaseModel
	Username     string `gorm:"type:varchar(80);uniqueIndex:idx_users_username;not null" json:"username"`
	Email        string `gorm:"type:varchar(120);uniqueIndex:idx_users_email;not null"   json:"email,omitempty"`
	PasswordHash string `gorm:"type:text;not null"                                      json:"-"`

	// SessionVersion is bumped on every password change; sessions carry the
	// version they were issued under.
	SessionVersion uint `gorm:"not null;default:0" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = NormalizeEmail(u.Email)

	if u.Username == "" || u.Email == "" || u.PasswordHash == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail accepts a bare address only, no display name.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", types.ErrValidation)
	}
	if len(email) > MaxEmailLength {
		return fmt.Errorf("%w: email must be at most %d characters", types.ErrValidation, MaxEmailLength)
	}
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return fmt.Errorf("%w: email address is invalid", types.ErrValidation)
	}
	return nil
}

func ValidatePassword(password, confirmPassword string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", types.ErrValidation)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf(
			"%w: password must be at least %d characters",
			types.ErrValidation,
			MinPasswordLength,
		)
	}
	if password != confirmPassword {
		return fmt.Errorf("%w: passwords do not match", types.ErrValidation)
	}
	return nil
}

// UserProfile is the public view of a user. It never carries credentials.
type UserProfile struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// ToPublicProfile is ToProfile without the email address.
func (u *User) ToPublicProfile() UserProfile {
	profile := u.ToProfile()
	profile.Email = ""
	return profile
}
