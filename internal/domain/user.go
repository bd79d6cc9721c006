package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                      uuid.UUID  `json:"id" db:"id"`
	Email                   string     `json:"email" db:"email"`
	PasswordHash            string     `json:"-" db:"password_hash"`
	Role                    string     `json:"role" db:"role"`
	IsActive                bool       `json:"is_active" db:"is_active"`
	IsEmailVerified         bool       `json:"is_email_verified" db:"is_email_verified"`
	EmailVerificationToken  *string    `json:"-" db:"email_verification_token"`
	EmailVerificationSentAt *time.Time `json:"-" db:"email_verification_sent_at"`
	PasswordResetToken      *string    `json:"-" db:"password_reset_token"`
	PasswordResetExpiresAt  *time.Time `json:"-" db:"password_reset_expires_at"`
	CreatedAt               time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at" db:"updated_at"`
}

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleBloodBank UserRole = "blood_bank"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleBloodBank, RoleAdmin:
		return true
	default:
		return false
	}
}

// HasRole reports whether the user satisfies the required role. Admin
// satisfies every check; blood_bank and user are distinct roles, not a
// hierarchy.
func (u *User) HasRole(requiredRole string) bool {
	if u.Role == string(RoleAdmin) {
		return true
	}
	return u.Role == requiredRole
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`

	Name       string     `json:"name" validate:"required,min=2"`
	Phone      string     `json:"phone" validate:"required"`
	BloodGroup BloodGroup `json:"blood_group" validate:"required"`
	City       string     `json:"city" validate:"required"`
	District   string     `json:"district" validate:"required"`
	State      string     `json:"state" validate:"required"`

	WillingToDonate bool `json:"willing_to_donate"`

	// Blood bank signups register an organization alongside the account.
	AsBloodBank   bool   `json:"as_blood_bank"`
	BloodBankName string `json:"blood_bank_name,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AssignRoleInput struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   UserRole  `json:"role" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
