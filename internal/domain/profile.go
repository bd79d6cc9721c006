package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the donor-facing data for a registered user. It shares its ID
// with the owning User row.
type Profile struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	Name             string     `json:"name" db:"name"`
	Phone            string     `json:"phone" db:"phone"`
	BloodGroup       BloodGroup `json:"blood_group" db:"blood_group"`
	City             string     `json:"city" db:"city"`
	District         string     `json:"district" db:"district"`
	State            string     `json:"state" db:"state"`
	WillingToDonate  bool       `json:"willing_to_donate" db:"willing_to_donate"`
	IsAvailable      bool       `json:"is_available" db:"is_available"`
	LastDonationDate *time.Time `json:"last_donation_date,omitempty" db:"last_donation_date"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

type UpdateProfileInput struct {
	Name            *string     `json:"name,omitempty" validate:"omitempty,min=2"`
	Phone           *string     `json:"phone,omitempty"`
	BloodGroup      *BloodGroup `json:"blood_group,omitempty"`
	City            *string     `json:"city,omitempty"`
	District        *string     `json:"district,omitempty"`
	State           *string     `json:"state,omitempty"`
	WillingToDonate *bool       `json:"willing_to_donate,omitempty"`
	IsAvailable     *bool       `json:"is_available,omitempty"`
}

// DonorSearchFilter narrows the donor directory. Only profiles with
// willing_to_donate=true are ever returned.
type DonorSearchFilter struct {
	BloodGroup *BloodGroup `json:"blood_group,omitempty" query:"blood_group"`
	City       string      `json:"city,omitempty" query:"city"`
	District   string      `json:"district,omitempty" query:"district"`
}
