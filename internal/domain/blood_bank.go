package domain

import (
	"time"

	"github.com/google/uuid"
)

type BloodBank struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	LicenseNumber string    `json:"license_number" db:"license_number"`
	LicenseDocURL *string   `json:"license_doc_url,omitempty" db:"license_doc_url"`
	Phone         string    `json:"phone" db:"phone"`
	City          string    `json:"city" db:"city"`
	District      string    `json:"district" db:"district"`
	State         string    `json:"state" db:"state"`
	IsVerified    bool      `json:"is_verified" db:"is_verified"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	Inventory []InventoryItem `json:"inventory,omitempty" db:"-"`
}

// InventoryItem is the stocked unit count for one blood group at one bank.
type InventoryItem struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	BloodBankID    uuid.UUID  `json:"blood_bank_id" db:"blood_bank_id"`
	BloodGroup     BloodGroup `json:"blood_group" db:"blood_group"`
	UnitsAvailable int        `json:"units_available" db:"units_available"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

type UpsertInventoryInput struct {
	Units map[BloodGroup]int `json:"units" validate:"required"`
}

type BloodBankSearchFilter struct {
	City     string `json:"city,omitempty" query:"city"`
	District string `json:"district,omitempty" query:"district"`
}
