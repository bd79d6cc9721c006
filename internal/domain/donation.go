package domain

import (
	"time"

	"github.com/google/uuid"
)

// Donation is one completed donation, recorded when an acceptance reaches the
// completed status.
type Donation struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	DonorID      uuid.UUID  `json:"donor_id" db:"donor_id"`
	RequestID    *uuid.UUID `json:"request_id,omitempty" db:"request_id"`
	AcceptanceID *uuid.UUID `json:"acceptance_id,omitempty" db:"acceptance_id"`
	PatientName  string     `json:"patient_name" db:"patient_name"`
	HospitalName string     `json:"hospital_name" db:"hospital_name"`
	BloodGroup   BloodGroup `json:"blood_group" db:"blood_group"`
	DonatedAt    time.Time  `json:"donated_at" db:"donated_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}
