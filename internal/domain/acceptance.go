package domain

import (
	"time"

	"github.com/google/uuid"
)

type AcceptanceStatus string

const (
	AcceptanceAccepted  AcceptanceStatus = "accepted"
	AcceptanceContacted AcceptanceStatus = "contacted"
	AcceptanceCompleted AcceptanceStatus = "completed"
	AcceptanceCancelled AcceptanceStatus = "cancelled"
)

func (s AcceptanceStatus) IsValid() bool {
	switch s {
	case AcceptanceAccepted, AcceptanceContacted, AcceptanceCompleted, AcceptanceCancelled:
		return true
	default:
		return false
	}
}

// IsActive reports whether the acceptance still counts toward the one-active-
// acceptance-per-donor invariant.
func (s AcceptanceStatus) IsActive() bool {
	return s != AcceptanceCancelled
}

// Acceptance records one donor's commitment to a specific blood request. At
// most one active acceptance may exist per (request, donor) pair.
type Acceptance struct {
	ID         uuid.UUID        `json:"id" db:"id"`
	RequestID  uuid.UUID        `json:"request_id" db:"request_id"`
	DonorID    uuid.UUID        `json:"donor_id" db:"donor_id"`
	Status     AcceptanceStatus `json:"status" db:"status"`
	AcceptedAt time.Time        `json:"accepted_at" db:"accepted_at"`

	Donor *Profile `json:"donor,omitempty" db:"-"`
}

type UpdateAcceptanceStatusInput struct {
	Status AcceptanceStatus `json:"status" validate:"required"`
}
