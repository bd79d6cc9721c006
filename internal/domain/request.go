package domain

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestOpen      RequestStatus = "open"
	RequestAccepted  RequestStatus = "accepted"
	RequestFulfilled RequestStatus = "fulfilled"
	RequestCancelled RequestStatus = "cancelled"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestOpen, RequestAccepted, RequestFulfilled, RequestCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions (or acceptances) are
// permitted from this status.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestFulfilled || s == RequestCancelled
}

// CanTransitionTo encodes the request state machine:
// open -> accepted -> fulfilled, with cancelled reachable from open or
// accepted. Transitions are monotonic; terminal states admit nothing, so a
// repeated MarkFulfilled surfaces an error rather than a silent no-op.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	switch s {
	case RequestOpen:
		return next == RequestAccepted || next == RequestFulfilled || next == RequestCancelled
	case RequestAccepted:
		return next == RequestFulfilled || next == RequestCancelled
	default:
		return false
	}
}

type UrgencyLevel string

const (
	UrgencyHigh   UrgencyLevel = "high"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyLow    UrgencyLevel = "low"
)

func (u UrgencyLevel) IsValid() bool {
	switch u {
	case UrgencyHigh, UrgencyMedium, UrgencyLow:
		return true
	default:
		return false
	}
}

type BloodRequest struct {
	ID                    uuid.UUID     `json:"id" db:"id"`
	RequesterID           uuid.UUID     `json:"requester_id" db:"requester_id"`
	HospitalName          string        `json:"hospital_name" db:"hospital_name"`
	City                  string        `json:"city" db:"city"`
	District              string        `json:"district" db:"district"`
	State                 string        `json:"state" db:"state"`
	PatientName           string        `json:"patient_name" db:"patient_name"`
	IllnessCondition      string        `json:"illness_condition" db:"illness_condition"`
	BloodGroup            BloodGroup    `json:"blood_group" db:"blood_group"`
	UrgencyLevel          UrgencyLevel  `json:"urgency_level" db:"urgency_level"`
	Status                RequestStatus `json:"status" db:"status"`
	MobileNumber          string        `json:"mobile_number" db:"mobile_number"`
	AllowCompatibleGroups bool          `json:"allow_compatible_groups" db:"allow_compatible_groups"`
	CreatedAt             time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at" db:"updated_at"`

	Requester *Profile `json:"requester,omitempty" db:"-"`
}

type CreateRequestInput struct {
	HospitalName          string       `json:"hospital_name" validate:"required"`
	City                  string       `json:"city" validate:"required"`
	District              string       `json:"district" validate:"required"`
	State                 string       `json:"state" validate:"required"`
	PatientName           string       `json:"patient_name" validate:"required"`
	IllnessCondition      string       `json:"illness_condition" validate:"required"`
	BloodGroup            BloodGroup   `json:"blood_group" validate:"required"`
	UrgencyLevel          UrgencyLevel `json:"urgency_level" validate:"required"`
	MobileNumber          string       `json:"mobile_number" validate:"required"`
	AllowCompatibleGroups bool         `json:"allow_compatible_groups"`
}

// RequestListFilter narrows request listings.
type RequestListFilter struct {
	Status      *RequestStatus `json:"status,omitempty" query:"status"`
	BloodGroup  *BloodGroup    `json:"blood_group,omitempty" query:"blood_group"`
	RequesterID *uuid.UUID     `json:"-"`
}
