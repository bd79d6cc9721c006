package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	UserID      uuid.UUID        `json:"user_id" db:"user_id"`
	Type        NotificationType `json:"type" db:"type"`
	Message     string           `json:"message" db:"message"`
	RequestID   *uuid.UUID       `json:"request_id,omitempty" db:"request_id"`
	IsRead      bool             `json:"is_read" db:"is_read"`
	ActionTaken bool             `json:"action_taken" db:"action_taken"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifRequestCreated  NotificationType = "request_created"
	NotifRequestAccepted NotificationType = "request_accepted"
	NotifDonorAccepted   NotificationType = "donor_accepted"
)
