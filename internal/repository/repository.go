package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Profile      ProfileRepository
	Request      RequestRepository
	Acceptance   AcceptanceRepository
	Notification NotificationRepository
	BloodBank    BloodBankRepository
	Donation     DonationRepository
	AuditLog     AuditLogRepository
	Session      SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Profile:      NewProfileRepository(db),
		Request:      NewRequestRepository(db),
		Acceptance:   NewAcceptanceRepository(db),
		Notification: NewNotificationRepository(db),
		BloodBank:    NewBloodBankRepository(db),
		Donation:     NewDonationRepository(db),
		AuditLog:     NewAuditLogRepository(db),
		Session:      NewSessionRepository(db),
	}
}
