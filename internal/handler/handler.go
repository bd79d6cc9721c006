package handler

import "github.com/SAIMANIDEEP29/donor-network/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Request      *RequestHandler
	Notification *NotificationHandler
	BloodBank    *BloodBankHandler
	Donation     *DonationHandler
	Admin        *AdminHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Profile:      NewProfileHandler(services.Profile),
		Request:      NewRequestHandler(services.Request),
		Notification: NewNotificationHandler(services.Notification, services.Realtime),
		BloodBank:    NewBloodBankHandler(services.BloodBank),
		Donation:     NewDonationHandler(services.Donation),
		Admin:        NewAdminHandler(services.Admin),
	}
}
