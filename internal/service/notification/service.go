package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
	"github.com/SAIMANIDEEP29/donor-network/internal/metrics"
	"github.com/SAIMANIDEEP29/donor-network/internal/repository"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/email"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/realtime"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	MarkActionTaken(ctx context.Context, id, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)

	NotifyDonorAccepted(ctx context.Context, request *domain.BloodRequest, donor *domain.Profile) error
	NotifyRequestCreated(ctx context.Context, request *domain.BloodRequest) error
}

type service struct {
	notifRepo   repository.NotificationRepository
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	emailSvc    email.Service
	publisher   realtime.Publisher
	metrics     *metrics.Metrics
}

func NewService(
	notifRepo repository.NotificationRepository,
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	emailSvc email.Service,
	publisher realtime.Publisher,
	m *metrics.Metrics,
) Service {
	return &service{
		notifRepo:   notifRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		publisher:   publisher,
		metrics:     m,
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) MarkActionTaken(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.MarkActionTaken(ctx, id, userID)
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.Delete(ctx, id, userID)
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// NotifyDonorAccepted tells the requester that a donor committed to their
// request. The notification row is the contract; realtime push and email are
// best-effort on top of it.
func (s *service) NotifyDonorAccepted(ctx context.Context, request *domain.BloodRequest, donor *domain.Profile) error {
	requestID := request.ID
	notif := &domain.Notification{
		ID:        uuid.New(),
		UserID:    request.RequesterID,
		Type:      domain.NotifDonorAccepted,
		Message:   fmt.Sprintf("%s (%s) has accepted your blood request for %s", donor.Name, donor.BloodGroup, request.PatientName),
		RequestID: &requestID,
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	s.metrics.NotificationsEmitted.Inc()

	if s.publisher != nil {
		if err := s.publisher.PublishNotification(ctx, notif); err != nil {
			log.Printf("Failed to publish notification %s: %v", notif.ID, err)
		}
	}

	if s.emailSvc != nil {
		s.emailDonorAccepted(ctx, request, donor)
	}

	return nil
}

func (s *service) emailDonorAccepted(ctx context.Context, request *domain.BloodRequest, donor *domain.Profile) {
	requester, err := s.profileRepo.GetByID(ctx, request.RequesterID)
	if err != nil || requester == nil {
		return
	}
	account, err := s.userRepo.GetByID(ctx, request.RequesterID)
	if err != nil || account == nil {
		return
	}

	go func() {
		err := s.emailSvc.SendDonorAcceptedEmail(context.Background(),
			account.Email, requester.Name, donor.Name, donor.BloodGroup, request.PatientName)
		if err != nil {
			log.Printf("Failed to send donor accepted email: %v", err)
		}
	}()
}

// NotifyRequestCreated alerts willing, available donors who could supply the
// request. Exact-group donors are always alerted; the wider compatible set
// only when the requester allowed non-exact groups.
func (s *service) NotifyRequestCreated(ctx context.Context, request *domain.BloodRequest) error {
	groups := []domain.BloodGroup{request.BloodGroup}
	if request.AllowCompatibleGroups {
		groups = domain.CompatibleDonors(request.BloodGroup)
	}

	donors, err := s.profileRepo.ListWillingByGroups(ctx, groups)
	if err != nil {
		return fmt.Errorf("failed to list candidate donors: %w", err)
	}

	requestID := request.ID
	for _, donor := range donors {
		if donor.ID == request.RequesterID {
			continue
		}

		notif := &domain.Notification{
			ID:        uuid.New(),
			UserID:    donor.ID,
			Type:      domain.NotifRequestCreated,
			Message:   fmt.Sprintf("%s blood needed for %s at %s, %s", request.BloodGroup, request.PatientName, request.HospitalName, request.City),
			RequestID: &requestID,
		}

		if err := s.notifRepo.Create(ctx, notif); err != nil {
			log.Printf("Failed to create notification for donor %s: %v", donor.ID, err)
			continue
		}
		s.metrics.NotificationsEmitted.Inc()

		if s.publisher != nil {
			if err := s.publisher.PublishNotification(ctx, notif); err != nil {
				log.Printf("Failed to publish notification %s: %v", notif.ID, err)
			}
		}

		if s.emailSvc != nil {
			s.emailRequestAlert(ctx, request, &donor)
		}
	}

	return nil
}

func (s *service) emailRequestAlert(ctx context.Context, request *domain.BloodRequest, donor *domain.Profile) {
	account, err := s.userRepo.GetByID(ctx, donor.ID)
	if err != nil || account == nil {
		return
	}

	toEmail := account.Email
	donorName := donor.Name
	go func() {
		err := s.emailSvc.SendRequestAlertEmail(context.Background(),
			toEmail, donorName, request.PatientName, request.HospitalName, request.City,
			request.BloodGroup, request.UrgencyLevel)
		if err != nil {
			log.Printf("Failed to send request alert email: %v", err)
		}
	}()
}
