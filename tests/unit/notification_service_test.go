package unit_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
	"github.com/SAIMANIDEEP29/donor-network/internal/metrics"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/notification"
	"github.com/SAIMANIDEEP29/donor-network/tests/mocks"
)

func newNotificationService(notifRepo *mocks.NotificationRepository, profileRepo *mocks.ProfileRepository, publisher *mocks.Publisher) notification.Service {
	if publisher == nil {
		return notification.NewService(notifRepo, profileRepo, nil, nil, nil, metrics.NewWith(prometheus.NewRegistry()))
	}
	return notification.NewService(notifRepo, profileRepo, nil, nil, publisher, metrics.NewWith(prometheus.NewRegistry()))
}

func TestNotificationService_NotifyDonorAccepted(t *testing.T) {
	ctx := context.Background()

	donor := &domain.Profile{ID: uuid.New(), Name: "Asha", BloodGroup: domain.GroupONeg}
	req := &domain.BloodRequest{
		ID:          uuid.New(),
		RequesterID: uuid.New(),
		PatientName: "Ravi",
		BloodGroup:  domain.GroupAPos,
	}

	t.Run("Message Format", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := newNotificationService(notifRepo, new(mocks.ProfileRepository), nil)

		expected := fmt.Sprintf("%s (%s) has accepted your blood request for %s", donor.Name, donor.BloodGroup, req.PatientName)
		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == req.RequesterID &&
				n.Type == domain.NotifDonorAccepted &&
				n.Message == expected &&
				n.RequestID != nil && *n.RequestID == req.ID
		})).Return(nil).Once()

		err := svc.NotifyDonorAccepted(ctx, req, donor)

		assert.NoError(t, err)
		notifRepo.AssertExpectations(t)
	})

	t.Run("Publish Failure Is Swallowed", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		publisher := new(mocks.Publisher)
		svc := newNotificationService(notifRepo, new(mocks.ProfileRepository), publisher)

		notifRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		publisher.On("PublishNotification", ctx, mock.Anything).Return(assert.AnError).Once()

		err := svc.NotifyDonorAccepted(ctx, req, donor)

		assert.NoError(t, err)
		publisher.AssertExpectations(t)
	})

	t.Run("Persist Failure Is Surfaced", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := newNotificationService(notifRepo, new(mocks.ProfileRepository), nil)

		notifRepo.On("Create", ctx, mock.Anything).Return(assert.AnError).Once()

		err := svc.NotifyDonorAccepted(ctx, req, donor)

		assert.Error(t, err)
	})
}

func TestNotificationService_NotifyRequestCreated(t *testing.T) {
	ctx := context.Background()

	req := &domain.BloodRequest{
		ID:           uuid.New(),
		RequesterID:  uuid.New(),
		PatientName:  "Ravi",
		HospitalName: "City Hospital",
		City:         "Hyderabad",
		BloodGroup:   domain.GroupAPos,
	}

	t.Run("Exact Group Only", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		profileRepo := new(mocks.ProfileRepository)
		svc := newNotificationService(notifRepo, profileRepo, nil)

		donors := []domain.Profile{
			{ID: uuid.New(), BloodGroup: domain.GroupAPos},
			{ID: uuid.New(), BloodGroup: domain.GroupAPos},
		}

		profileRepo.On("ListWillingByGroups", ctx, []domain.BloodGroup{domain.GroupAPos}).Return(donors, nil).Once()
		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.Type == domain.NotifRequestCreated
		})).Return(nil).Times(2)

		err := svc.NotifyRequestCreated(ctx, req)

		assert.NoError(t, err)
		notifRepo.AssertExpectations(t)
		profileRepo.AssertExpectations(t)
	})

	t.Run("Compatible Groups When Allowed", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		profileRepo := new(mocks.ProfileRepository)
		svc := newNotificationService(notifRepo, profileRepo, nil)

		wide := *req
		wide.AllowCompatibleGroups = true

		profileRepo.On("ListWillingByGroups", ctx, domain.CompatibleDonors(domain.GroupAPos)).Return([]domain.Profile{}, nil).Once()

		err := svc.NotifyRequestCreated(ctx, &wide)

		assert.NoError(t, err)
		profileRepo.AssertExpectations(t)
	})

	t.Run("Requester Excluded From Fan Out", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		profileRepo := new(mocks.ProfileRepository)
		svc := newNotificationService(notifRepo, profileRepo, nil)

		donors := []domain.Profile{
			{ID: req.RequesterID, BloodGroup: domain.GroupAPos},
			{ID: uuid.New(), BloodGroup: domain.GroupAPos},
		}

		profileRepo.On("ListWillingByGroups", ctx, mock.Anything).Return(donors, nil).Once()
		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID != req.RequesterID
		})).Return(nil).Once()

		err := svc.NotifyRequestCreated(ctx, req)

		assert.NoError(t, err)
		notifRepo.AssertExpectations(t)
	})

	t.Run("One Failed Insert Does Not Stop The Rest", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		profileRepo := new(mocks.ProfileRepository)
		svc := newNotificationService(notifRepo, profileRepo, nil)

		donors := []domain.Profile{
			{ID: uuid.New(), BloodGroup: domain.GroupAPos},
			{ID: uuid.New(), BloodGroup: domain.GroupAPos},
		}

		profileRepo.On("ListWillingByGroups", ctx, mock.Anything).Return(donors, nil).Once()
		notifRepo.On("Create", ctx, mock.Anything).Return(assert.AnError).Once()
		notifRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		err := svc.NotifyRequestCreated(ctx, req)

		assert.NoError(t, err)
		notifRepo.AssertNumberOfCalls(t, "Create", 2)
	})
}
