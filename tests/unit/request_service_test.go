package unit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
	"github.com/SAIMANIDEEP29/donor-network/internal/metrics"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/request"
	"github.com/SAIMANIDEEP29/donor-network/tests/mocks"
)

type requestServiceFixture struct {
	requestRepo    *mocks.RequestRepository
	acceptanceRepo *mocks.AcceptanceRepository
	profileRepo    *mocks.ProfileRepository
	donationRepo   *mocks.DonationRepository
	auditRepo      *mocks.AuditLogRepository
	notifSvc       *mocks.NotificationService
	svc            request.Service
}

func newRequestServiceFixture(now time.Time) *requestServiceFixture {
	f := &requestServiceFixture{
		requestRepo:    new(mocks.RequestRepository),
		acceptanceRepo: new(mocks.AcceptanceRepository),
		profileRepo:    new(mocks.ProfileRepository),
		donationRepo:   new(mocks.DonationRepository),
		auditRepo:      new(mocks.AuditLogRepository),
		notifSvc:       new(mocks.NotificationService),
	}
	f.svc = request.NewService(
		f.requestRepo, f.acceptanceRepo, f.profileRepo, f.donationRepo, f.auditRepo,
		f.notifSvc, nil, metrics.NewWith(prometheus.NewRegistry()),
	)
	f.svc.SetNow(func() time.Time { return now })
	return f
}

func willingDonor(group domain.BloodGroup) *domain.Profile {
	return &domain.Profile{
		ID:              uuid.New(),
		Name:            "Donor",
		BloodGroup:      group,
		WillingToDonate: true,
		IsAvailable:     true,
	}
}

func openRequest(group domain.BloodGroup) *domain.BloodRequest {
	return &domain.BloodRequest{
		ID:          uuid.New(),
		RequesterID: uuid.New(),
		PatientName: "Patient",
		BloodGroup:  group,
		Status:      domain.RequestOpen,
	}
}

func TestRequestService_Accept(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		donor := willingDonor(domain.GroupONeg)
		req := openRequest(domain.GroupAPos)

		f.requestRepo.On("GetByID", ctx, req.ID).Return(req, nil)
		f.profileRepo.On("GetByID", ctx, donor.ID).Return(donor, nil)
		f.acceptanceRepo.On("HasActiveAcceptance", ctx, req.ID, donor.ID).Return(false, nil).Once()
		f.acceptanceRepo.On("CreateIfRequestActive", ctx, mock.MatchedBy(func(a *domain.Acceptance) bool {
			return a.RequestID == req.ID && a.DonorID == donor.ID && a.Status == domain.AcceptanceAccepted
		})).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Once()
		f.notifSvc.On("NotifyDonorAccepted", mock.Anything, req, donor).Return(nil).Maybe()

		acc, err := f.svc.Accept(ctx, req.ID, donor.ID)

		assert.NoError(t, err)
		assert.NotNil(t, acc)
		assert.Equal(t, domain.AcceptanceAccepted, acc.Status)
		f.acceptanceRepo.AssertExpectations(t)
	})

	t.Run("Not Willing", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		donor := willingDonor(domain.GroupONeg)
		donor.WillingToDonate = false
		req := openRequest(domain.GroupAPos)

		f.requestRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.profileRepo.On("GetByID", ctx, donor.ID).Return(donor, nil).Once()
		f.acceptanceRepo.On("HasActiveAcceptance", ctx, req.ID, donor.ID).Return(false, nil).Once()

		_, err := f.svc.Accept(ctx, req.ID, donor.ID)

		assert.ErrorIs(t, err, domain.ErrNotWilling)
		f.acceptanceRepo.AssertNotCalled(t, "CreateIfRequestActive", mock.Anything, mock.Anything)
	})

	t.Run("Cooldown Active", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		donor := willingDonor(domain.GroupONeg)
		lastDonation := now.AddDate(0, 0, -10)
		donor.LastDonationDate = &lastDonation
		req := openRequest(domain.GroupAPos)

		f.requestRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.profileRepo.On("GetByID", ctx, donor.ID).Return(donor, nil).Once()
		f.acceptanceRepo.On("HasActiveAcceptance", ctx, req.ID, donor.ID).Return(false, nil).Once()

		_, err := f.svc.Accept(ctx, req.ID, donor.ID)

		cooldown, ok := domain.IsCooldown(err)
		assert.True(t, ok)
		assert.Equal(t, 80, cooldown.DaysRemaining)
	})

	t.Run("Incompatible Group", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		donor := willingDonor(domain.GroupABPos)
		req := openRequest(domain.GroupONeg)

		f.requestRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.profileRepo.On("GetByID", ctx, donor.ID).Return(donor, nil).Once()
		f.acceptanceRepo.On("HasActiveAcceptance", ctx, req.ID, donor.ID).Return(false, nil).Once()

		_, err := f.svc.Accept(ctx, req.ID, donor.ID)

		assert.ErrorIs(t, err, domain.ErrIncompatibleGroup)
	})

	t.Run("Self Acceptance", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		donor := willingDonor(domain.GroupONeg)
		req := openRequest(domain.GroupAPos)
		req.RequesterID = donor.ID

		f.requestRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.profileRepo.On("GetByID", ctx, donor.ID).Return(donor, nil).Once()
		f.acceptanceRepo.On("HasActiveAcceptance", ctx, req.ID, donor.ID).Return(false, nil).Once()

		_, err := f.svc.Accept(ctx, req.ID, donor.ID)

		assert.ErrorIs(t, err, domain.ErrSelfAcceptance)
	})

	t.Run("Already Accepted", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		donor := willingDonor(domain.GroupONeg)
		req := openRequest(domain.GroupAPos)

		f.requestRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.profileRepo.On("GetByID", ctx, donor.ID).Return(donor, nil).Once()
		f.acceptanceRepo.On("HasActiveAcceptance", ctx, req.ID, donor.ID).Return(true, nil).Once()

		_, err := f.svc.Accept(ctx, req.ID, donor.ID)

		assert.ErrorIs(t, err, domain.ErrAlreadyAccepted)
	})

	t.Run("Terminal Request", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		donor := willingDonor(domain.GroupONeg)
		req := openRequest(domain.GroupAPos)
		req.Status = domain.RequestFulfilled

		f.requestRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.profileRepo.On("GetByID", ctx, donor.ID).Return(donor, nil).Once()

		_, err := f.svc.Accept(ctx, req.ID, donor.ID)

		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
		f.acceptanceRepo.AssertNotCalled(t, "HasActiveAcceptance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Request Closed Between Check And Insert", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		donor := willingDonor(domain.GroupONeg)
		req := openRequest(domain.GroupAPos)

		f.requestRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.profileRepo.On("GetByID", ctx, donor.ID).Return(donor, nil).Once()
		f.acceptanceRepo.On("HasActiveAcceptance", ctx, req.ID, donor.ID).Return(false, nil).Once()
		f.acceptanceRepo.On("CreateIfRequestActive", ctx, mock.Anything).Return(domain.ErrInvalidStateTransition).Once()

		_, err := f.svc.Accept(ctx, req.ID, donor.ID)

		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("Notification Failure Does Not Roll Back", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		donor := willingDonor(domain.GroupONeg)
		req := openRequest(domain.GroupAPos)

		f.requestRepo.On("GetByID", ctx, req.ID).Return(req, nil)
		f.profileRepo.On("GetByID", ctx, donor.ID).Return(donor, nil)
		f.acceptanceRepo.On("HasActiveAcceptance", ctx, req.ID, donor.ID).Return(false, nil).Once()
		f.acceptanceRepo.On("CreateIfRequestActive", ctx, mock.Anything).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Once()
		f.notifSvc.On("NotifyDonorAccepted", mock.Anything, req, donor).Return(assert.AnError).Maybe()

		acc, err := f.svc.Accept(ctx, req.ID, donor.ID)

		assert.NoError(t, err)
		assert.NotNil(t, acc)
	})
}

func TestRequestService_Transitions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Fulfill Success", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		req := openRequest(domain.GroupBPos)

		f.requestRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.requestRepo.On("UpdateStatus", ctx, req.ID, domain.RequestFulfilled).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Once()

		updated, err := f.svc.MarkFulfilled(ctx, req.ID, req.RequesterID, false)

		assert.NoError(t, err)
		assert.Equal(t, domain.RequestFulfilled, updated.Status)
	})

	t.Run("Fulfill Twice Fails", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		req := openRequest(domain.GroupBPos)
		req.Status = domain.RequestFulfilled

		f.requestRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.requestRepo.On("UpdateStatus", ctx, req.ID, domain.RequestFulfilled).Return(domain.ErrInvalidStateTransition).Once()

		_, err := f.svc.MarkFulfilled(ctx, req.ID, req.RequesterID, false)

		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	})

	t.Run("Non Owner Forbidden", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		req := openRequest(domain.GroupBPos)

		f.requestRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()

		_, err := f.svc.MarkFulfilled(ctx, req.ID, uuid.New(), false)

		assert.ErrorIs(t, err, request.ErrNotRequestOwner)
		f.requestRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Admin Can Transition", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		req := openRequest(domain.GroupBPos)

		f.requestRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.requestRepo.On("UpdateStatus", ctx, req.ID, domain.RequestFulfilled).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Once()

		_, err := f.svc.MarkFulfilled(ctx, req.ID, uuid.New(), true)

		assert.NoError(t, err)
	})

	t.Run("Cancel Cascades Acceptances", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		req := openRequest(domain.GroupBPos)

		f.requestRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.requestRepo.On("CancelWithAcceptances", ctx, req.ID).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Once()

		updated, err := f.svc.Cancel(ctx, req.ID, req.RequesterID, false)

		assert.NoError(t, err)
		assert.Equal(t, domain.RequestCancelled, updated.Status)
		f.requestRepo.AssertExpectations(t)
	})
}

func TestRequestService_UpdateAcceptanceStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Completed Records Donation", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		req := openRequest(domain.GroupAPos)
		acc := &domain.Acceptance{
			ID:        uuid.New(),
			RequestID: req.ID,
			DonorID:   uuid.New(),
			Status:    domain.AcceptanceContacted,
		}

		f.acceptanceRepo.On("GetByID", ctx, acc.ID).Return(acc, nil).Once()
		f.requestRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.acceptanceRepo.On("UpdateStatus", ctx, acc.ID, domain.AcceptanceCompleted).Return(nil).Once()
		f.donationRepo.On("Create", ctx, mock.MatchedBy(func(d *domain.Donation) bool {
			return d.DonorID == acc.DonorID && d.BloodGroup == req.BloodGroup && d.DonatedAt.Equal(now)
		})).Return(nil).Once()
		f.profileRepo.On("SetLastDonationDate", ctx, acc.DonorID, now).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Once()

		updated, err := f.svc.UpdateAcceptanceStatus(ctx, acc.ID, req.RequesterID, false, domain.AcceptanceCompleted)

		assert.NoError(t, err)
		assert.Equal(t, domain.AcceptanceCompleted, updated.Status)
		f.donationRepo.AssertExpectations(t)
		f.profileRepo.AssertExpectations(t)
	})

	t.Run("Contacted Does Not Record Donation", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		req := openRequest(domain.GroupAPos)
		acc := &domain.Acceptance{
			ID:        uuid.New(),
			RequestID: req.ID,
			DonorID:   uuid.New(),
			Status:    domain.AcceptanceAccepted,
		}

		f.acceptanceRepo.On("GetByID", ctx, acc.ID).Return(acc, nil).Once()
		f.requestRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()
		f.acceptanceRepo.On("UpdateStatus", ctx, acc.ID, domain.AcceptanceContacted).Return(nil).Once()

		_, err := f.svc.UpdateAcceptanceStatus(ctx, acc.ID, req.RequesterID, false, domain.AcceptanceContacted)

		assert.NoError(t, err)
		f.donationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Non Owner Forbidden", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		req := openRequest(domain.GroupAPos)
		acc := &domain.Acceptance{ID: uuid.New(), RequestID: req.ID, DonorID: uuid.New()}

		f.acceptanceRepo.On("GetByID", ctx, acc.ID).Return(acc, nil).Once()
		f.requestRepo.On("GetByID", ctx, req.ID).Return(req, nil).Once()

		_, err := f.svc.UpdateAcceptanceStatus(ctx, acc.ID, uuid.New(), false, domain.AcceptanceContacted)

		assert.ErrorIs(t, err, request.ErrNotRequestOwner)
	})
}

func TestRequestService_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		requesterID := uuid.New()
		input := &domain.CreateRequestInput{
			HospitalName: "City Hospital",
			City:         "Hyderabad",
			District:     "Hyderabad",
			State:        "Telangana",
			PatientName:  "Patient",
			BloodGroup:   domain.GroupBNeg,
			UrgencyLevel: domain.UrgencyHigh,
			MobileNumber: "9999999999",
		}

		f.requestRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.BloodRequest) bool {
			return r.RequesterID == requesterID && r.Status == domain.RequestOpen && r.BloodGroup == domain.GroupBNeg
		})).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Once()
		f.notifSvc.On("NotifyRequestCreated", mock.Anything, mock.Anything).Return(nil).Maybe()

		req, err := f.svc.Create(ctx, requesterID, input)

		assert.NoError(t, err)
		assert.Equal(t, domain.RequestOpen, req.Status)
		f.requestRepo.AssertExpectations(t)
	})

	t.Run("Invalid Blood Group", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		input := &domain.CreateRequestInput{BloodGroup: "X+", UrgencyLevel: domain.UrgencyLow}

		_, err := f.svc.Create(ctx, uuid.New(), input)

		assert.ErrorIs(t, err, request.ErrInvalidBloodGroup)
	})

	t.Run("Invalid Urgency", func(t *testing.T) {
		f := newRequestServiceFixture(now)
		input := &domain.CreateRequestInput{BloodGroup: domain.GroupAPos, UrgencyLevel: "critical"}

		_, err := f.svc.Create(ctx, uuid.New(), input)

		assert.ErrorIs(t, err, request.ErrInvalidUrgency)
	})
}
