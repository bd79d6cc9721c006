package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
	"github.com/SAIMANIDEEP29/donor-network/internal/metrics"
	"github.com/SAIMANIDEEP29/donor-network/internal/repository"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/notification"
)

var (
	ErrRequestNotFound         = errors.New("blood request not found")
	ErrAcceptanceNotFound      = errors.New("acceptance not found")
	ErrNotRequestOwner         = errors.New("only the requester can perform this action")
	ErrInvalidBloodGroup       = errors.New("invalid blood group")
	ErrInvalidUrgency          = errors.New("invalid urgency level")
	ErrInvalidAcceptanceStatus = errors.New("invalid acceptance status")
	ErrProfileNotFound         = errors.New("profile not found")
)

const feedCacheTTL = time.Minute

type Service interface {
	Create(ctx context.Context, requesterID uuid.UUID, input *domain.CreateRequestInput) (*domain.BloodRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error)
	List(ctx context.Context, filter domain.RequestListFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.BloodRequest], error)
	ListMine(ctx context.Context, requesterID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.BloodRequest], error)
	ListOpenForDonor(ctx context.Context, donorID uuid.UUID) ([]domain.BloodRequest, error)

	CheckEligibility(ctx context.Context, requestID, donorID uuid.UUID) error
	Accept(ctx context.Context, requestID, donorID uuid.UUID) (*domain.Acceptance, error)
	ListAcceptances(ctx context.Context, requestID, callerID uuid.UUID, isAdmin bool) ([]domain.Acceptance, error)
	ListMyAcceptances(ctx context.Context, donorID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Acceptance], error)
	UpdateAcceptanceStatus(ctx context.Context, acceptanceID, callerID uuid.UUID, isAdmin bool, status domain.AcceptanceStatus) (*domain.Acceptance, error)

	MarkAccepted(ctx context.Context, requestID, callerID uuid.UUID, isAdmin bool) (*domain.BloodRequest, error)
	MarkFulfilled(ctx context.Context, requestID, callerID uuid.UUID, isAdmin bool) (*domain.BloodRequest, error)
	Cancel(ctx context.Context, requestID, callerID uuid.UUID, isAdmin bool) (*domain.BloodRequest, error)

	// SetNow overrides the clock used by eligibility checks. Tests only.
	SetNow(now func() time.Time)
}

type service struct {
	requestRepo    repository.RequestRepository
	acceptanceRepo repository.AcceptanceRepository
	profileRepo    repository.ProfileRepository
	donationRepo   repository.DonationRepository
	auditRepo      repository.AuditLogRepository
	notifSvc       notification.Service
	redis          *redis.Client
	metrics        *metrics.Metrics
	now            func() time.Time
}

func NewService(
	requestRepo repository.RequestRepository,
	acceptanceRepo repository.AcceptanceRepository,
	profileRepo repository.ProfileRepository,
	donationRepo repository.DonationRepository,
	auditRepo repository.AuditLogRepository,
	notifSvc notification.Service,
	redisClient *redis.Client,
	m *metrics.Metrics,
) Service {
	return &service{
		requestRepo:    requestRepo,
		acceptanceRepo: acceptanceRepo,
		profileRepo:    profileRepo,
		donationRepo:   donationRepo,
		auditRepo:      auditRepo,
		notifSvc:       notifSvc,
		redis:          redisClient,
		metrics:        m,
		now:            time.Now,
	}
}

func (s *service) SetNow(now func() time.Time) {
	s.now = now
}

func (s *service) Create(ctx context.Context, requesterID uuid.UUID, input *domain.CreateRequestInput) (*domain.BloodRequest, error) {
	if !input.BloodGroup.IsValid() {
		return nil, ErrInvalidBloodGroup
	}
	if !input.UrgencyLevel.IsValid() {
		return nil, ErrInvalidUrgency
	}

	req := &domain.BloodRequest{
		ID:                    uuid.New(),
		RequesterID:           requesterID,
		HospitalName:          input.HospitalName,
		City:                  input.City,
		District:              input.District,
		State:                 input.State,
		PatientName:           input.PatientName,
		IllnessCondition:      input.IllnessCondition,
		BloodGroup:            input.BloodGroup,
		UrgencyLevel:          input.UrgencyLevel,
		Status:                domain.RequestOpen,
		MobileNumber:          input.MobileNumber,
		AllowCompatibleGroups: input.AllowCompatibleGroups,
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create blood request: %w", err)
	}

	s.metrics.RequestsCreated.Inc()
	s.audit(ctx, requesterID, domain.AuditRequestCreated, req.ID)
	s.invalidateFeeds(ctx, req.BloodGroup)

	// Donor fan-out must not delay or fail the create.
	go func() {
		if err := s.notifSvc.NotifyRequestCreated(context.Background(), req); err != nil {
			log.Printf("Failed to notify donors for request %s: %v", req.ID, err)
		}
	}()

	return req, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}

	if requester, err := s.profileRepo.GetByID(ctx, req.RequesterID); err == nil {
		req.Requester = requester
	}

	return req, nil
}

func (s *service) List(ctx context.Context, filter domain.RequestListFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.BloodRequest], error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return domain.PaginatedResponse[domain.BloodRequest]{}, errors.New("invalid status filter")
	}
	if filter.BloodGroup != nil && !filter.BloodGroup.IsValid() {
		return domain.PaginatedResponse[domain.BloodRequest]{}, ErrInvalidBloodGroup
	}

	requests, total, err := s.requestRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.BloodRequest]{}, err
	}

	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

func (s *service) ListMine(ctx context.Context, requesterID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.BloodRequest], error) {
	filter := domain.RequestListFilter{RequesterID: &requesterID}

	requests, total, err := s.requestRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.BloodRequest]{}, err
	}

	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

// ListOpenForDonor returns the open requests the donor's blood group can
// supply, urgent first. Donors with the same group see the same feed, so it
// is cached per group with a short TTL.
func (s *service) ListOpenForDonor(ctx context.Context, donorID uuid.UUID) ([]domain.BloodRequest, error) {
	profile, err := s.profileRepo.GetByID(ctx, donorID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	cacheKey := feedCacheKey(profile.BloodGroup)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var requests []domain.BloodRequest
			if err := json.Unmarshal([]byte(cached), &requests); err == nil {
				return requests, nil
			}
		}
	}

	open := domain.RequestOpen
	all, _, err := s.requestRepo.List(ctx, domain.RequestListFilter{Status: &open}, domain.PaginationParams{Page: 1, PageSize: 100})
	if err != nil {
		return nil, err
	}

	feed := make([]domain.BloodRequest, 0, len(all))
	for _, req := range all {
		if domain.CanDonate(profile.BloodGroup, req.BloodGroup) {
			feed = append(feed, req)
		}
	}

	if s.redis != nil {
		if data, err := json.Marshal(feed); err == nil {
			s.redis.Set(ctx, cacheKey, data, feedCacheTTL)
		}
	}

	return feed, nil
}

// CheckEligibility runs the advisory acceptance gate for a donor against a
// request. A nil return means the donor may attempt to accept; the same
// checks are re-validated atomically inside Accept.
func (s *service) CheckEligibility(ctx context.Context, requestID, donorID uuid.UUID) error {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrRequestNotFound
	}

	profile, err := s.profileRepo.GetByID(ctx, donorID)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrProfileNotFound
	}

	if req.Status.IsTerminal() {
		return domain.ErrInvalidStateTransition
	}

	hasActive, err := s.acceptanceRepo.HasActiveAcceptance(ctx, requestID, donorID)
	if err != nil {
		return err
	}

	return domain.CanAccept(profile, req, hasActive, s.now())
}

// Accept records the donor's commitment. The gate result is advisory; the
// insert itself re-validates the request status and the uniqueness of the
// acceptance, so two racing donors (or one donor double-clicking) resolve
// consistently at the database.
func (s *service) Accept(ctx context.Context, requestID, donorID uuid.UUID) (*domain.Acceptance, error) {
	if err := s.CheckEligibility(ctx, requestID, donorID); err != nil {
		return nil, err
	}

	acc := &domain.Acceptance{
		ID:        uuid.New(),
		RequestID: requestID,
		DonorID:   donorID,
		Status:    domain.AcceptanceAccepted,
	}

	err := s.acceptanceRepo.CreateIfRequestActive(ctx, acc)
	if errors.Is(err, domain.ErrInvalidStateTransition) {
		// The gate passed moments ago, so the request closed underneath us.
		return nil, domain.ErrConflict
	}
	if err != nil {
		return nil, err
	}

	s.metrics.AcceptancesRecorded.Inc()
	s.audit(ctx, donorID, domain.AuditRequestAccepted, requestID)
	s.notifyAccepted(ctx, requestID, donorID)

	return acc, nil
}

// notifyAccepted emits the requester-facing notification. Failures are
// logged, never surfaced: the acceptance is already committed.
func (s *service) notifyAccepted(ctx context.Context, requestID, donorID uuid.UUID) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil || req == nil {
		log.Printf("Failed to load request %s for notification: %v", requestID, err)
		return
	}
	donor, err := s.profileRepo.GetByID(ctx, donorID)
	if err != nil || donor == nil {
		log.Printf("Failed to load donor %s for notification: %v", donorID, err)
		return
	}

	go func() {
		if err := s.notifSvc.NotifyDonorAccepted(context.Background(), req, donor); err != nil {
			log.Printf("Failed to notify requester for request %s: %v", req.ID, err)
		}
	}()
}

func (s *service) ListAcceptances(ctx context.Context, requestID, callerID uuid.UUID, isAdmin bool) ([]domain.Acceptance, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.RequesterID != callerID && !isAdmin {
		return nil, ErrNotRequestOwner
	}

	return s.acceptanceRepo.ListByRequest(ctx, requestID)
}

func (s *service) ListMyAcceptances(ctx context.Context, donorID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Acceptance], error) {
	acceptances, total, err := s.acceptanceRepo.ListByDonor(ctx, donorID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Acceptance]{}, err
	}

	return domain.NewPaginatedResponse(acceptances, params.Page, params.PageSize, total), nil
}

// UpdateAcceptanceStatus moves a single acceptance through the requester's
// coordination workflow. Reaching completed records the donation and starts
// the donor's cooldown.
func (s *service) UpdateAcceptanceStatus(ctx context.Context, acceptanceID, callerID uuid.UUID, isAdmin bool, status domain.AcceptanceStatus) (*domain.Acceptance, error) {
	if !status.IsValid() {
		return nil, ErrInvalidAcceptanceStatus
	}

	acc, err := s.acceptanceRepo.GetByID(ctx, acceptanceID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, ErrAcceptanceNotFound
	}

	req, err := s.requestRepo.GetByID(ctx, acc.RequestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.RequesterID != callerID && !isAdmin {
		return nil, ErrNotRequestOwner
	}

	if err := s.acceptanceRepo.UpdateStatus(ctx, acceptanceID, status); err != nil {
		return nil, err
	}
	acc.Status = status

	if status == domain.AcceptanceCompleted {
		s.recordDonation(ctx, req, acc)
	}

	return acc, nil
}

func (s *service) recordDonation(ctx context.Context, req *domain.BloodRequest, acc *domain.Acceptance) {
	donatedAt := s.now()
	donation := &domain.Donation{
		ID:           uuid.New(),
		DonorID:      acc.DonorID,
		RequestID:    &req.ID,
		AcceptanceID: &acc.ID,
		PatientName:  req.PatientName,
		HospitalName: req.HospitalName,
		BloodGroup:   req.BloodGroup,
		DonatedAt:    donatedAt,
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		log.Printf("Failed to record donation for acceptance %s: %v", acc.ID, err)
		return
	}

	if err := s.profileRepo.SetLastDonationDate(ctx, acc.DonorID, donatedAt); err != nil {
		log.Printf("Failed to update last donation date for donor %s: %v", acc.DonorID, err)
	}

	s.metrics.DonationsCompleted.Inc()
	s.auditEntity(ctx, acc.DonorID, domain.AuditDonationRecorded, "donation", donation.ID)
}

func (s *service) MarkAccepted(ctx context.Context, requestID, callerID uuid.UUID, isAdmin bool) (*domain.BloodRequest, error) {
	return s.transition(ctx, requestID, callerID, isAdmin, domain.RequestAccepted, domain.AuditRequestAccepted)
}

func (s *service) MarkFulfilled(ctx context.Context, requestID, callerID uuid.UUID, isAdmin bool) (*domain.BloodRequest, error) {
	return s.transition(ctx, requestID, callerID, isAdmin, domain.RequestFulfilled, domain.AuditRequestFulfilled)
}

// Cancel closes the request and cascades its outstanding acceptances to
// cancelled in the same transaction.
func (s *service) Cancel(ctx context.Context, requestID, callerID uuid.UUID, isAdmin bool) (*domain.BloodRequest, error) {
	req, err := s.authorizeTransition(ctx, requestID, callerID, isAdmin)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.CancelWithAcceptances(ctx, requestID); err != nil {
		return nil, err
	}
	req.Status = domain.RequestCancelled

	s.audit(ctx, callerID, domain.AuditRequestCancelled, requestID)
	s.invalidateFeeds(ctx, req.BloodGroup)

	return req, nil
}

func (s *service) transition(ctx context.Context, requestID, callerID uuid.UUID, isAdmin bool, next domain.RequestStatus, auditAction string) (*domain.BloodRequest, error) {
	req, err := s.authorizeTransition(ctx, requestID, callerID, isAdmin)
	if err != nil {
		return nil, err
	}

	// The repository re-checks the transition under the row lock; stale
	// reads here still resolve to ErrInvalidStateTransition.
	if err := s.requestRepo.UpdateStatus(ctx, requestID, next); err != nil {
		return nil, err
	}
	req.Status = next

	s.audit(ctx, callerID, auditAction, requestID)
	s.invalidateFeeds(ctx, req.BloodGroup)

	return req, nil
}

func (s *service) authorizeTransition(ctx context.Context, requestID, callerID uuid.UUID, isAdmin bool) (*domain.BloodRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.RequesterID != callerID && !isAdmin {
		return nil, ErrNotRequestOwner
	}
	return req, nil
}

func feedCacheKey(group domain.BloodGroup) string {
	return fmt.Sprintf("feed:requests:%s", group)
}

// invalidateFeeds drops the cached feeds of every donor group that could
// supply the given request group.
func (s *service) invalidateFeeds(ctx context.Context, group domain.BloodGroup) {
	if s.redis == nil {
		return
	}
	keys := make([]string, 0, 8)
	for _, donorGroup := range domain.CompatibleDonors(group) {
		keys = append(keys, feedCacheKey(donorGroup))
	}
	if len(keys) > 0 {
		s.redis.Del(ctx, keys...)
	}
}

func (s *service) audit(ctx context.Context, userID uuid.UUID, action string, entityID uuid.UUID) {
	s.auditEntity(ctx, userID, action, "blood_request", entityID)
}

func (s *service) auditEntity(ctx context.Context, userID uuid.UUID, action, entityType string, entityID uuid.UUID) {
	entry := &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}
	_ = s.auditRepo.Create(ctx, entry)
}
