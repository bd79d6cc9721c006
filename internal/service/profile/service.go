package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
	"github.com/SAIMANIDEEP29/donor-network/internal/repository"
)

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrInvalidBloodGroup = errors.New("invalid blood group")
)

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, id uuid.UUID, input *domain.UpdateProfileInput) (*domain.Profile, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*domain.Profile, error)
	SearchDonors(ctx context.Context, filter domain.DonorSearchFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Profile], error)
	Eligibility(ctx context.Context, id uuid.UUID) (*EligibilityStatus, error)
}

// EligibilityStatus is the self-service view of whether a donor can currently
// accept requests, and if not, how long until the cooldown clears.
type EligibilityStatus struct {
	WillingToDonate   bool `json:"willing_to_donate"`
	IsAvailable       bool `json:"is_available"`
	CooldownActive    bool `json:"cooldown_active"`
	DaysUntilEligible int  `json:"days_until_eligible"`
}

type service struct {
	profileRepo repository.ProfileRepository
	auditRepo   repository.AuditLogRepository
	now         func() time.Time
}

func NewService(profileRepo repository.ProfileRepository, auditRepo repository.AuditLogRepository) Service {
	return &service{
		profileRepo: profileRepo,
		auditRepo:   auditRepo,
		now:         time.Now,
	}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input *domain.UpdateProfileInput) (*domain.Profile, error) {
	profile, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.BloodGroup != nil {
		if !input.BloodGroup.IsValid() {
			return nil, ErrInvalidBloodGroup
		}
		profile.BloodGroup = *input.BloodGroup
	}
	if input.City != nil {
		profile.City = *input.City
	}
	if input.District != nil {
		profile.District = *input.District
	}
	if input.State != nil {
		profile.State = *input.State
	}
	if input.WillingToDonate != nil {
		profile.WillingToDonate = *input.WillingToDonate
	}
	if input.IsAvailable != nil {
		profile.IsAvailable = *input.IsAvailable
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *service) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*domain.Profile, error) {
	profile, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.SetAvailability(ctx, id, available); err != nil {
		return nil, err
	}
	profile.IsAvailable = available

	s.audit(ctx, id, domain.AuditAvailabilitySet, id)

	return profile, nil
}

func (s *service) SearchDonors(ctx context.Context, filter domain.DonorSearchFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Profile], error) {
	if filter.BloodGroup != nil && !filter.BloodGroup.IsValid() {
		return domain.PaginatedResponse[domain.Profile]{}, ErrInvalidBloodGroup
	}

	profiles, total, err := s.profileRepo.SearchDonors(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Profile]{}, err
	}

	return domain.NewPaginatedResponse(profiles, params.Page, params.PageSize, total), nil
}

func (s *service) Eligibility(ctx context.Context, id uuid.UUID) (*EligibilityStatus, error) {
	profile, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := &EligibilityStatus{
		WillingToDonate: profile.WillingToDonate,
		IsAvailable:     profile.IsAvailable,
	}

	if days := domain.DaysUntilEligible(profile.LastDonationDate, s.now()); days != nil && *days > 0 {
		status.CooldownActive = true
		status.DaysUntilEligible = *days
	}

	return status, nil
}

func (s *service) audit(ctx context.Context, userID uuid.UUID, action string, entityID uuid.UUID) {
	if s.auditRepo == nil {
		return
	}
	entry := &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     userID,
		Action:     action,
		EntityType: "profile",
		EntityID:   entityID,
	}
	// audit is best-effort, the primary write already succeeded
	_ = s.auditRepo.Create(ctx, entry)
}
