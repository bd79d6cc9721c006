package admin

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
	"github.com/SAIMANIDEEP29/donor-network/internal/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 5 * time.Minute
)

// DashboardStats is the admin overview of platform activity.
type DashboardStats struct {
	TotalDonors       int64 `json:"total_donors"`
	AvailableDonors   int64 `json:"available_donors"`
	OpenRequests      int64 `json:"open_requests"`
	FulfilledRequests int64 `json:"fulfilled_requests"`
	CancelledRequests int64 `json:"cancelled_requests"`
}

type Service interface {
	ListUsers(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error)
	AssignRole(ctx context.Context, adminID uuid.UUID, input *domain.AssignRoleInput) error
	SetDonorAvailability(ctx context.Context, adminID, userID uuid.UUID, available bool) error
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	AuditTrail(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error)
}

type service struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	requestRepo repository.RequestRepository
	auditRepo   repository.AuditLogRepository
	redis       *redis.Client
}

func NewService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	requestRepo repository.RequestRepository,
	auditRepo repository.AuditLogRepository,
	redisClient *redis.Client,
) Service {
	return &service{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		requestRepo: requestRepo,
		auditRepo:   auditRepo,
		redis:       redisClient,
	}
}

func (s *service) ListUsers(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error) {
	users, total, err := s.userRepo.ListAll(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.User]{}, err
	}

	return domain.NewPaginatedResponse(users, params.Page, params.PageSize, total), nil
}

func (s *service) AssignRole(ctx context.Context, adminID uuid.UUID, input *domain.AssignRoleInput) error {
	if !input.Role.IsValid() {
		return ErrInvalidRole
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.AssignRole(ctx, input.UserID, string(input.Role)); err != nil {
		return err
	}

	entry := &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     adminID,
		Action:     domain.AuditRoleAssigned,
		EntityType: "user",
		EntityID:   input.UserID,
	}
	_ = s.auditRepo.Create(ctx, entry)

	return nil
}

func (s *service) SetDonorAvailability(ctx context.Context, adminID, userID uuid.UUID, available bool) error {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrUserNotFound
	}

	if err := s.profileRepo.SetAvailability(ctx, userID, available); err != nil {
		return err
	}

	entry := &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     adminID,
		Action:     domain.AuditAvailabilitySet,
		EntityType: "profile",
		EntityID:   userID,
	}
	_ = s.auditRepo.Create(ctx, entry)

	return nil
}

// DashboardStats aggregates platform counters, cache-aside with a short TTL
// since the dashboard tolerates slightly stale numbers.
func (s *service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats DashboardStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	totalDonors, availableDonors, err := s.profileRepo.CountDonors(ctx)
	if err != nil {
		return nil, err
	}

	open, err := s.requestRepo.CountByStatus(ctx, domain.RequestOpen)
	if err != nil {
		return nil, err
	}
	fulfilled, err := s.requestRepo.CountByStatus(ctx, domain.RequestFulfilled)
	if err != nil {
		return nil, err
	}
	cancelled, err := s.requestRepo.CountByStatus(ctx, domain.RequestCancelled)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalDonors:       totalDonors,
		AvailableDonors:   availableDonors,
		OpenRequests:      open,
		FulfilledRequests: fulfilled,
		CancelledRequests: cancelled,
	}

	if s.redis != nil {
		if data, err := json.Marshal(stats); err == nil {
			s.redis.Set(ctx, statsCacheKey, data, statsCacheTTL)
		}
	}

	return stats, nil
}

func (s *service) AuditTrail(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	logs, total, err := s.auditRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AuditLog]{}, err
	}

	return domain.NewPaginatedResponse(logs, params.Page, params.PageSize, total), nil
}
