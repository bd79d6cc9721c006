package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
)

type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *ProfileRepository) SetAvailability(ctx context.Context, id uuid.UUID, isAvailable bool) error {
	args := m.Called(ctx, id, isAvailable)
	return args.Error(0)
}

func (m *ProfileRepository) SetLastDonationDate(ctx context.Context, id uuid.UUID, donatedAt time.Time) error {
	args := m.Called(ctx, id, donatedAt)
	return args.Error(0)
}

func (m *ProfileRepository) SearchDonors(ctx context.Context, filter domain.DonorSearchFilter, params domain.PaginationParams) ([]domain.Profile, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.Profile), args.Get(1).(int64), args.Error(2)
}

func (m *ProfileRepository) ListWillingByGroups(ctx context.Context, groups []domain.BloodGroup) ([]domain.Profile, error) {
	args := m.Called(ctx, groups)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *ProfileRepository) CountDonors(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}
