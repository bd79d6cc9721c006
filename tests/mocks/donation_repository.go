package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
)

type DonationRepository struct {
	mock.Mock
}

func (m *DonationRepository) Create(ctx context.Context, donation *domain.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *DonationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID, params domain.PaginationParams) ([]domain.Donation, int64, error) {
	args := m.Called(ctx, donorID, params)
	return args.Get(0).([]domain.Donation), args.Get(1).(int64), args.Error(2)
}
