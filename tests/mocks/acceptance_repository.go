package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
)

type AcceptanceRepository struct {
	mock.Mock
}

func (m *AcceptanceRepository) CreateIfRequestActive(ctx context.Context, acc *domain.Acceptance) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *AcceptanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Acceptance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Acceptance), args.Error(1)
}

func (m *AcceptanceRepository) HasActiveAcceptance(ctx context.Context, requestID, donorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, requestID, donorID)
	return args.Bool(0), args.Error(1)
}

func (m *AcceptanceRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Acceptance, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Acceptance), args.Error(1)
}

func (m *AcceptanceRepository) ListByDonor(ctx context.Context, donorID uuid.UUID, params domain.PaginationParams) ([]domain.Acceptance, int64, error) {
	args := m.Called(ctx, donorID, params)
	return args.Get(0).([]domain.Acceptance), args.Get(1).(int64), args.Error(2)
}

func (m *AcceptanceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AcceptanceStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
