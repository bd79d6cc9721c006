package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
)

type RequestRepository struct {
	mock.Mock
}

func (m *RequestRepository) Create(ctx context.Context, req *domain.BloodRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BloodRequest), args.Error(1)
}

func (m *RequestRepository) List(ctx context.Context, filter domain.RequestListFilter, params domain.PaginationParams) ([]domain.BloodRequest, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.BloodRequest), args.Get(1).(int64), args.Error(2)
}

func (m *RequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, next domain.RequestStatus) error {
	args := m.Called(ctx, id, next)
	return args.Error(0)
}

func (m *RequestRepository) CancelWithAcceptances(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RequestRepository) CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}
