package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
)

type BloodBankRepository struct {
	mock.Mock
}

func (m *BloodBankRepository) Create(ctx context.Context, bank *domain.BloodBank) error {
	args := m.Called(ctx, bank)
	return args.Error(0)
}

func (m *BloodBankRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BloodBank, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BloodBank), args.Error(1)
}

func (m *BloodBankRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.BloodBank, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BloodBank), args.Error(1)
}

func (m *BloodBankRepository) ListVerified(ctx context.Context, filter domain.BloodBankSearchFilter, params domain.PaginationParams) ([]domain.BloodBank, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.BloodBank), args.Get(1).(int64), args.Error(2)
}

func (m *BloodBankRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	args := m.Called(ctx, id, verified)
	return args.Error(0)
}

func (m *BloodBankRepository) SetLicenseDocURL(ctx context.Context, id uuid.UUID, url string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}

func (m *BloodBankRepository) UpsertInventory(ctx context.Context, bankID uuid.UUID, group domain.BloodGroup, units int) error {
	args := m.Called(ctx, bankID, group, units)
	return args.Error(0)
}

func (m *BloodBankRepository) ListInventory(ctx context.Context, bankID uuid.UUID) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, bankID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}
