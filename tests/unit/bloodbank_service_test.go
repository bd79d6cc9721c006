package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/bloodbank"
	"github.com/SAIMANIDEEP29/donor-network/tests/mocks"
)

func TestBloodBankService_UpsertInventory(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	bank := &domain.BloodBank{ID: uuid.New(), UserID: userID, IsVerified: true}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.BloodBankRepository)
		svc := bloodbank.NewService(mockRepo, new(mocks.AuditLogRepository), nil, "docs")

		input := &domain.UpsertInventoryInput{Units: map[domain.BloodGroup]int{
			domain.GroupOPos: 12,
			domain.GroupANeg: 0,
		}}

		mockRepo.On("GetByUserID", ctx, userID).Return(bank, nil).Once()
		mockRepo.On("UpsertInventory", ctx, bank.ID, domain.GroupOPos, 12).Return(nil).Once()
		mockRepo.On("UpsertInventory", ctx, bank.ID, domain.GroupANeg, 0).Return(nil).Once()
		mockRepo.On("ListInventory", ctx, bank.ID).Return([]domain.InventoryItem{
			{BloodBankID: bank.ID, BloodGroup: domain.GroupOPos, UnitsAvailable: 12},
			{BloodBankID: bank.ID, BloodGroup: domain.GroupANeg, UnitsAvailable: 0},
		}, nil).Once()

		inventory, err := svc.UpsertInventory(ctx, userID, input)

		assert.NoError(t, err)
		assert.Len(t, inventory, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Negative Units", func(t *testing.T) {
		mockRepo := new(mocks.BloodBankRepository)
		svc := bloodbank.NewService(mockRepo, new(mocks.AuditLogRepository), nil, "docs")

		input := &domain.UpsertInventoryInput{Units: map[domain.BloodGroup]int{domain.GroupOPos: -1}}

		mockRepo.On("GetByUserID", ctx, userID).Return(bank, nil).Once()

		_, err := svc.UpsertInventory(ctx, userID, input)

		assert.ErrorIs(t, err, bloodbank.ErrNegativeUnits)
		mockRepo.AssertNotCalled(t, "UpsertInventory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid Group", func(t *testing.T) {
		mockRepo := new(mocks.BloodBankRepository)
		svc := bloodbank.NewService(mockRepo, new(mocks.AuditLogRepository), nil, "docs")

		input := &domain.UpsertInventoryInput{Units: map[domain.BloodGroup]int{"H+": 5}}

		mockRepo.On("GetByUserID", ctx, userID).Return(bank, nil).Once()

		_, err := svc.UpsertInventory(ctx, userID, input)

		assert.ErrorIs(t, err, bloodbank.ErrInvalidBloodGroup)
	})

	t.Run("No Bank For User", func(t *testing.T) {
		mockRepo := new(mocks.BloodBankRepository)
		svc := bloodbank.NewService(mockRepo, new(mocks.AuditLogRepository), nil, "docs")

		mockRepo.On("GetByUserID", ctx, userID).Return(nil, nil).Once()

		_, err := svc.UpsertInventory(ctx, userID, &domain.UpsertInventoryInput{})

		assert.ErrorIs(t, err, bloodbank.ErrBloodBankNotFound)
	})
}

func TestBloodBankService_Verify(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()
	bank := &domain.BloodBank{ID: uuid.New(), UserID: uuid.New()}

	mockRepo := new(mocks.BloodBankRepository)
	mockAudit := new(mocks.AuditLogRepository)
	svc := bloodbank.NewService(mockRepo, mockAudit, nil, "docs")

	mockRepo.On("GetByID", ctx, bank.ID).Return(bank, nil).Once()
	mockRepo.On("SetVerified", ctx, bank.ID, true).Return(nil).Once()
	mockAudit.On("Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
		return l.Action == domain.AuditBloodBankVerified && l.UserID == adminID
	})).Return(nil).Once()

	verified, err := svc.Verify(ctx, adminID, bank.ID, true)

	assert.NoError(t, err)
	assert.True(t, verified.IsVerified)
	mockRepo.AssertExpectations(t)
	mockAudit.AssertExpectations(t)
}
