package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
)

type Publisher struct {
	mock.Mock
}

func (m *Publisher) PublishNotification(ctx context.Context, notif *domain.Notification) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}
