package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendEmailVerification(ctx context.Context, toEmail, name, verificationToken string) error {
	args := m.Called(ctx, toEmail, name, verificationToken)
	return args.Error(0)
}

func (m *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, name, resetToken string) error {
	args := m.Called(ctx, toEmail, name, resetToken)
	return args.Error(0)
}

func (m *EmailService) SendDonorAcceptedEmail(ctx context.Context, toEmail, requesterName, donorName string, donorGroup domain.BloodGroup, patientName string) error {
	args := m.Called(ctx, toEmail, requesterName, donorName, donorGroup, patientName)
	return args.Error(0)
}

func (m *EmailService) SendRequestAlertEmail(ctx context.Context, toEmail, donorName, patientName, hospitalName, city string, group domain.BloodGroup, urgency domain.UrgencyLevel) error {
	args := m.Called(ctx, toEmail, donorName, patientName, hospitalName, city, group, urgency)
	return args.Error(0)
}
