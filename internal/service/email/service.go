package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/resend/resend-go/v3"

	"github.com/SAIMANIDEEP29/donor-network/internal/config"
	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
)

type Service interface {
	SendEmailVerification(ctx context.Context, toEmail, name, verificationToken string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, name, resetToken string) error
	SendDonorAcceptedEmail(ctx context.Context, toEmail, requesterName, donorName string, donorGroup domain.BloodGroup, patientName string) error
	SendRequestAlertEmail(ctx context.Context, toEmail, donorName, patientName, hospitalName, city string, group domain.BloodGroup, urgency domain.UrgencyLevel) error
}

type service struct {
	client       *resend.Client
	config       *config.Config
	templatePath string
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	templatePath := "internal/service/templates/email"
	return &service{
		client:       client,
		config:       cfg,
		templatePath: templatePath,
	}
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	tmpl, err := template.ParseFiles(
		filepath.Join(s.templatePath, "layout.html"),
		filepath.Join(s.templatePath, templateName),
	)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Donor Network <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendEmailVerification(ctx context.Context, toEmail, name, verificationToken string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Verify your email",
		Name:  name,
		Link:  fmt.Sprintf("https://%s/verify-email?token=%s", s.config.Domain, verificationToken),
	}
	return s.sendEmail(toEmail, "Verify your email - Donor Network", "verification.html", data)
}

func (s *service) SendPasswordResetEmail(ctx context.Context, toEmail, name, resetToken string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Reset your password",
		Name:  name,
		Link:  fmt.Sprintf("https://%s/reset-password?token=%s", s.config.Domain, resetToken),
	}
	return s.sendEmail(toEmail, "Reset your password - Donor Network", "password_reset.html", data)
}

func (s *service) SendDonorAcceptedEmail(ctx context.Context, toEmail, requesterName, donorName string, donorGroup domain.BloodGroup, patientName string) error {
	data := struct {
		Title       string
		Name        string
		DonorName   string
		DonorGroup  string
		PatientName string
		Link        string
	}{
		Title:       "A donor accepted your request",
		Name:        requesterName,
		DonorName:   donorName,
		DonorGroup:  string(donorGroup),
		PatientName: patientName,
		Link:        fmt.Sprintf("https://%s/requests", s.config.Domain),
	}
	return s.sendEmail(toEmail, "A donor accepted your blood request", "donor_accepted.html", data)
}

func (s *service) SendRequestAlertEmail(ctx context.Context, toEmail, donorName, patientName, hospitalName, city string, group domain.BloodGroup, urgency domain.UrgencyLevel) error {
	data := struct {
		Title        string
		Name         string
		PatientName  string
		HospitalName string
		City         string
		BloodGroup   string
		Urgency      string
		Link         string
	}{
		Title:        "Blood needed near you",
		Name:         donorName,
		PatientName:  patientName,
		HospitalName: hospitalName,
		City:         city,
		BloodGroup:   string(group),
		Urgency:      string(urgency),
		Link:         fmt.Sprintf("https://%s/requests", s.config.Domain),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("%s blood needed at %s", group, hospitalName), "request_alert.html", data)
}
