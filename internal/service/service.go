package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"github.com/SAIMANIDEEP29/donor-network/internal/config"
	"github.com/SAIMANIDEEP29/donor-network/internal/metrics"
	"github.com/SAIMANIDEEP29/donor-network/internal/repository"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/admin"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/auth"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/bloodbank"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/donation"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/email"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/notification"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/profile"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/realtime"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/request"
)

// Services bundles every application service behind one constructor so the
// composition root stays small.
type Services struct {
	Auth         auth.Service
	Profile      profile.Service
	Request      request.Service
	Notification notification.Service
	Realtime     realtime.Service
	BloodBank    bloodbank.Service
	Donation     donation.Service
	Admin        admin.Service
	Email        email.Service
}

func NewServices(
	repos *repository.Repositories,
	redisClient *redis.Client,
	minioClient *minio.Client,
	cfg *config.Config,
) *Services {
	m := metrics.New()

	emailSvc := email.NewService(cfg)
	realtimeSvc := realtime.NewService(redisClient)
	notificationSvc := notification.NewService(
		repos.Notification, repos.Profile, repos.User, emailSvc, realtimeSvc, m,
	)

	return &Services{
		Auth:         auth.NewService(repos.User, repos.Profile, repos.BloodBank, repos.Session, emailSvc, cfg),
		Profile:      profile.NewService(repos.Profile, repos.AuditLog),
		Request:      request.NewService(repos.Request, repos.Acceptance, repos.Profile, repos.Donation, repos.AuditLog, notificationSvc, redisClient, m),
		Notification: notificationSvc,
		Realtime:     realtimeSvc,
		BloodBank:    bloodbank.NewService(repos.BloodBank, repos.AuditLog, minioClient, cfg.MinIOBucket),
		Donation:     donation.NewService(repos.Donation),
		Admin:        admin.NewService(repos.User, repos.Profile, repos.Request, repos.AuditLog, redisClient),
		Email:        emailSvc,
	}
}
