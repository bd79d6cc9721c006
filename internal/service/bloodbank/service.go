package bloodbank

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
	"github.com/SAIMANIDEEP29/donor-network/internal/repository"
)

var (
	ErrBloodBankNotFound = errors.New("blood bank not found")
	ErrInvalidBloodGroup = errors.New("invalid blood group")
	ErrNegativeUnits     = errors.New("inventory units cannot be negative")
	ErrInvalidFileType   = errors.New("license document must be a PDF or image")
)

const licenseDocExpiry = 24 * time.Hour

var allowedDocTypes = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BloodBank, error)
	GetMine(ctx context.Context, userID uuid.UUID) (*domain.BloodBank, error)
	ListVerified(ctx context.Context, filter domain.BloodBankSearchFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.BloodBank], error)
	UpsertInventory(ctx context.Context, userID uuid.UUID, input *domain.UpsertInventoryInput) ([]domain.InventoryItem, error)
	UploadLicenseDoc(ctx context.Context, userID uuid.UUID, filename string, size int64, reader io.Reader) (string, error)
	LicenseDocURL(ctx context.Context, bankID uuid.UUID) (string, error)
	Verify(ctx context.Context, adminID, bankID uuid.UUID, verified bool) (*domain.BloodBank, error)
}

type service struct {
	bankRepo  repository.BloodBankRepository
	auditRepo repository.AuditLogRepository
	minio     *minio.Client
	bucket    string
}

func NewService(bankRepo repository.BloodBankRepository, auditRepo repository.AuditLogRepository, minioClient *minio.Client, bucket string) Service {
	return &service{
		bankRepo:  bankRepo,
		auditRepo: auditRepo,
		minio:     minioClient,
		bucket:    bucket,
	}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.BloodBank, error) {
	bank, err := s.bankRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, ErrBloodBankNotFound
	}

	bank.Inventory, err = s.bankRepo.ListInventory(ctx, bank.ID)
	if err != nil {
		return nil, err
	}

	return bank, nil
}

func (s *service) GetMine(ctx context.Context, userID uuid.UUID) (*domain.BloodBank, error) {
	bank, err := s.bankRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, ErrBloodBankNotFound
	}

	bank.Inventory, err = s.bankRepo.ListInventory(ctx, bank.ID)
	if err != nil {
		return nil, err
	}

	return bank, nil
}

func (s *service) ListVerified(ctx context.Context, filter domain.BloodBankSearchFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.BloodBank], error) {
	banks, total, err := s.bankRepo.ListVerified(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.BloodBank]{}, err
	}

	return domain.NewPaginatedResponse(banks, params.Page, params.PageSize, total), nil
}

func (s *service) UpsertInventory(ctx context.Context, userID uuid.UUID, input *domain.UpsertInventoryInput) ([]domain.InventoryItem, error) {
	bank, err := s.bankRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, ErrBloodBankNotFound
	}

	for group, units := range input.Units {
		if !group.IsValid() {
			return nil, ErrInvalidBloodGroup
		}
		if units < 0 {
			return nil, ErrNegativeUnits
		}
	}

	for group, units := range input.Units {
		if err := s.bankRepo.UpsertInventory(ctx, bank.ID, group, units); err != nil {
			return nil, fmt.Errorf("failed to update inventory for %s: %w", group, err)
		}
	}

	return s.bankRepo.ListInventory(ctx, bank.ID)
}

// UploadLicenseDoc stores the license document in a private bucket and keeps
// only the object key on the record. Reads go through presigned URLs.
func (s *service) UploadLicenseDoc(ctx context.Context, userID uuid.UUID, filename string, size int64, reader io.Reader) (string, error) {
	bank, err := s.bankRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if bank == nil {
		return "", ErrBloodBankNotFound
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedDocTypes[ext] {
		return "", ErrInvalidFileType
	}

	objectKey := fmt.Sprintf("licenses/%s/%s%s", bank.ID, uuid.New(), ext)
	_, err = s.minio.PutObject(ctx, s.bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentTypeFor(ext),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload license document: %w", err)
	}

	if err := s.bankRepo.SetLicenseDocURL(ctx, bank.ID, objectKey); err != nil {
		return "", err
	}

	return objectKey, nil
}

// LicenseDocURL returns a time-limited presigned URL for the bank's license
// document.
func (s *service) LicenseDocURL(ctx context.Context, bankID uuid.UUID) (string, error) {
	bank, err := s.bankRepo.GetByID(ctx, bankID)
	if err != nil {
		return "", err
	}
	if bank == nil || bank.LicenseDocURL == nil {
		return "", ErrBloodBankNotFound
	}

	presigned, err := s.minio.PresignedGetObject(ctx, s.bucket, *bank.LicenseDocURL, licenseDocExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign license document: %w", err)
	}

	return presigned.String(), nil
}

func (s *service) Verify(ctx context.Context, adminID, bankID uuid.UUID, verified bool) (*domain.BloodBank, error) {
	bank, err := s.bankRepo.GetByID(ctx, bankID)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, ErrBloodBankNotFound
	}

	if err := s.bankRepo.SetVerified(ctx, bankID, verified); err != nil {
		return nil, err
	}
	bank.IsVerified = verified

	entry := &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     adminID,
		Action:     domain.AuditBloodBankVerified,
		EntityType: "blood_bank",
		EntityID:   bankID,
	}
	_ = s.auditRepo.Create(ctx, entry)

	return bank, nil
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}
