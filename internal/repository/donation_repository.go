package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
)

type DonationRepository interface {
	Create(ctx context.Context, donation *domain.Donation) error
	ListByDonor(ctx context.Context, donorID uuid.UUID, params domain.PaginationParams) ([]domain.Donation, int64, error)
}

type donationRepository struct {
	db *sqlx.DB
}

func NewDonationRepository(db *sqlx.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, donation *domain.Donation) error {
	query := `
		INSERT INTO donations (id, donor_id, request_id, acceptance_id, patient_name, hospital_name, blood_group, donated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		donation.ID, donation.DonorID, donation.RequestID, donation.AcceptanceID,
		donation.PatientName, donation.HospitalName, donation.BloodGroup, donation.DonatedAt,
	).Scan(&donation.CreatedAt)
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID, params domain.PaginationParams) ([]domain.Donation, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM donations WHERE donor_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, donorID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM donations
		WHERE donor_id = $1
		ORDER BY donated_at DESC
		LIMIT $2 OFFSET $3`

	var donations []domain.Donation
	err := r.db.SelectContext(ctx, &donations, query, donorID, params.PageSize, params.Offset())
	return donations, total, err
}
