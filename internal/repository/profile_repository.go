package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	SetAvailability(ctx context.Context, id uuid.UUID, isAvailable bool) error
	SetLastDonationDate(ctx context.Context, id uuid.UUID, donatedAt time.Time) error
	SearchDonors(ctx context.Context, filter domain.DonorSearchFilter, params domain.PaginationParams) ([]domain.Profile, int64, error)
	ListWillingByGroups(ctx context.Context, groups []domain.BloodGroup) ([]domain.Profile, error)
	CountDonors(ctx context.Context) (total, activeDonors int64, err error)
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, name, phone, blood_group, city, district, state, willing_to_donate, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		profile.ID, profile.Name, profile.Phone, profile.BloodGroup,
		profile.City, profile.District, profile.State,
		profile.WillingToDonate, profile.IsAvailable,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT * FROM profiles WHERE id = $1`

	err := r.db.GetContext(ctx, &profile, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET name = :name, phone = :phone, blood_group = :blood_group,
			city = :city, district = :district, state = :state,
			willing_to_donate = :willing_to_donate, is_available = :is_available,
			updated_at = NOW()
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, profile)
	return err
}

func (r *profileRepository) SetAvailability(ctx context.Context, id uuid.UUID, isAvailable bool) error {
	query := `UPDATE profiles SET is_available = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, isAvailable)
	return err
}

func (r *profileRepository) SetLastDonationDate(ctx context.Context, id uuid.UUID, donatedAt time.Time) error {
	query := `UPDATE profiles SET last_donation_date = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, donatedAt)
	return err
}

// SearchDonors returns willing donors matching the filter. Profiles with
// willing_to_donate=false never appear in the directory.
func (r *profileRepository) SearchDonors(ctx context.Context, filter domain.DonorSearchFilter, params domain.PaginationParams) ([]domain.Profile, int64, error) {
	params.Validate()

	conditions := []string{"willing_to_donate = true"}
	args := []interface{}{}
	i := 1

	if filter.BloodGroup != nil {
		conditions = append(conditions, fmt.Sprintf("blood_group = $%d", i))
		args = append(args, *filter.BloodGroup)
		i++
	}
	if filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("city ILIKE $%d", i))
		args = append(args, "%"+filter.City+"%")
		i++
	}
	if filter.District != "" {
		conditions = append(conditions, fmt.Sprintf("district ILIKE $%d", i))
		args = append(args, "%"+filter.District+"%")
		i++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM profiles WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT * FROM profiles
		WHERE %s
		ORDER BY is_available DESC, updated_at DESC
		LIMIT $%d OFFSET $%d`, where, i, i+1)
	args = append(args, params.PageSize, params.Offset())

	var profiles []domain.Profile
	err := r.db.SelectContext(ctx, &profiles, query, args...)
	return profiles, total, err
}

// ListWillingByGroups returns willing, available donors whose blood group is
// in the given set. Used for request_created fan-out.
func (r *profileRepository) ListWillingByGroups(ctx context.Context, groups []domain.BloodGroup) ([]domain.Profile, error) {
	groupStrs := make([]string, len(groups))
	for i, g := range groups {
		groupStrs[i] = string(g)
	}

	query := `
		SELECT * FROM profiles
		WHERE willing_to_donate = true
		  AND is_available = true
		  AND blood_group = ANY($1)`

	var profiles []domain.Profile
	err := r.db.SelectContext(ctx, &profiles, query, pq.Array(groupStrs))
	return profiles, err
}

func (r *profileRepository) CountDonors(ctx context.Context) (int64, int64, error) {
	var total, active int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM profiles`); err != nil {
		return 0, 0, err
	}
	err := r.db.GetContext(ctx, &active,
		`SELECT COUNT(*) FROM profiles WHERE willing_to_donate = true AND is_available = true`)
	return total, active, err
}
