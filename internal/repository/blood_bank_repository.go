package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
)

type BloodBankRepository interface {
	Create(ctx context.Context, bank *domain.BloodBank) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BloodBank, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.BloodBank, error)
	ListVerified(ctx context.Context, filter domain.BloodBankSearchFilter, params domain.PaginationParams) ([]domain.BloodBank, int64, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	SetLicenseDocURL(ctx context.Context, id uuid.UUID, url string) error
	UpsertInventory(ctx context.Context, bankID uuid.UUID, group domain.BloodGroup, units int) error
	ListInventory(ctx context.Context, bankID uuid.UUID) ([]domain.InventoryItem, error)
}

type bloodBankRepository struct {
	db *sqlx.DB
}

func NewBloodBankRepository(db *sqlx.DB) BloodBankRepository {
	return &bloodBankRepository{db: db}
}

func (r *bloodBankRepository) Create(ctx context.Context, bank *domain.BloodBank) error {
	query := `
		INSERT INTO blood_banks (id, user_id, name, license_number, phone, city, district, state, is_verified, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		bank.ID, bank.UserID, bank.Name, bank.LicenseNumber,
		bank.Phone, bank.City, bank.District, bank.State,
		bank.IsVerified, bank.IsActive,
	).Scan(&bank.CreatedAt, &bank.UpdatedAt)
}

func (r *bloodBankRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BloodBank, error) {
	var bank domain.BloodBank
	query := `SELECT * FROM blood_banks WHERE id = $1`

	err := r.db.GetContext(ctx, &bank, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bank, nil
}

func (r *bloodBankRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.BloodBank, error) {
	var bank domain.BloodBank
	query := `SELECT * FROM blood_banks WHERE user_id = $1`

	err := r.db.GetContext(ctx, &bank, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bank, nil
}

func (r *bloodBankRepository) ListVerified(ctx context.Context, filter domain.BloodBankSearchFilter, params domain.PaginationParams) ([]domain.BloodBank, int64, error) {
	params.Validate()

	conditions := []string{"is_verified = true", "is_active = true"}
	args := []interface{}{}
	i := 1

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
	countQuery := `SELECT COUNT(*) FROM blood_banks WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT * FROM blood_banks
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d`, where, i, i+1)
	args = append(args, params.PageSize, params.Offset())

	var banks []domain.BloodBank
	if err := r.db.SelectContext(ctx, &banks, query, args...); err != nil {
		return nil, 0, err
	}

	for i := range banks {
		inventory, err := r.ListInventory(ctx, banks[i].ID)
		if err != nil {
			return nil, 0, err
		}
		banks[i].Inventory = inventory
	}

	return banks, total, nil
}

func (r *bloodBankRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	query := `UPDATE blood_banks SET is_verified = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, verified)
	return err
}

func (r *bloodBankRepository) SetLicenseDocURL(ctx context.Context, id uuid.UUID, url string) error {
	query := `UPDATE blood_banks SET license_doc_url = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, url)
	return err
}

func (r *bloodBankRepository) UpsertInventory(ctx context.Context, bankID uuid.UUID, group domain.BloodGroup, units int) error {
	query := `
		INSERT INTO blood_inventory (id, blood_bank_id, blood_group, units_available)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (blood_bank_id, blood_group)
		DO UPDATE SET units_available = EXCLUDED.units_available, updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query, uuid.New(), bankID, group, units)
	return err
}

func (r *bloodBankRepository) ListInventory(ctx context.Context, bankID uuid.UUID) ([]domain.InventoryItem, error) {
	query := `
		SELECT * FROM blood_inventory
		WHERE blood_bank_id = $1
		ORDER BY blood_group ASC`

	var items []domain.InventoryItem
	err := r.db.SelectContext(ctx, &items, query, bankID)
	return items, err
}
