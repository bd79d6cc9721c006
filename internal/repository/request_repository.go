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

type RequestRepository interface {
	Create(ctx context.Context, req *domain.BloodRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error)
	List(ctx context.Context, filter domain.RequestListFilter, params domain.PaginationParams) ([]domain.BloodRequest, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, next domain.RequestStatus) error
	CancelWithAcceptances(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error)
}

type requestRepository struct {
	db *sqlx.DB
}

func NewRequestRepository(db *sqlx.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.BloodRequest) error {
	query := `
		INSERT INTO blood_requests (
			id, requester_id, hospital_name, city, district, state,
			patient_name, illness_condition, blood_group, urgency_level,
			status, mobile_number, allow_compatible_groups
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.RequesterID, req.HospitalName, req.City, req.District, req.State,
		req.PatientName, req.IllnessCondition, req.BloodGroup, req.UrgencyLevel,
		req.Status, req.MobileNumber, req.AllowCompatibleGroups,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error) {
	var req domain.BloodRequest
	query := `SELECT * FROM blood_requests WHERE id = $1`

	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) List(ctx context.Context, filter domain.RequestListFilter, params domain.PaginationParams) ([]domain.BloodRequest, int64, error) {
	params.Validate()

	conditions := []string{"1=1"}
	args := []interface{}{}
	i := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", i))
		args = append(args, *filter.Status)
		i++
	}
	if filter.BloodGroup != nil {
		conditions = append(conditions, fmt.Sprintf("blood_group = $%d", i))
		args = append(args, *filter.BloodGroup)
		i++
	}
	if filter.RequesterID != nil {
		conditions = append(conditions, fmt.Sprintf("requester_id = $%d", i))
		args = append(args, *filter.RequesterID)
		i++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM blood_requests WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	// High urgency sorts first, then newest.
	query := fmt.Sprintf(`
		SELECT * FROM blood_requests
		WHERE %s
		ORDER BY
			CASE urgency_level WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END,
			created_at DESC
		LIMIT $%d OFFSET $%d`, where, i, i+1)
	args = append(args, params.PageSize, params.Offset())

	var requests []domain.BloodRequest
	err := r.db.SelectContext(ctx, &requests, query, args...)
	return requests, total, err
}

// UpdateStatus performs the state transition atomically: the row is only
// touched while its current status still permits the transition, so a stale
// caller surfaces ErrInvalidStateTransition instead of clobbering a terminal
// state.
func (r *requestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, next domain.RequestStatus) error {
	query := `
		UPDATE blood_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		  AND CASE status
				WHEN 'open' THEN $2 IN ('accepted', 'fulfilled', 'cancelled')
				WHEN 'accepted' THEN $2 IN ('fulfilled', 'cancelled')
				ELSE false
			  END`

	res, err := r.db.ExecContext(ctx, query, id, next)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrInvalidStateTransition
	}
	return nil
}

// CancelWithAcceptances cancels the request and cascades every outstanding
// acceptance to cancelled in one transaction.
func (r *requestRepository) CancelWithAcceptances(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE blood_requests
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status IN ('open', 'accepted')`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrInvalidStateTransition
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE request_acceptances
		SET status = 'cancelled'
		WHERE request_id = $1 AND status != 'cancelled'`, id)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *requestRepository) CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM blood_requests WHERE status = $1`, status)
	return count, err
}
