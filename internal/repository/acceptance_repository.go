package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
)

// pgUniqueViolation is the Postgres error code raised by the partial unique
// index on (request_id, donor_id) for non-cancelled acceptances.
const pgUniqueViolation = "23505"

type AcceptanceRepository interface {
	CreateIfRequestActive(ctx context.Context, acc *domain.Acceptance) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Acceptance, error)
	HasActiveAcceptance(ctx context.Context, requestID, donorID uuid.UUID) (bool, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Acceptance, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID, params domain.PaginationParams) ([]domain.Acceptance, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AcceptanceStatus) error
}

type acceptanceRepository struct {
	db *sqlx.DB
}

func NewAcceptanceRepository(db *sqlx.DB) AcceptanceRepository {
	return &acceptanceRepository{db: db}
}

// CreateIfRequestActive inserts the acceptance only while the request is
// still in a non-terminal state. The eligibility gate's pre-checks run
// against a possibly stale snapshot; this conditional insert plus the unique
// index is the authoritative re-validation. Returns
// domain.ErrInvalidStateTransition when the request has reached a terminal
// state and domain.ErrAlreadyAccepted on a duplicate active acceptance.
func (r *acceptanceRepository) CreateIfRequestActive(ctx context.Context, acc *domain.Acceptance) error {
	query := `
		INSERT INTO request_acceptances (id, request_id, donor_id, status)
		SELECT $1, $2, $3, $4
		WHERE EXISTS (
			SELECT 1 FROM blood_requests
			WHERE id = $2 AND status IN ('open', 'accepted')
		)
		RETURNING accepted_at`

	err := r.db.QueryRowxContext(ctx, query,
		acc.ID, acc.RequestID, acc.DonorID, acc.Status,
	).Scan(&acc.AcceptedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrInvalidStateTransition
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return domain.ErrAlreadyAccepted
	}

	return err
}

func (r *acceptanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Acceptance, error) {
	var acc domain.Acceptance
	query := `SELECT * FROM request_acceptances WHERE id = $1`

	err := r.db.GetContext(ctx, &acc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *acceptanceRepository) HasActiveAcceptance(ctx context.Context, requestID, donorID uuid.UUID) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM request_acceptances
			WHERE request_id = $1 AND donor_id = $2 AND status != 'cancelled'
		)`
	err := r.db.GetContext(ctx, &exists, query, requestID, donorID)
	return exists, err
}

func (r *acceptanceRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Acceptance, error) {
	query := `
		SELECT
			a.id, a.request_id, a.donor_id, a.status, a.accepted_at
		FROM request_acceptances a
		WHERE a.request_id = $1
		ORDER BY a.accepted_at ASC`

	var acceptances []domain.Acceptance
	if err := r.db.SelectContext(ctx, &acceptances, query, requestID); err != nil {
		return nil, err
	}

	// Attach donor contact details for the requester's view.
	for i := range acceptances {
		var donor domain.Profile
		err := r.db.GetContext(ctx, &donor, `SELECT * FROM profiles WHERE id = $1`, acceptances[i].DonorID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		if err == nil {
			acceptances[i].Donor = &donor
		}
	}

	return acceptances, nil
}

func (r *acceptanceRepository) ListByDonor(ctx context.Context, donorID uuid.UUID, params domain.PaginationParams) ([]domain.Acceptance, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM request_acceptances WHERE donor_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, donorID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM request_acceptances
		WHERE donor_id = $1
		ORDER BY accepted_at DESC
		LIMIT $2 OFFSET $3`

	var acceptances []domain.Acceptance
	err := r.db.SelectContext(ctx, &acceptances, query, donorID, params.PageSize, params.Offset())
	return acceptances, total, err
}

func (r *acceptanceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AcceptanceStatus) error {
	query := `UPDATE request_acceptances SET status = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}
