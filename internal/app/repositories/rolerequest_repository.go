package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/pkg/apperrors"
)

// RoleRequestRepository handles role-upgrade request rows.
type RoleRequestRepository struct {
	db *pgxpool.Pool
}

// NewRoleRequestRepository creates a new RoleRequestRepository.
func NewRoleRequestRepository(db *pgxpool.Pool) *RoleRequestRepository {
	return &RoleRequestRepository{db: db}
}

const roleRequestColumns = "id, user_id, from_role, requested_role, reason, status, reviewer_id, review_note, created_at, updated_at"

func scanRoleRequest(row pgx.Row) (*models.RoleUpgradeRequest, error) {
	rr := &models.RoleUpgradeRequest{}
	err := row.Scan(&rr.ID, &rr.UserID, &rr.CurrentRole, &rr.RequestedRole, &rr.Reason,
		&rr.Status, &rr.ReviewerID, &rr.ReviewNote, &rr.CreatedAt, &rr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rr, nil
}

// Create inserts a pending request. The partial unique index on
// (user_id, requested_role) WHERE status = 'pending' turns a second
// pending request into a conflict.
func (r *RoleRequestRepository) Create(ctx context.Context, rr *models.RoleUpgradeRequest) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO role_upgrade_requests (user_id, from_role, requested_role, reason, status)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		rr.UserID, rr.CurrentRole, rr.RequestedRole, rr.Reason, rr.Status).Scan(&rr.ID)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.NewConflictError("a pending request for this role already exists")
		}
		return fmt.Errorf("error creating role upgrade request: %w", err)
	}
	return nil
}

// GetByID loads one request.
func (r *RoleRequestRepository) GetByID(ctx context.Context, id int64) (*models.RoleUpgradeRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM role_upgrade_requests WHERE id = $1", roleRequestColumns)
	rr, err := scanRoleRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting role upgrade request: %w", err)
	}
	return rr, nil
}

// ListByUser returns the user's requests newest first.
func (r *RoleRequestRepository) ListByUser(ctx context.Context, userID int64) ([]*models.RoleUpgradeRequest, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM role_upgrade_requests WHERE user_id = $1 ORDER BY created_at DESC", roleRequestColumns)
	return r.queryRequests(ctx, query, userID)
}

// List returns one page of requests, optionally filtered by status.
func (r *RoleRequestRepository) List(ctx context.Context, status models.RoleUpgradeRequestStatus, limit, offset int) ([]*models.RoleUpgradeRequest, int64, error) {
	where := "TRUE"
	args := []interface{}{}
	if status != "" {
		where = "status = $1"
		args = append(args, status)
	}

	var total int64
	if err := r.db.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM role_upgrade_requests WHERE %s", where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting role upgrade requests: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM role_upgrade_requests WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		roleRequestColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	reqs, err := r.queryRequests(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

func (r *RoleRequestRepository) queryRequests(ctx context.Context, query string, args ...interface{}) ([]*models.RoleUpgradeRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing role upgrade requests: %w", err)
	}
	defer rows.Close()

	reqs := []*models.RoleUpgradeRequest{}
	for rows.Next() {
		rr, err := scanRoleRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning role upgrade request row: %w", err)
		}
		reqs = append(reqs, rr)
	}
	return reqs, rows.Err()
}

// ResolveTx resolves a pending request inside a caller-owned transaction.
// The WHERE clause enforces settable-once.
func (r *RoleRequestRepository) ResolveTx(ctx context.Context, tx pgx.Tx, id int64,
	status models.RoleUpgradeRequestStatus, reviewerID int64, note string) error {
	tag, err := tx.Exec(ctx,
		`UPDATE role_upgrade_requests SET status = $1, reviewer_id = $2, review_note = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5`,
		status, reviewerID, note, id, models.UpgradePending)
	if err != nil {
		return fmt.Errorf("error resolving role upgrade request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("request is not pending")
	}
	return nil
}
