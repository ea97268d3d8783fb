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

// applicationTables maps an application type to its table. The map is the
// allow-list: an unknown type never reaches SQL.
var applicationTables = map[models.ApplicationType]string{
	models.ApplicationGuide:      "guide_application",
	models.ApplicationMentor:     "mentor_application",
	models.ApplicationInfluencer: "influencer_application",
}

// ApplicationRepository handles the three application tables plus the
// shared documents table. Every method resolves the table through the
// allow-list first.
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository.
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func applicationTable(t models.ApplicationType) (string, error) {
	table, ok := applicationTables[t]
	if !ok {
		return "", apperrors.NewBadRequestError(fmt.Sprintf("unknown application type %q", t))
	}
	return table, nil
}

const applicationColumns = "id, user_id, motivation, experience, details, status, is_deleted, reviewed_by, review_note, created_at, updated_at"

func scanApplication(row pgx.Row, t models.ApplicationType) (*models.Application, error) {
	a := &models.Application{Type: t}
	err := row.Scan(&a.ID, &a.UserID, &a.Motivation, &a.Experience, &a.Details,
		&a.Status, &a.IsDeleted, &a.ReviewedBy, &a.ReviewNote, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateTx inserts an application inside a caller-owned transaction.
func (r *ApplicationRepository) CreateTx(ctx context.Context, tx pgx.Tx, a *models.Application) error {
	table, err := applicationTable(a.Type)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (user_id, motivation, experience, details, status) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		table)
	err = tx.QueryRow(ctx, query, a.UserID, a.Motivation, a.Experience, a.Details, a.Status).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("error creating %s application: %w", a.Type, err)
	}
	return nil
}

// AddDocumentTx attaches a document row inside the same transaction as the
// application insert.
func (r *ApplicationRepository) AddDocumentTx(ctx context.Context, tx pgx.Tx, d *models.ApplicationDocument) error {
	err := tx.QueryRow(ctx,
		"INSERT INTO application_documents (application_id, application_type, field_name, url) VALUES ($1, $2, $3, $4) RETURNING id",
		d.ApplicationID, d.Type, d.FieldName, d.URL).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("error adding application document: %w", err)
	}
	return nil
}

// GetByID loads one application with its documents.
func (r *ApplicationRepository) GetByID(ctx context.Context, t models.ApplicationType, id int64) (*models.Application, error) {
	table, err := applicationTable(t)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 AND is_deleted = FALSE", applicationColumns, table)
	a, err := scanApplication(r.db.QueryRow(ctx, query, id), t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting %s application: %w", t, err)
	}
	if a.Documents, err = r.listDocuments(ctx, t, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

// GetActiveByUser returns the user's non-deleted application if one exists.
func (r *ApplicationRepository) GetActiveByUser(ctx context.Context, t models.ApplicationType, userID int64) (*models.Application, error) {
	table, err := applicationTable(t)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE user_id = $1 AND is_deleted = FALSE ORDER BY created_at DESC LIMIT 1",
		applicationColumns, table)
	a, err := scanApplication(r.db.QueryRow(ctx, query, userID), t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting %s application by user: %w", t, err)
	}
	if a.Documents, err = r.listDocuments(ctx, t, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns one page of non-deleted applications, optionally filtered
// by status.
func (r *ApplicationRepository) List(ctx context.Context, t models.ApplicationType, status models.ApplicationStatus, limit, offset int) ([]*models.Application, int64, error) {
	table, err := applicationTable(t)
	if err != nil {
		return nil, 0, err
	}

	where := "is_deleted = FALSE"
	args := []interface{}{}
	if status != "" {
		where += " AND status = $1"
		args = append(args, status)
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", table, where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting %s applications: %w", t, err)
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		applicationColumns, table, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing %s applications: %w", t, err)
	}
	defer rows.Close()

	apps := []*models.Application{}
	for rows.Next() {
		a, err := scanApplication(rows, t)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning %s application row: %w", t, err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, a := range apps {
		if a.Documents, err = r.listDocuments(ctx, t, a.ID); err != nil {
			return nil, 0, err
		}
	}
	return apps, total, nil
}

// UpdateStatusTx resolves a pending application inside a caller-owned
// transaction. The WHERE clause enforces the settable-once rule: a request
// that is no longer pending is not touched.
func (r *ApplicationRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, t models.ApplicationType, id int64,
	status models.ApplicationStatus, reviewerID int64, note string) error {
	table, err := applicationTable(t)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(
		`UPDATE %s SET status = $1, reviewed_by = $2, review_note = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5 AND is_deleted = FALSE`, table)
	tag, err := tx.Exec(ctx, query, status, reviewerID, note, id, models.ApplicationPending)
	if err != nil {
		return fmt.Errorf("error updating %s application status: %w", t, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("application is not pending")
	}
	return nil
}

// SoftDelete marks the owner's application deleted.
func (r *ApplicationRepository) SoftDelete(ctx context.Context, t models.ApplicationType, id, userID int64) error {
	table, err := applicationTable(t)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(
		"UPDATE %s SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND user_id = $2 AND is_deleted = FALSE",
		table)
	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("error soft-deleting %s application: %w", t, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) listDocuments(ctx context.Context, t models.ApplicationType, applicationID int64) ([]models.ApplicationDocument, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, application_id, application_type, field_name, url, created_at
		FROM application_documents WHERE application_id = $1 AND application_type = $2 ORDER BY id`,
		applicationID, t)
	if err != nil {
		return nil, fmt.Errorf("error listing application documents: %w", err)
	}
	defer rows.Close()

	docs := []models.ApplicationDocument{}
	for rows.Next() {
		d := models.ApplicationDocument{}
		if err := rows.Scan(&d.ID, &d.ApplicationID, &d.Type, &d.FieldName, &d.URL, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning document row: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
