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

// NightCampRepository handles camp rows and their three child tables.
type NightCampRepository struct {
	db *pgxpool.Pool
}

// NewNightCampRepository creates a new NightCampRepository.
func NewNightCampRepository(db *pgxpool.Pool) *NightCampRepository {
	return &NightCampRepository{db: db}
}

const nightCampColumns = "id, organizer_id, name, description, location, date, time, image_url, sponsored_by, number_of_guides, status, created_at, updated_at"

func scanNightCamp(row pgx.Row) (*models.NightCamp, error) {
	c := &models.NightCamp{}
	err := row.Scan(&c.ID, &c.OrganizerID, &c.Name, &c.Description, &c.Location, &c.Date, &c.Time,
		&c.ImageURL, &c.SponsoredBy, &c.NumberOfGuides, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateTx inserts the parent row inside a caller-owned transaction.
func (r *NightCampRepository) CreateTx(ctx context.Context, tx pgx.Tx, c *models.NightCamp) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO night_camps (organizer_id, name, description, location, date, time, image_url,
			sponsored_by, number_of_guides, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		c.OrganizerID, c.Name, c.Description, c.Location, c.Date, c.Time, c.ImageURL,
		c.SponsoredBy, c.NumberOfGuides, c.Status).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("error creating night camp: %w", err)
	}
	return nil
}

// UpdateTx rewrites the parent row inside a caller-owned transaction.
func (r *NightCampRepository) UpdateTx(ctx context.Context, tx pgx.Tx, c *models.NightCamp) error {
	tag, err := tx.Exec(ctx,
		`UPDATE night_camps SET name = $1, description = $2, location = $3, date = $4, time = $5,
			image_url = $6, sponsored_by = $7, number_of_guides = $8, status = $9, updated_at = NOW()
		WHERE id = $10`,
		c.Name, c.Description, c.Location, c.Date, c.Time, c.ImageURL, c.SponsoredBy,
		c.NumberOfGuides, c.Status, c.ID)
	if err != nil {
		return fmt.Errorf("error updating night camp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplaceChildrenTx deletes and reinserts one child collection inside a
// caller-owned transaction. The table must come from
// models.NightCampChildTables.
func (r *NightCampRepository) ReplaceChildrenTx(ctx context.Context, tx pgx.Tx, table string, campID int64, values []string) error {
	valid := false
	for _, t := range models.NightCampChildTables {
		if t == table {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown night camp child table %q", table)
	}

	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE camp_id = $1", table), campID); err != nil {
		return fmt.Errorf("error clearing %s: %w", table, err)
	}
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, err := tx.Exec(ctx,
			fmt.Sprintf("INSERT INTO %s (camp_id, name) VALUES ($1, $2)", table), campID, v); err != nil {
			return fmt.Errorf("error inserting into %s: %w", table, err)
		}
	}
	return nil
}

// GetByID loads a camp with all three child collections.
func (r *NightCampRepository) GetByID(ctx context.Context, id int64) (*models.NightCamp, error) {
	query := fmt.Sprintf("SELECT %s FROM night_camps WHERE id = $1", nightCampColumns)
	c, err := scanNightCamp(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting night camp: %w", err)
	}
	if err := r.loadChildren(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns one page of camps newest first, children included.
func (r *NightCampRepository) List(ctx context.Context, limit, offset int) ([]*models.NightCamp, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM night_camps").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting night camps: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM night_camps ORDER BY date DESC, id DESC LIMIT $1 OFFSET $2", nightCampColumns)
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing night camps: %w", err)
	}
	defer rows.Close()

	camps := []*models.NightCamp{}
	for rows.Next() {
		c, err := scanNightCamp(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning night camp row: %w", err)
		}
		camps = append(camps, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, c := range camps {
		if err := r.loadChildren(ctx, c); err != nil {
			return nil, 0, err
		}
	}
	return camps, total, nil
}

// Delete removes a camp; child rows cascade.
func (r *NightCampRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM night_camps WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error deleting night camp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NightCampRepository) loadChildren(ctx context.Context, c *models.NightCamp) error {
	var err error
	if c.Activities, err = r.childNames(ctx, "night_camp_activities", c.ID); err != nil {
		return err
	}
	if c.Equipment, err = r.childNames(ctx, "night_camp_equipment", c.ID); err != nil {
		return err
	}
	c.VolunteeringRoles, err = r.childNames(ctx, "night_camp_volunteering", c.ID)
	return err
}

func (r *NightCampRepository) childNames(ctx context.Context, table string, campID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		fmt.Sprintf("SELECT name FROM %s WHERE camp_id = $1 ORDER BY id", table), campID)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", table, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("error scanning %s row: %w", table, err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
