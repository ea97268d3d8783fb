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

// SettingsRepository handles the one-to-one preference rows.
type SettingsRepository struct {
	db *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get loads the settings row for an account.
func (r *SettingsRepository) Get(ctx context.Context, userID int64) (*models.UserSettings, error) {
	s := &models.UserSettings{}
	err := r.db.QueryRow(ctx,
		`SELECT user_id, email_notifications, push_notifications, profile_visibility, theme, language,
			created_at, updated_at
		FROM user_settings WHERE user_id = $1`, userID).
		Scan(&s.UserID, &s.EmailNotifications, &s.PushNotifications, &s.ProfileVisibility,
			&s.Theme, &s.Language, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting settings: %w", err)
	}
	return s, nil
}

// Upsert writes the full settings row, inserting it when absent.
func (r *SettingsRepository) Upsert(ctx context.Context, s *models.UserSettings) error {
	query := `INSERT INTO user_settings (user_id, email_notifications, push_notifications,
			profile_visibility, theme, language)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			email_notifications = EXCLUDED.email_notifications,
			push_notifications = EXCLUDED.push_notifications,
			profile_visibility = EXCLUDED.profile_visibility,
			theme = EXCLUDED.theme,
			language = EXCLUDED.language,
			updated_at = NOW()`
	_, err := r.db.Exec(ctx, query, s.UserID, s.EmailNotifications, s.PushNotifications,
		s.ProfileVisibility, s.Theme, s.Language)
	if err != nil {
		return fmt.Errorf("error upserting settings: %w", err)
	}
	return nil
}
