package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/pkg/apperrors"
	"github.com/stellarion/backend/internal/pkg/logger"
)

// isDuplicateKeyError checks for a PostgreSQL unique violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

const userColumns = `id, auth_uid, email, first_name, last_name, role, is_active,
	profile, role_data, plan, subscription_status, subscription_start, subscription_end,
	chatbot_questions_used, chatbot_questions_reset_date, last_activity_at, created_at, updated_at`

// UserRepository handles account rows.
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.AuthUID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.IsActive,
		&u.Profile, &u.RoleData, &u.Plan, &u.SubscriptionStatus, &u.SubscriptionStart, &u.SubscriptionEnd,
		&u.ChatbotQuestionsUsed, &u.ChatbotQuestionsResetDate, &u.LastActivityAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a new account and returns its id.
func (r *UserRepository) Create(ctx context.Context, u *models.User) (int64, error) {
	query := `INSERT INTO users (auth_uid, email, first_name, last_name, role, is_active,
		profile, role_data, plan, subscription_status, chatbot_questions_used, chatbot_questions_reset_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		u.AuthUID, u.Email, u.FirstName, u.LastName, u.Role, u.IsActive,
		u.Profile, u.RoleData, u.Plan, u.SubscriptionStatus,
		u.ChatbotQuestionsUsed, u.ChatbotQuestionsResetDate,
	).Scan(&id)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrEmailExists
		}
		logger.Error().Err(err).Msg("Error creating user")
		return 0, fmt.Errorf("error creating user: %w", err)
	}
	return id, nil
}

// GetByAuthUID loads an account by its identity subject id.
func (r *UserRepository) GetByAuthUID(ctx context.Context, authUID string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE auth_uid = $1", userColumns)
	u, err := scanUser(r.db.QueryRow(ctx, query, authUID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting user by auth uid: %w", err)
	}
	return u, nil
}

// GetByID loads an account by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting user by id: %w", err)
	}
	return u, nil
}

// GetByEmail loads an account by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userColumns)
	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}
	return u, nil
}

// List returns one page of accounts ordered by creation time.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2", userColumns)
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// UpdateProfile updates names and the two profile blobs.
func (r *UserRepository) UpdateProfile(ctx context.Context, u *models.User) error {
	query := `UPDATE users SET first_name = $1, last_name = $2, profile = $3, role_data = $4,
		updated_at = NOW() WHERE id = $5`
	tag, err := r.db.Exec(ctx, query, u.FirstName, u.LastName, u.Profile, u.RoleData, u.ID)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateRole sets an account's role.
func (r *UserRepository) UpdateRole(ctx context.Context, userID int64, role models.Role) error {
	tag, err := r.db.Exec(ctx, "UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2", role, userID)
	if err != nil {
		return fmt.Errorf("error updating role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateRoleTx sets an account's role inside a caller-owned transaction.
func (r *UserRepository) UpdateRoleTx(ctx context.Context, tx pgx.Tx, userID int64, role models.Role) error {
	tag, err := tx.Exec(ctx, "UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2", role, userID)
	if err != nil {
		return fmt.Errorf("error updating role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetActive toggles an account's active flag.
func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	tag, err := r.db.Exec(ctx, "UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2", active, userID)
	if err != nil {
		return fmt.Errorf("error setting active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// TouchLastActivity bumps the activity timestamp. Best effort; callers
// ignore the returned error after logging it.
func (r *UserRepository) TouchLastActivity(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET last_activity_at = NOW() WHERE id = $1", userID)
	return err
}

// UpdateChatbotUsage stores the counter and its reset date.
func (r *UserRepository) UpdateChatbotUsage(ctx context.Context, userID int64, used int, resetDate string) error {
	_, err := r.db.Exec(ctx,
		"UPDATE users SET chatbot_questions_used = $1, chatbot_questions_reset_date = $2, updated_at = NOW() WHERE id = $3",
		used, resetDate, userID)
	if err != nil {
		return fmt.Errorf("error updating chatbot usage: %w", err)
	}
	return nil
}

// UpdateSubscriptionTx rewrites the account's entitlement fields and resets
// the chatbot quota inside a caller-owned transaction.
func (r *UserRepository) UpdateSubscriptionTx(ctx context.Context, tx pgx.Tx, userID int64,
	plan models.Plan, status models.SubscriptionStatus, start time.Time, end *time.Time, resetDate string) error {
	query := `UPDATE users SET plan = $1, subscription_status = $2, subscription_start = $3,
		subscription_end = $4, chatbot_questions_used = 0, chatbot_questions_reset_date = $5,
		updated_at = NOW() WHERE id = $6`
	tag, err := tx.Exec(ctx, query, plan, status, start, end, resetDate, userID)
	if err != nil {
		return fmt.Errorf("error updating subscription fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an account. Dependent rows go with it via ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", userID)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
