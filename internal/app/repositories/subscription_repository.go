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

// SubscriptionRepository handles subscription rows and the plan catalog.
type SubscriptionRepository struct {
	db *pgxpool.Pool
}

// NewSubscriptionRepository creates a new SubscriptionRepository.
func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

const subscriptionColumns = "id, user_id, plan, status, start_date, end_date, payment_id, created_at, updated_at"

func scanSubscription(row pgx.Row) (*models.Subscription, error) {
	s := &models.Subscription{}
	err := row.Scan(&s.ID, &s.UserID, &s.Plan, &s.Status, &s.StartDate, &s.EndDate,
		&s.PaymentID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateTx inserts a subscription inside a caller-owned transaction.
func (r *SubscriptionRepository) CreateTx(ctx context.Context, tx pgx.Tx, s *models.Subscription) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO subscriptions (user_id, plan, status, start_date, end_date, payment_id)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		s.UserID, s.Plan, s.Status, s.StartDate, s.EndDate, s.PaymentID).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("error creating subscription: %w", err)
	}
	return nil
}

// GetCurrentByUser returns the user's newest subscription.
func (r *SubscriptionRepository) GetCurrentByUser(ctx context.Context, userID int64) (*models.Subscription, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM subscriptions WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1", subscriptionColumns)
	s, err := scanSubscription(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting current subscription: %w", err)
	}
	return s, nil
}

// ListByUser returns the user's subscriptions newest first.
func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Subscription, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM subscriptions WHERE user_id = $1 ORDER BY created_at DESC", subscriptionColumns)
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []*models.Subscription{}
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning subscription row: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// ListPlans returns the plan catalog cheapest first.
func (r *SubscriptionRepository) ListPlans(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, plan, name, description, price, currency, features, created_at, updated_at
		FROM subscription_plans ORDER BY price ASC`)
	if err != nil {
		return nil, fmt.Errorf("error listing plans: %w", err)
	}
	defer rows.Close()

	plans := []*models.SubscriptionPlan{}
	for rows.Next() {
		p := &models.SubscriptionPlan{}
		if err := rows.Scan(&p.ID, &p.Plan, &p.Name, &p.Description, &p.Price, &p.Currency,
			&p.Features, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning plan row: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// GetPlan loads one catalog row by plan key.
func (r *SubscriptionRepository) GetPlan(ctx context.Context, plan models.Plan) (*models.SubscriptionPlan, error) {
	p := &models.SubscriptionPlan{}
	err := r.db.QueryRow(ctx,
		`SELECT id, plan, name, description, price, currency, features, created_at, updated_at
		FROM subscription_plans WHERE plan = $1`, plan).
		Scan(&p.ID, &p.Plan, &p.Name, &p.Description, &p.Price, &p.Currency,
			&p.Features, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting plan: %w", err)
	}
	return p, nil
}

// UpsertPlan writes one catalog row; used by the seeder.
func (r *SubscriptionRepository) UpsertPlan(ctx context.Context, p *models.SubscriptionPlan) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO subscription_plans (plan, name, description, price, currency, features)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (plan) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			currency = EXCLUDED.currency,
			features = EXCLUDED.features,
			updated_at = NOW()`,
		p.Plan, p.Name, p.Description, p.Price, p.Currency, p.Features)
	if err != nil {
		return fmt.Errorf("error upserting plan: %w", err)
	}
	return nil
}
