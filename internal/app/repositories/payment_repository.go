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

// PaymentRepository handles payment rows.
type PaymentRepository struct {
	db *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = "id, order_id, user_id, plan, amount, currency, status, gateway_payment_id, subscription_id, created_at, updated_at"

func scanPayment(row pgx.Row) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(&p.ID, &p.OrderID, &p.UserID, &p.Plan, &p.Amount, &p.Currency,
		&p.Status, &p.GatewayPaymentID, &p.SubscriptionID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a pending payment.
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO payments (order_id, user_id, plan, amount, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		p.OrderID, p.UserID, p.Plan, p.Amount, p.Currency, p.Status).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("error creating payment: %w", err)
	}
	return nil
}

// GetByOrderIDForUpdateTx loads and row-locks a payment by its gateway
// order id. Concurrent notifications for the same order serialize here.
func (r *PaymentRepository) GetByOrderIDForUpdateTx(ctx context.Context, tx pgx.Tx, orderID string) (*models.Payment, error) {
	query := fmt.Sprintf("SELECT %s FROM payments WHERE order_id = $1 FOR UPDATE", paymentColumns)
	p, err := scanPayment(tx.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting payment by order id: %w", err)
	}
	return p, nil
}

// UpdateStatusTx writes the reconciled status and gateway payment id.
func (r *PaymentRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, paymentID int64,
	status models.PaymentStatus, gatewayPaymentID string) error {
	_, err := tx.Exec(ctx,
		"UPDATE payments SET status = $1, gateway_payment_id = $2, updated_at = NOW() WHERE id = $3",
		status, gatewayPaymentID, paymentID)
	if err != nil {
		return fmt.Errorf("error updating payment status: %w", err)
	}
	return nil
}

// LinkSubscriptionTx points a completed payment at the subscription it
// spawned.
func (r *PaymentRepository) LinkSubscriptionTx(ctx context.Context, tx pgx.Tx, paymentID, subscriptionID int64) error {
	_, err := tx.Exec(ctx,
		"UPDATE payments SET subscription_id = $1, updated_at = NOW() WHERE id = $2",
		subscriptionID, paymentID)
	if err != nil {
		return fmt.Errorf("error linking payment to subscription: %w", err)
	}
	return nil
}

// ListByUser returns the user's payments newest first.
func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Payment, error) {
	query := fmt.Sprintf("SELECT %s FROM payments WHERE user_id = $1 ORDER BY created_at DESC", paymentColumns)
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing payments: %w", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning payment row: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
