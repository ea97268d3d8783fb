package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/app/repositories"
	"github.com/stellarion/backend/internal/config"
	"github.com/stellarion/backend/internal/db"
	"github.com/stellarion/backend/internal/pkg/apperrors"
	"github.com/stellarion/backend/internal/pkg/helpers"
	"github.com/stellarion/backend/internal/pkg/payhere"
)

// PaymentService defines the interface for checkout initiation and the
// gateway notification webhook.
type PaymentService interface {
	InitiateCheckout(ctx context.Context, user *models.User, plan string) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, n payhere.Notification) error
	History(ctx context.Context, userID int64) ([]dto.PaymentResponse, error)
}

type paymentServiceImpl struct {
	database  *db.PostgresDB
	payments  *repositories.PaymentRepository
	subs      *repositories.SubscriptionRepository
	users     *repositories.UserRepository
	verifier  *payhere.Verifier
	payConfig config.Config
	logger    zerolog.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	database *db.PostgresDB,
	repos *repositories.Repositories,
	verifier *payhere.Verifier,
	cfg *config.Config,
	logger zerolog.Logger,
) PaymentService {
	return &paymentServiceImpl{
		database:  database,
		payments:  repos.Payments,
		subs:      repos.Subscriptions,
		users:     repos.Users,
		verifier:  verifier,
		payConfig: *cfg,
		logger:    logger,
	}
}

// ComputeSubscriptionWindow returns the entitlement window a plan grants
// from now. The free tier has no end date; paid tiers run one calendar
// month.
func ComputeSubscriptionWindow(plan models.Plan, now time.Time) (start time.Time, end *time.Time) {
	start = now
	if !plan.IsPaid() {
		return start, nil
	}
	e := now.AddDate(0, 1, 0)
	return start, &e
}

// InitiateCheckout creates a pending payment and returns the signed
// redirect parameters.
func (s *paymentServiceImpl) InitiateCheckout(ctx context.Context, user *models.User, planKey string) (*dto.CheckoutResponse, error) {
	plan, ok := models.ParsePlan(planKey)
	if !ok {
		return nil, apperrors.NewValidationError("unknown plan: " + planKey)
	}
	if !plan.IsPaid() {
		return nil, apperrors.NewBadRequestError("the free plan has no checkout")
	}

	catalog, err := s.subs.GetPlan(ctx, plan)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		OrderID:  uuid.New().String(),
		UserID:   user.ID,
		Plan:     plan,
		Amount:   catalog.Price,
		Currency: catalog.Currency,
		Status:   models.PaymentPending,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	params := map[string]string{
		"merchant_id": s.verifier.MerchantID(),
		"return_url":  s.payConfig.PayHere.ReturnURL,
		"cancel_url":  s.payConfig.PayHere.CancelURL,
		"notify_url":  s.payConfig.PayHere.NotifyURL,
		"order_id":    payment.OrderID,
		"items":       catalog.Name,
		"amount":      fmt.Sprintf("%.2f", payment.Amount),
		"currency":    payment.Currency,
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"email":       user.Email,
		"hash":        s.verifier.CheckoutHash(payment.OrderID, payment.Amount, payment.Currency),
	}

	s.logger.Info().Str("orderId", payment.OrderID).Int64("userId", user.ID).
		Str("plan", string(plan)).Msg("Checkout initiated")

	return &dto.CheckoutResponse{
		CheckoutURL: s.payConfig.PayHere.CheckoutURL,
		OrderID:     payment.OrderID,
		Params:      params,
	}, nil
}

// HandleNotification reconciles a verified gateway callback. The payment
// row is locked and re-checked inside the transaction so a duplicated
// notification for an already-completed payment is acknowledged without
// creating a second subscription.
func (s *paymentServiceImpl) HandleNotification(ctx context.Context, n payhere.Notification) error {
	if err := s.verifier.Verify(n); err != nil {
		return err
	}

	status := payhere.MapStatusCode(n.StatusCode)

	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		payment, err := s.payments.GetByOrderIDForUpdateTx(ctx, tx, n.OrderID)
		if err != nil {
			return err
		}
		if payment.Status == models.PaymentCompleted {
			s.logger.Info().Str("orderId", n.OrderID).Msg("Duplicate notification for completed payment ignored")
			return nil
		}

		if err := s.payments.UpdateStatusTx(ctx, tx, payment.ID, status, n.PaymentID); err != nil {
			return err
		}
		if status != models.PaymentCompleted {
			return nil
		}

		now := time.Now()
		start, end := ComputeSubscriptionWindow(payment.Plan, now)

		if err := s.users.UpdateSubscriptionTx(ctx, tx, payment.UserID,
			payment.Plan, models.SubscriptionActive, start, end, helpers.UTCDateString(now)); err != nil {
			return err
		}

		sub := &models.Subscription{
			UserID:    payment.UserID,
			Plan:      payment.Plan,
			Status:    models.SubscriptionActive,
			StartDate: start,
			EndDate:   end,
			PaymentID: &payment.ID,
		}
		if err := s.subs.CreateTx(ctx, tx, sub); err != nil {
			return err
		}
		if err := s.payments.LinkSubscriptionTx(ctx, tx, payment.ID, sub.ID); err != nil {
			return err
		}

		s.logger.Info().Str("orderId", n.OrderID).Int64("userId", payment.UserID).
			Str("plan", string(payment.Plan)).Msg("Payment completed, subscription activated")
		return nil
	})
}

// History returns the caller's payments.
func (s *paymentServiceImpl) History(ctx context.Context, userID int64) ([]dto.PaymentResponse, error) {
	payments, err := s.payments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, dto.NewPaymentResponse(p))
	}
	return out, nil
}
