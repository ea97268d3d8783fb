package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/app/repositories"
	"github.com/stellarion/backend/internal/db"
	"github.com/stellarion/backend/internal/pkg/apperrors"
	"github.com/stellarion/backend/internal/pkg/helpers"
)

// SubscriptionService defines the interface for plan and subscription
// reads plus the free downgrade.
type SubscriptionService interface {
	Plans(ctx context.Context) ([]dto.PlanResponse, error)
	Current(ctx context.Context, user *models.User) (*dto.SubscriptionResponse, error)
	History(ctx context.Context, userID int64) ([]dto.SubscriptionResponse, error)
	Cancel(ctx context.Context, user *models.User) error
}

type subscriptionServiceImpl struct {
	database *db.PostgresDB
	subs     *repositories.SubscriptionRepository
	users    *repositories.UserRepository
	logger   zerolog.Logger
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(database *db.PostgresDB, repos *repositories.Repositories, logger zerolog.Logger) SubscriptionService {
	return &subscriptionServiceImpl{
		database: database,
		subs:     repos.Subscriptions,
		users:    repos.Users,
		logger:   logger,
	}
}

// Plans returns the purchasable catalog.
func (s *subscriptionServiceImpl) Plans(ctx context.Context) ([]dto.PlanResponse, error) {
	plans, err := s.subs.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, dto.PlanResponse{
			Plan:        string(p.Plan),
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Currency:    p.Currency,
			Features:    p.Features,
		})
	}
	return out, nil
}

// Current returns the caller's newest subscription. Accounts that never
// purchased get a synthetic free-tier view.
func (s *subscriptionServiceImpl) Current(ctx context.Context, user *models.User) (*dto.SubscriptionResponse, error) {
	sub, err := s.subs.GetCurrentByUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &dto.SubscriptionResponse{
				Plan:      string(models.PlanFree),
				Status:    string(models.SubscriptionActive),
				StartDate: user.CreatedAt.Format(time.RFC3339),
			}, nil
		}
		return nil, err
	}
	resp := dto.NewSubscriptionResponse(sub)
	return &resp, nil
}

// History returns the caller's subscriptions.
func (s *subscriptionServiceImpl) History(ctx context.Context, userID int64) ([]dto.SubscriptionResponse, error) {
	subs, err := s.subs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, dto.NewSubscriptionResponse(sub))
	}
	return out, nil
}

// Cancel downgrades the account to the free tier immediately. The account
// fields and the cancellation record move in one transaction.
func (s *subscriptionServiceImpl) Cancel(ctx context.Context, user *models.User) error {
	if !user.Plan.IsPaid() {
		return apperrors.NewBadRequestError("account is already on the free plan")
	}

	now := time.Now()
	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.users.UpdateSubscriptionTx(ctx, tx, user.ID,
			models.PlanFree, models.SubscriptionActive, now, nil, helpers.UTCDateString(now)); err != nil {
			return err
		}
		sub := &models.Subscription{
			UserID:    user.ID,
			Plan:      user.Plan,
			Status:    models.SubscriptionCancelled,
			StartDate: now,
		}
		if err := s.subs.CreateTx(ctx, tx, sub); err != nil {
			return err
		}
		s.logger.Info().Int64("userId", user.ID).Str("fromPlan", string(user.Plan)).Msg("Subscription cancelled")
		return nil
	})
}
