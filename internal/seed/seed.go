package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/app/repositories"
)

// CreateDefaultData upserts the purchasable plan catalog so checkout
// always has a price to quote.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	subRepo := repositories.NewSubscriptionRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (subscription plans)...")

	plans := []*models.SubscriptionPlan{
		{
			Plan:        models.PlanFree,
			Name:        "Stargazer",
			Description: "Get started with the basics of the night sky.",
			Price:       0,
			Currency:    "LKR",
			Features: []string{
				"5 chatbot questions per day",
				"Read and write blogs",
			},
		},
		{
			Plan:        models.PlanExplorer,
			Name:        "Explorer",
			Description: "For active learners who want more from every clear night.",
			Price:       990,
			Currency:    "LKR",
			Features: []string{
				"25 chatbot questions per day",
				"Night camp access",
				"Data export",
			},
		},
		{
			Plan:        models.PlanCosmos,
			Name:        "Cosmos",
			Description: "Everything unlocked, no daily limits.",
			Price:       2490,
			Currency:    "LKR",
			Features: []string{
				"Unlimited chatbot questions",
				"Advanced chatbot model",
				"Night camp access",
				"Data export",
			},
		},
	}

	var finalErr error
	for _, p := range plans {
		if err := subRepo.UpsertPlan(ctx, p); err != nil {
			lgr.Error().Err(err).Str("plan", string(p.Plan)).Msg("Error seeding subscription plan")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
