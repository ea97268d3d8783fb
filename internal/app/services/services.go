package services

import (
	"github.com/rs/zerolog"

	"github.com/stellarion/backend/internal/app/repositories"
	"github.com/stellarion/backend/internal/config"
	"github.com/stellarion/backend/internal/db"
	"github.com/stellarion/backend/internal/pkg/auth"
	"github.com/stellarion/backend/internal/pkg/filestore"
	"github.com/stellarion/backend/internal/pkg/payhere"
)

// Services holds all the service instances.
type Services struct {
	Auth          AuthService
	Users         UserService
	Blogs         BlogService
	Applications  ApplicationService
	NightCamps    NightCampService
	Payments      PaymentService
	Subscriptions SubscriptionService
	Chatbot       ChatbotService
	NASA          NASAService
}

// NewServices initializes all services.
func NewServices(
	database *db.PostgresDB,
	repos *repositories.Repositories,
	tokens *auth.TokenService,
	verifier *payhere.Verifier,
	documents *filestore.DocumentStore,
	generator TextGenerator,
	cfg *config.Config,
	logger zerolog.Logger,
) *Services {
	return &Services{
		Auth:          NewAuthService(repos.Credentials, repos.Users, repos.Settings, tokens, logger),
		Users:         NewUserService(database, repos, logger),
		Blogs:         NewBlogService(database, repos.Blogs, logger),
		Applications:  NewApplicationService(database, repos.Applications, repos.Users, documents, logger),
		NightCamps:    NewNightCampService(database, repos.NightCamps, logger),
		Payments:      NewPaymentService(database, repos, verifier, cfg, logger),
		Subscriptions: NewSubscriptionService(database, repos, logger),
		Chatbot:       NewChatbotService(repos.Users, generator, logger),
		NASA:          NewNASAService(logger),
	}
}
