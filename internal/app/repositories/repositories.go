package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances.
type Repositories struct {
	Users         *UserRepository
	Settings      *SettingsRepository
	Credentials   *CredentialRepository
	Blogs         *BlogRepository
	Applications  *ApplicationRepository
	RoleRequests  *RoleRequestRepository
	NightCamps    *NightCampRepository
	Payments      *PaymentRepository
	Subscriptions *SubscriptionRepository
}

// NewRepositories initializes all repositories.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Settings:      NewSettingsRepository(db),
		Credentials:   NewCredentialRepository(db),
		Blogs:         NewBlogRepository(db),
		Applications:  NewApplicationRepository(db),
		RoleRequests:  NewRoleRequestRepository(db),
		NightCamps:    NewNightCampRepository(db),
		Payments:      NewPaymentRepository(db),
		Subscriptions: NewSubscriptionRepository(db),
	}
}
