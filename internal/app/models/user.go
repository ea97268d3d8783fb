package models

import (
	"encoding/json"
	"time"
)

// User is the local account row mapped from a verified identity claim.
// AuthUID is the identity provider's subject id and never changes.
type User struct {
	ID        int64
	AuthUID   string
	Email     string
	FirstName string
	LastName  string
	Role      Role
	IsActive  bool

	// Profile holds free-form profile attributes; RoleData holds
	// role-specific attributes. Both are stored as jsonb.
	Profile  json.RawMessage
	RoleData json.RawMessage

	Plan               Plan
	SubscriptionStatus SubscriptionStatus
	SubscriptionStart  *time.Time
	SubscriptionEnd    *time.Time

	ChatbotQuestionsUsed      int
	ChatbotQuestionsResetDate string // UTC calendar date, YYYY-MM-DD

	LastActivityAt time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName returns the display name for the account.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserSettings is the one-to-one preference row for an account.
type UserSettings struct {
	UserID             int64
	EmailNotifications bool
	PushNotifications  bool
	ProfileVisibility  string
	Theme              string
	Language           string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DefaultSettings returns the settings created alongside a new account.
func DefaultSettings(userID int64) *UserSettings {
	return &UserSettings{
		UserID:             userID,
		EmailNotifications: true,
		PushNotifications:  true,
		ProfileVisibility:  "public",
		Theme:              "dark",
		Language:           "en",
	}
}
