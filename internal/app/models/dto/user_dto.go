package dto

import (
	"encoding/json"

	"github.com/stellarion/backend/internal/app/models"
)

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
	Plan      string `json:"plan"`
}

// UserDetailResponse adds the profile blobs and subscription state.
type UserDetailResponse struct {
	UserResponse
	Profile            json.RawMessage `json:"profile,omitempty"`
	RoleData           json.RawMessage `json:"roleData,omitempty"`
	SubscriptionStatus string          `json:"subscriptionStatus"`
	SubscriptionStart  *string         `json:"subscriptionStart,omitempty"`
	SubscriptionEnd    *string         `json:"subscriptionEnd,omitempty"`
}

// NewUserResponse maps an account model to its public view.
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		Plan:      string(u.Plan),
	}
}

// UpdateProfileRequest updates the caller's names and profile blob.
type UpdateProfileRequest struct {
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Profile   json.RawMessage `json:"profile"`
	RoleData  json.RawMessage `json:"roleData"`
}

// UpdateSettingsRequest upserts the caller's preference row. Pointer fields
// distinguish "absent" from zero values.
type UpdateSettingsRequest struct {
	EmailNotifications *bool   `json:"emailNotifications"`
	PushNotifications  *bool   `json:"pushNotifications"`
	ProfileVisibility  *string `json:"profileVisibility" binding:"omitempty,oneof=public private"`
	Theme              *string `json:"theme" binding:"omitempty,oneof=dark light"`
	Language           *string `json:"language"`
}

// SettingsResponse is the preference row view.
type SettingsResponse struct {
	EmailNotifications bool   `json:"emailNotifications"`
	PushNotifications  bool   `json:"pushNotifications"`
	ProfileVisibility  string `json:"profileVisibility"`
	Theme              string `json:"theme"`
	Language           string `json:"language"`
}

// AssignRoleRequest sets an account's role (admin only).
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// SetActiveRequest toggles an account's active flag (admin only).
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// RoleUpgradeRequestBody asks for a different role.
type RoleUpgradeRequestBody struct {
	RequestedRole string `json:"requestedRole" binding:"required"`
	Reason        string `json:"reason" binding:"required"`
}

// ReviewRequest resolves a pending application or upgrade request.
type ReviewRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}
