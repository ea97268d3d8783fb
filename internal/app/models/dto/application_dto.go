package dto

import (
	"encoding/json"
	"time"

	"github.com/stellarion/backend/internal/app/models"
)

// SubmitApplicationRequest submits a guide/mentor/influencer application.
// Type-specific fields travel in Details as free-form JSON; document uploads
// arrive as multipart files alongside this payload.
type SubmitApplicationRequest struct {
	Motivation string          `json:"motivation" form:"motivation" binding:"required,min=20"`
	Experience string          `json:"experience" form:"experience" binding:"required"`
	Details    json.RawMessage `json:"details" form:"details"`
}

// ApplicationResponse is the view of one application.
type ApplicationResponse struct {
	ID         int64              `json:"id"`
	Type       string             `json:"type"`
	UserID     int64              `json:"userId"`
	Motivation string             `json:"motivation"`
	Experience string             `json:"experience"`
	Details    json.RawMessage    `json:"details,omitempty"`
	Status     string             `json:"status"`
	ReviewNote *string            `json:"reviewNote,omitempty"`
	Documents  []DocumentResponse `json:"documents"`
	CreatedAt  string             `json:"createdAt"`
}

// DocumentResponse is one uploaded attachment.
type DocumentResponse struct {
	ID        int64  `json:"id"`
	FieldName string `json:"fieldName"`
	URL       string `json:"url"`
}

// NewApplicationResponse maps an application model to its view.
func NewApplicationResponse(a *models.Application) ApplicationResponse {
	docs := make([]DocumentResponse, 0, len(a.Documents))
	for _, d := range a.Documents {
		docs = append(docs, DocumentResponse{ID: d.ID, FieldName: d.FieldName, URL: d.URL})
	}
	return ApplicationResponse{
		ID:         a.ID,
		Type:       string(a.Type),
		UserID:     a.UserID,
		Motivation: a.Motivation,
		Experience: a.Experience,
		Details:    a.Details,
		Status:     string(a.Status),
		ReviewNote: a.ReviewNote,
		Documents:  docs,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}

// RoleUpgradeResponse is the view of one role-upgrade request.
type RoleUpgradeResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	CurrentRole   string  `json:"currentRole"`
	RequestedRole string  `json:"requestedRole"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	ReviewNote    *string `json:"reviewNote,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// NewRoleUpgradeResponse maps an upgrade request to its view.
func NewRoleUpgradeResponse(r *models.RoleUpgradeRequest) RoleUpgradeResponse {
	return RoleUpgradeResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		CurrentRole:   string(r.CurrentRole),
		RequestedRole: string(r.RequestedRole),
		Reason:        r.Reason,
		Status:        string(r.Status),
		ReviewNote:    r.ReviewNote,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
}
