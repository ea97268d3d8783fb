package models

import (
	"encoding/json"
	"time"
)

// ApplicationType selects one of the three onboarding workflows. It is
// also the key used to pick the backing table, so it must stay closed.
type ApplicationType string

const (
	ApplicationGuide      ApplicationType = "guide"
	ApplicationMentor     ApplicationType = "mentor"
	ApplicationInfluencer ApplicationType = "influencer"
)

// IsValid reports whether t is a known application type.
func (t ApplicationType) IsValid() bool {
	switch t {
	case ApplicationGuide, ApplicationMentor, ApplicationInfluencer:
		return true
	}
	return false
}

// GrantedRole returns the role an account receives when an application of
// this type is accepted, and whether acceptance grants one at all.
func (t ApplicationType) GrantedRole() (Role, bool) {
	switch t {
	case ApplicationGuide:
		return RoleGuide, true
	case ApplicationMentor, ApplicationInfluencer:
		return "", false
	}
	return "", false
}

// ApplicationStatus is the review workflow state: pending → accepted or
// rejected, settable once per pending request.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// IsValid reports whether s is a known application status.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Application is a guide/mentor/influencer onboarding request owned by one
// account. Details carries type-specific fields as jsonb.
type Application struct {
	ID         int64
	Type       ApplicationType
	UserID     int64
	Motivation string
	Experience string
	Details    json.RawMessage
	Status     ApplicationStatus
	IsDeleted  bool
	ReviewedBy *int64
	ReviewNote *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Documents []ApplicationDocument
}

// ApplicationDocument is an uploaded attachment linked to an application.
type ApplicationDocument struct {
	ID            int64
	ApplicationID int64
	Type          ApplicationType
	FieldName     string
	URL           string
	CreatedAt     time.Time
}

// RoleUpgradeRequestStatus mirrors the application review workflow.
type RoleUpgradeRequestStatus string

const (
	UpgradePending  RoleUpgradeRequestStatus = "pending"
	UpgradeApproved RoleUpgradeRequestStatus = "approved"
	UpgradeRejected RoleUpgradeRequestStatus = "rejected"
)

// RoleUpgradeRequest records an account asking for a different role.
// At most one pending request may exist per (account, requested role).
type RoleUpgradeRequest struct {
	ID            int64
	UserID        int64
	CurrentRole   Role
	RequestedRole Role
	Reason        string
	Status        RoleUpgradeRequestStatus
	ReviewerID    *int64
	ReviewNote    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
