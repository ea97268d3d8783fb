package dto

import (
	"time"

	"github.com/stellarion/backend/internal/app/models"
)

// CreateNightCampRequest creates a camp with its child collections.
type CreateNightCampRequest struct {
	Name              string   `json:"name" binding:"required,min=3,max=200"`
	Description       string   `json:"description" binding:"required"`
	Location          string   `json:"location" binding:"required"`
	Date              string   `json:"date" binding:"required"`
	Time              string   `json:"time"`
	ImageURL          string   `json:"imageUrl"`
	SponsoredBy       string   `json:"sponsoredBy"`
	NumberOfGuides    int      `json:"numberOfGuides"`
	Activities        []string `json:"activities"`
	Equipment         []string `json:"equipment"`
	VolunteeringRoles []string `json:"volunteeringRoles"`
}

// UpdateNightCampRequest mutates a camp. A nil child collection leaves the
// stored collection untouched; a present one replaces it wholesale.
type UpdateNightCampRequest struct {
	Name              *string   `json:"name" binding:"omitempty,min=3,max=200"`
	Description       *string   `json:"description"`
	Location          *string   `json:"location"`
	Date              *string   `json:"date"`
	Time              *string   `json:"time"`
	ImageURL          *string   `json:"imageUrl"`
	SponsoredBy       *string   `json:"sponsoredBy"`
	NumberOfGuides    *int      `json:"numberOfGuides"`
	Activities        *[]string `json:"activities"`
	Equipment         *[]string `json:"equipment"`
	VolunteeringRoles *[]string `json:"volunteeringRoles"`
}

// NightCampResponse is the view of one camp.
type NightCampResponse struct {
	ID                int64    `json:"id"`
	OrganizerID       int64    `json:"organizerId"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Location          string   `json:"location"`
	Date              string   `json:"date"`
	Time              string   `json:"time,omitempty"`
	ImageURL          *string  `json:"imageUrl,omitempty"`
	SponsoredBy       *string  `json:"sponsoredBy,omitempty"`
	NumberOfGuides    int      `json:"numberOfGuides"`
	Status            string   `json:"status"`
	Activities        []string `json:"activities"`
	Equipment         []string `json:"equipment"`
	VolunteeringRoles []string `json:"volunteeringRoles"`
	CreatedAt         string   `json:"createdAt"`
}

// NewNightCampResponse maps a camp model to its view.
func NewNightCampResponse(c *models.NightCamp) NightCampResponse {
	return NightCampResponse{
		ID:                c.ID,
		OrganizerID:       c.OrganizerID,
		Name:              c.Name,
		Description:       c.Description,
		Location:          c.Location,
		Date:              c.Date,
		Time:              c.Time,
		ImageURL:          c.ImageURL,
		SponsoredBy:       c.SponsoredBy,
		NumberOfGuides:    c.NumberOfGuides,
		Status:            c.Status,
		Activities:        c.Activities,
		Equipment:         c.Equipment,
		VolunteeringRoles: c.VolunteeringRoles,
		CreatedAt:         c.CreatedAt.Format(time.RFC3339),
	}
}
