package models

import "time"

// NightCamp is an organized observation event. The three child collections
// are replaced wholesale (delete then reinsert) whenever an update supplies
// them, so a child row never outlives the payload that defined it.
type NightCamp struct {
	ID             int64
	OrganizerID    int64
	Name           string
	Description    string
	Location       string
	Date           string // calendar date, YYYY-MM-DD
	Time           string
	ImageURL       *string
	SponsoredBy    *string
	NumberOfGuides int
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Activities        []string
	Equipment         []string
	VolunteeringRoles []string
}

// NightCampChildTables maps each child collection to its table name.
// Update paths iterate this map so a new collection cannot be forgotten
// in the replace step.
var NightCampChildTables = map[string]string{
	"activities":         "night_camp_activities",
	"equipment":          "night_camp_equipment",
	"volunteering_roles": "night_camp_volunteering",
}
