package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/pkg/apperrors"
	"github.com/stellarion/backend/internal/pkg/helpers"
)

// NASAService serves the static opportunity catalog.
type NASAService interface {
	List(ctx context.Context, category, search string, page, limit int) (*dto.PagedResponse, error)
	Get(ctx context.Context, id int64) (*models.NASAOpportunity, error)
}

type nasaServiceImpl struct {
	catalog []models.NASAOpportunity
	logger  zerolog.Logger
}

// NewNASAService creates a NASAService over the built-in catalog.
func NewNASAService(logger zerolog.Logger) NASAService {
	return &nasaServiceImpl{catalog: nasaCatalog, logger: logger}
}

// List filters and pages the catalog.
func (s *nasaServiceImpl) List(ctx context.Context, category, search string, page, limit int) (*dto.PagedResponse, error) {
	page, limit, offset := helpers.NormalizePagination(page, limit)

	matched := []models.NASAOpportunity{}
	for _, o := range s.catalog {
		if category != "" && !strings.EqualFold(o.Category, category) {
			continue
		}
		if search != "" {
			needle := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(o.Title), needle) &&
				!strings.Contains(strings.ToLower(o.Description), needle) {
				continue
			}
		}
		matched = append(matched, o)
	}

	total := int64(len(matched))
	end := offset + limit
	if offset > len(matched) {
		offset = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	return &dto.PagedResponse{
		Items:      matched[offset:end],
		Pagination: dto.Pagination{Page: page, Limit: limit, Total: total, Pages: helpers.TotalPages(total, limit)},
	}, nil
}

// Get returns one catalog entry.
func (s *nasaServiceImpl) Get(ctx context.Context, id int64) (*models.NASAOpportunity, error) {
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			return &s.catalog[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// nasaCatalog is the static listing served by the API.
var nasaCatalog = []models.NASAOpportunity{
	{
		ID:          1,
		Title:       "NASA Citizen Science: Exoplanet Watch",
		Agency:      "NASA",
		Category:    "citizen-science",
		Description: "Help observe transiting exoplanets with small telescopes and submit light curves to the Exoplanet Watch program.",
		Eligibility: "Open to everyone; a small telescope or access to archival data is enough.",
		Deadline:    "rolling",
		URL:         "https://exoplanets.nasa.gov/exoplanet-watch/",
		Tags:        []string{"exoplanets", "observation", "photometry"},
	},
	{
		ID:          2,
		Title:       "NASA International Space Apps Challenge",
		Agency:      "NASA",
		Category:    "hackathon",
		Description: "A global hackathon using NASA's open data to solve challenges on Earth and in space.",
		Eligibility: "Open to all ages and skill levels worldwide.",
		Deadline:    "2026-10-04",
		URL:         "https://www.spaceappschallenge.org/",
		Tags:        []string{"open-data", "hackathon", "teams"},
	},
	{
		ID:          3,
		Title:       "NASA Internships (OSTEM)",
		Agency:      "NASA",
		Category:    "internship",
		Description: "Paid internships across NASA centers in science, engineering, and communications.",
		Eligibility: "Students 16 or older enrolled in an accredited program; eligibility varies by session.",
		Deadline:    "2026-09-12",
		URL:         "https://intern.nasa.gov/",
		Tags:        []string{"students", "engineering", "research"},
	},
	{
		ID:          4,
		Title:       "GLOBE Observer Clouds Campaign",
		Agency:      "NASA",
		Category:    "citizen-science",
		Description: "Photograph and classify clouds to validate satellite observations through the GLOBE Observer app.",
		Eligibility: "Open to everyone with a smartphone.",
		Deadline:    "rolling",
		URL:         "https://observer.globe.gov/",
		Tags:        []string{"earth-science", "clouds", "mobile"},
	},
	{
		ID:          5,
		Title:       "Radio JOVE: Jupiter Radio Astronomy",
		Agency:      "NASA",
		Category:    "citizen-science",
		Description: "Build a simple radio telescope kit and record decametric emissions from Jupiter and the Sun.",
		Eligibility: "Schools, clubs, and individuals; kit assembly required.",
		Deadline:    "rolling",
		URL:         "https://radiojove.gsfc.nasa.gov/",
		Tags:        []string{"radio-astronomy", "jupiter", "diy"},
	},
}
