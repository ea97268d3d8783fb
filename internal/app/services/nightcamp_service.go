package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/app/repositories"
	"github.com/stellarion/backend/internal/db"
	"github.com/stellarion/backend/internal/pkg/apperrors"
	"github.com/stellarion/backend/internal/pkg/helpers"
)

// NightCampService defines the interface for camp operations.
type NightCampService interface {
	Create(ctx context.Context, organizer *models.User, req *dto.CreateNightCampRequest) (*dto.NightCampResponse, error)
	Update(ctx context.Context, actor *models.User, campID int64, req *dto.UpdateNightCampRequest) (*dto.NightCampResponse, error)
	Get(ctx context.Context, campID int64) (*dto.NightCampResponse, error)
	List(ctx context.Context, page, limit int) (*dto.PagedResponse, error)
	Delete(ctx context.Context, actor *models.User, campID int64) error
}

type nightCampServiceImpl struct {
	database *db.PostgresDB
	campRepo *repositories.NightCampRepository
	logger   zerolog.Logger
}

// NewNightCampService creates a new NightCampService.
func NewNightCampService(database *db.PostgresDB, campRepo *repositories.NightCampRepository, logger zerolog.Logger) NightCampService {
	return &nightCampServiceImpl{database: database, campRepo: campRepo, logger: logger}
}

// filterBlank drops empty strings before a child insert.
func filterBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Create inserts the camp and all three child collections in one
// transaction.
func (s *nightCampServiceImpl) Create(ctx context.Context, organizer *models.User, req *dto.CreateNightCampRequest) (*dto.NightCampResponse, error) {
	camp := &models.NightCamp{
		OrganizerID:    organizer.ID,
		Name:           req.Name,
		Description:    req.Description,
		Location:       req.Location,
		Date:           req.Date,
		Time:           req.Time,
		NumberOfGuides: req.NumberOfGuides,
		Status:         "upcoming",
	}
	if req.ImageURL != "" {
		camp.ImageURL = &req.ImageURL
	}
	if req.SponsoredBy != "" {
		camp.SponsoredBy = &req.SponsoredBy
	}

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.campRepo.CreateTx(ctx, tx, camp); err != nil {
			return err
		}
		children := map[string][]string{
			"night_camp_activities":   filterBlank(req.Activities),
			"night_camp_equipment":    filterBlank(req.Equipment),
			"night_camp_volunteering": filterBlank(req.VolunteeringRoles),
		}
		for table, values := range children {
			if err := s.campRepo.ReplaceChildrenTx(ctx, tx, table, camp.ID, values); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, camp.ID)
}

// Update rewrites the parent row and replaces exactly the child collections
// present in the payload, all in one transaction.
func (s *nightCampServiceImpl) Update(ctx context.Context, actor *models.User, campID int64, req *dto.UpdateNightCampRequest) (*dto.NightCampResponse, error) {
	camp, err := s.campRepo.GetByID(ctx, campID)
	if err != nil {
		return nil, err
	}
	if err := canActOn(actor, camp.OrganizerID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		camp.Name = *req.Name
	}
	if req.Description != nil {
		camp.Description = *req.Description
	}
	if req.Location != nil {
		camp.Location = *req.Location
	}
	if req.Date != nil {
		camp.Date = *req.Date
	}
	if req.Time != nil {
		camp.Time = *req.Time
	}
	if req.ImageURL != nil {
		camp.ImageURL = req.ImageURL
	}
	if req.SponsoredBy != nil {
		camp.SponsoredBy = req.SponsoredBy
	}
	if req.NumberOfGuides != nil {
		camp.NumberOfGuides = *req.NumberOfGuides
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.campRepo.UpdateTx(ctx, tx, camp); err != nil {
			return err
		}
		if req.Activities != nil {
			if err := s.campRepo.ReplaceChildrenTx(ctx, tx, "night_camp_activities", campID, filterBlank(*req.Activities)); err != nil {
				return err
			}
		}
		if req.Equipment != nil {
			if err := s.campRepo.ReplaceChildrenTx(ctx, tx, "night_camp_equipment", campID, filterBlank(*req.Equipment)); err != nil {
				return err
			}
		}
		if req.VolunteeringRoles != nil {
			if err := s.campRepo.ReplaceChildrenTx(ctx, tx, "night_camp_volunteering", campID, filterBlank(*req.VolunteeringRoles)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, campID)
}

// Get returns one camp with its children.
func (s *nightCampServiceImpl) Get(ctx context.Context, campID int64) (*dto.NightCampResponse, error) {
	camp, err := s.campRepo.GetByID(ctx, campID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewNightCampResponse(camp)
	return &resp, nil
}

// List returns one page of camps.
func (s *nightCampServiceImpl) List(ctx context.Context, page, limit int) (*dto.PagedResponse, error) {
	page, limit, offset := helpers.NormalizePagination(page, limit)
	camps, total, err := s.campRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NightCampResponse, 0, len(camps))
	for _, c := range camps {
		items = append(items, dto.NewNightCampResponse(c))
	}
	return &dto.PagedResponse{
		Items:      items,
		Pagination: dto.Pagination{Page: page, Limit: limit, Total: total, Pages: helpers.TotalPages(total, limit)},
	}, nil
}

// Delete removes a camp owned by the actor, or any camp for elevated roles.
func (s *nightCampServiceImpl) Delete(ctx context.Context, actor *models.User, campID int64) error {
	camp, err := s.campRepo.GetByID(ctx, campID)
	if err != nil {
		return err
	}
	if err := canActOn(actor, camp.OrganizerID); err != nil {
		return apperrors.ErrForbidden
	}
	return s.campRepo.Delete(ctx, campID)
}
