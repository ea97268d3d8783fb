package services

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/app/repositories"
	"github.com/stellarion/backend/internal/db"
	"github.com/stellarion/backend/internal/pkg/apperrors"
	"github.com/stellarion/backend/internal/pkg/filestore"
	"github.com/stellarion/backend/internal/pkg/helpers"
)

// ApplicationService defines the interface for the three onboarding
// workflows.
type ApplicationService interface {
	Submit(ctx context.Context, t models.ApplicationType, user *models.User, req *dto.SubmitApplicationRequest, files map[string]*multipart.FileHeader) (*dto.ApplicationResponse, error)
	GetMine(ctx context.Context, t models.ApplicationType, userID int64) (*dto.ApplicationResponse, error)
	List(ctx context.Context, t models.ApplicationType, status string, page, limit int) (*dto.PagedResponse, error)
	Review(ctx context.Context, t models.ApplicationType, applicationID, reviewerID int64, req *dto.ReviewRequest) error
	Withdraw(ctx context.Context, t models.ApplicationType, applicationID, userID int64) error
}

type applicationServiceImpl struct {
	database  *db.PostgresDB
	appRepo   *repositories.ApplicationRepository
	userRepo  *repositories.UserRepository
	documents *filestore.DocumentStore
	logger    zerolog.Logger
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(
	database *db.PostgresDB,
	appRepo *repositories.ApplicationRepository,
	userRepo *repositories.UserRepository,
	documents *filestore.DocumentStore,
	logger zerolog.Logger,
) ApplicationService {
	return &applicationServiceImpl{
		database:  database,
		appRepo:   appRepo,
		userRepo:  userRepo,
		documents: documents,
		logger:    logger,
	}
}

// Submit files a new application with its documents. The application row
// and every document row land in one transaction; uploads happen first and
// degrade to placeholder URLs rather than failing the workflow.
func (s *applicationServiceImpl) Submit(ctx context.Context, t models.ApplicationType, user *models.User,
	req *dto.SubmitApplicationRequest, files map[string]*multipart.FileHeader) (*dto.ApplicationResponse, error) {
	if !t.IsValid() {
		return nil, apperrors.NewBadRequestError("unknown application type")
	}

	existing, err := s.appRepo.GetActiveByUser(ctx, t, user.ID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("an application already exists for this account")
	}

	type upload struct {
		field string
		url   string
	}
	uploads := make([]upload, 0, len(files))
	for field, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, apperrors.NewBadRequestError("unreadable upload: " + field)
		}
		url := s.documents.Upload(ctx, string(t)+"-applications", user.ID, field, fh.Filename, f, fh.Size)
		_ = f.Close()
		uploads = append(uploads, upload{field: field, url: url})
	}

	app := &models.Application{
		Type:       t,
		UserID:     user.ID,
		Motivation: req.Motivation,
		Experience: req.Experience,
		Details:    req.Details,
		Status:     models.ApplicationPending,
	}
	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.appRepo.CreateTx(ctx, tx, app); err != nil {
			return err
		}
		for _, u := range uploads {
			doc := &models.ApplicationDocument{
				ApplicationID: app.ID,
				Type:          t,
				FieldName:     u.field,
				URL:           u.url,
			}
			if err := s.appRepo.AddDocumentTx(ctx, tx, doc); err != nil {
				return err
			}
			app.Documents = append(app.Documents, *doc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Str("type", string(t)).Msg("Application submitted")
	resp := dto.NewApplicationResponse(app)
	return &resp, nil
}

// GetMine returns the caller's active application.
func (s *applicationServiceImpl) GetMine(ctx context.Context, t models.ApplicationType, userID int64) (*dto.ApplicationResponse, error) {
	app, err := s.appRepo.GetActiveByUser(ctx, t, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewApplicationResponse(app)
	return &resp, nil
}

// List returns one page of applications for reviewers.
func (s *applicationServiceImpl) List(ctx context.Context, t models.ApplicationType, status string, page, limit int) (*dto.PagedResponse, error) {
	if status != "" && !models.ApplicationStatus(status).IsValid() {
		return nil, apperrors.NewValidationError("unknown status: " + status)
	}
	page, limit, offset := helpers.NormalizePagination(page, limit)

	apps, total, err := s.appRepo.List(ctx, t, models.ApplicationStatus(status), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		items = append(items, dto.NewApplicationResponse(a))
	}
	return &dto.PagedResponse{
		Items:      items,
		Pagination: dto.Pagination{Page: page, Limit: limit, Total: total, Pages: helpers.TotalPages(total, limit)},
	}, nil
}

// Review resolves a pending application. Accepting a guide application
// promotes the owning account to guide in the same transaction.
func (s *applicationServiceImpl) Review(ctx context.Context, t models.ApplicationType, applicationID, reviewerID int64, req *dto.ReviewRequest) error {
	status := models.ApplicationStatus(req.Status)
	if status != models.ApplicationAccepted && status != models.ApplicationRejected {
		return apperrors.NewValidationError("status must be accepted or rejected")
	}

	app, err := s.appRepo.GetByID(ctx, t, applicationID)
	if err != nil {
		return err
	}

	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.appRepo.UpdateStatusTx(ctx, tx, t, applicationID, status, reviewerID, req.Note); err != nil {
			return err
		}
		if status == models.ApplicationAccepted {
			if role, ok := t.GrantedRole(); ok {
				return s.userRepo.UpdateRoleTx(ctx, tx, app.UserID, role)
			}
		}
		return nil
	})
}

// Withdraw soft-deletes the caller's application.
func (s *applicationServiceImpl) Withdraw(ctx context.Context, t models.ApplicationType, applicationID, userID int64) error {
	return s.appRepo.SoftDelete(ctx, t, applicationID, userID)
}
