package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/app/repositories"
	"github.com/stellarion/backend/internal/db"
	"github.com/stellarion/backend/internal/pkg/apperrors"
	"github.com/stellarion/backend/internal/pkg/helpers"
)

// UserService defines the interface for account operations.
type UserService interface {
	GetDetail(ctx context.Context, userID int64) (*dto.UserDetailResponse, error)
	UpdateProfile(ctx context.Context, user *models.User, req *dto.UpdateProfileRequest) (*dto.UserDetailResponse, error)
	GetSettings(ctx context.Context, userID int64) (*dto.SettingsResponse, error)
	UpdateSettings(ctx context.Context, userID int64, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
	List(ctx context.Context, page, limit int) (*dto.PagedResponse, error)
	AssignRole(ctx context.Context, userID int64, role string) error
	SetActive(ctx context.Context, userID int64, active bool) error
	RequestRoleUpgrade(ctx context.Context, user *models.User, req *dto.RoleUpgradeRequestBody) (*dto.RoleUpgradeResponse, error)
	ListMyRoleUpgrades(ctx context.Context, userID int64) ([]dto.RoleUpgradeResponse, error)
	ListRoleUpgrades(ctx context.Context, status string, page, limit int) (*dto.PagedResponse, error)
	ReviewRoleUpgrade(ctx context.Context, requestID, reviewerID int64, req *dto.ReviewRequest) error
	ExportData(ctx context.Context, userID int64) (map[string]interface{}, error)
	DeleteAccount(ctx context.Context, user *models.User) error
}

type userServiceImpl struct {
	database       *db.PostgresDB
	userRepo       *repositories.UserRepository
	settingsRepo   *repositories.SettingsRepository
	credentialRepo *repositories.CredentialRepository
	blogRepo       *repositories.BlogRepository
	roleReqRepo    *repositories.RoleRequestRepository
	appRepo        *repositories.ApplicationRepository
	logger         zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	database *db.PostgresDB,
	repos *repositories.Repositories,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		database:       database,
		userRepo:       repos.Users,
		settingsRepo:   repos.Settings,
		credentialRepo: repos.Credentials,
		blogRepo:       repos.Blogs,
		roleReqRepo:    repos.RoleRequests,
		appRepo:        repos.Applications,
		logger:         logger,
	}
}

func userDetail(u *models.User) *dto.UserDetailResponse {
	d := &dto.UserDetailResponse{
		UserResponse:       dto.NewUserResponse(u),
		Profile:            u.Profile,
		RoleData:           u.RoleData,
		SubscriptionStatus: string(u.SubscriptionStatus),
	}
	if u.SubscriptionStart != nil {
		s := u.SubscriptionStart.Format(time.RFC3339)
		d.SubscriptionStart = &s
	}
	if u.SubscriptionEnd != nil {
		e := u.SubscriptionEnd.Format(time.RFC3339)
		d.SubscriptionEnd = &e
	}
	return d
}

// GetDetail returns the full account view.
func (s *userServiceImpl) GetDetail(ctx context.Context, userID int64) (*dto.UserDetailResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return userDetail(u), nil
}

// UpdateProfile rewrites names and the profile blobs.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, user *models.User, req *dto.UpdateProfileRequest) (*dto.UserDetailResponse, error) {
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Profile != nil {
		user.Profile = req.Profile
	}
	if req.RoleData != nil {
		user.RoleData = req.RoleData
	}
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return userDetail(user), nil
}

func settingsResponse(st *models.UserSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		EmailNotifications: st.EmailNotifications,
		PushNotifications:  st.PushNotifications,
		ProfileVisibility:  st.ProfileVisibility,
		Theme:              st.Theme,
		Language:           st.Language,
	}
}

// GetSettings returns the preference row, falling back to defaults when the
// provisioning-time insert failed.
func (s *userServiceImpl) GetSettings(ctx context.Context, userID int64) (*dto.SettingsResponse, error) {
	st, err := s.settingsRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return settingsResponse(models.DefaultSettings(userID)), nil
		}
		return nil, err
	}
	return settingsResponse(st), nil
}

// UpdateSettings merges the request into the stored row and upserts it.
func (s *userServiceImpl) UpdateSettings(ctx context.Context, userID int64, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	st, err := s.settingsRepo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		st = models.DefaultSettings(userID)
	}

	if req.EmailNotifications != nil {
		st.EmailNotifications = *req.EmailNotifications
	}
	if req.PushNotifications != nil {
		st.PushNotifications = *req.PushNotifications
	}
	if req.ProfileVisibility != nil {
		st.ProfileVisibility = *req.ProfileVisibility
	}
	if req.Theme != nil {
		st.Theme = *req.Theme
	}
	if req.Language != nil {
		st.Language = *req.Language
	}

	if err := s.settingsRepo.Upsert(ctx, st); err != nil {
		return nil, err
	}
	return settingsResponse(st), nil
}

// List returns one page of accounts for the admin listing.
func (s *userServiceImpl) List(ctx context.Context, page, limit int) (*dto.PagedResponse, error) {
	page, limit, offset := helpers.NormalizePagination(page, limit)
	users, total, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.NewUserResponse(u))
	}
	return &dto.PagedResponse{
		Items:      items,
		Pagination: dto.Pagination{Page: page, Limit: limit, Total: total, Pages: helpers.TotalPages(total, limit)},
	}, nil
}

// AssignRole sets an account's role after validating it against the enum.
func (s *userServiceImpl) AssignRole(ctx context.Context, userID int64, role string) error {
	parsed, ok := models.ParseRole(role)
	if !ok {
		return apperrors.NewValidationError("unknown role: " + role)
	}
	return s.userRepo.UpdateRole(ctx, userID, parsed)
}

// SetActive toggles an account's active flag.
func (s *userServiceImpl) SetActive(ctx context.Context, userID int64, active bool) error {
	return s.userRepo.SetActive(ctx, userID, active)
}

// RequestRoleUpgrade files a pending upgrade request.
func (s *userServiceImpl) RequestRoleUpgrade(ctx context.Context, user *models.User, req *dto.RoleUpgradeRequestBody) (*dto.RoleUpgradeResponse, error) {
	requested, ok := models.ParseRole(req.RequestedRole)
	if !ok {
		return nil, apperrors.NewValidationError("unknown role: " + req.RequestedRole)
	}
	if requested == user.Role {
		return nil, apperrors.NewValidationError("account already has this role")
	}
	if requested.IsElevated() {
		return nil, apperrors.NewForbiddenError("elevated roles cannot be requested")
	}

	rr := &models.RoleUpgradeRequest{
		UserID:        user.ID,
		CurrentRole:   user.Role,
		RequestedRole: requested,
		Reason:        req.Reason,
		Status:        models.UpgradePending,
	}
	if err := s.roleReqRepo.Create(ctx, rr); err != nil {
		return nil, err
	}
	resp := dto.NewRoleUpgradeResponse(rr)
	return &resp, nil
}

// ListMyRoleUpgrades returns the caller's requests.
func (s *userServiceImpl) ListMyRoleUpgrades(ctx context.Context, userID int64) ([]dto.RoleUpgradeResponse, error) {
	reqs, err := s.roleReqRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleUpgradeResponse, 0, len(reqs))
	for _, rr := range reqs {
		out = append(out, dto.NewRoleUpgradeResponse(rr))
	}
	return out, nil
}

// ListRoleUpgrades returns one page of requests for reviewers.
func (s *userServiceImpl) ListRoleUpgrades(ctx context.Context, status string, page, limit int) (*dto.PagedResponse, error) {
	page, limit, offset := helpers.NormalizePagination(page, limit)
	reqs, total, err := s.roleReqRepo.List(ctx, models.RoleUpgradeRequestStatus(status), limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.RoleUpgradeResponse, 0, len(reqs))
	for _, rr := range reqs {
		items = append(items, dto.NewRoleUpgradeResponse(rr))
	}
	return &dto.PagedResponse{
		Items:      items,
		Pagination: dto.Pagination{Page: page, Limit: limit, Total: total, Pages: helpers.TotalPages(total, limit)},
	}, nil
}

// ReviewRoleUpgrade resolves a pending request. Approval mutates the
// account's role in the same transaction as the request row.
func (s *userServiceImpl) ReviewRoleUpgrade(ctx context.Context, requestID, reviewerID int64, req *dto.ReviewRequest) error {
	var status models.RoleUpgradeRequestStatus
	switch req.Status {
	case string(models.UpgradeApproved):
		status = models.UpgradeApproved
	case string(models.UpgradeRejected):
		status = models.UpgradeRejected
	default:
		return apperrors.NewValidationError("status must be approved or rejected")
	}

	rr, err := s.roleReqRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.roleReqRepo.ResolveTx(ctx, tx, requestID, status, reviewerID, req.Note); err != nil {
			return err
		}
		if status == models.UpgradeApproved {
			return s.userRepo.UpdateRoleTx(ctx, tx, rr.UserID, rr.RequestedRole)
		}
		return nil
	})
}

// ExportData assembles the caller's account, settings, blogs, and role
// requests into one JSON document.
func (s *userServiceImpl) ExportData(ctx context.Context, userID int64) (map[string]interface{}, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	blogs, _, err := s.blogRepo.List(ctx, repositories.BlogListFilter{
		AuthorID: userID,
		Limit:    helpers.MaxLimit,
	})
	if err != nil {
		return nil, err
	}
	blogItems := make([]dto.BlogResponse, 0, len(blogs))
	for _, b := range blogs {
		blogItems = append(blogItems, dto.NewBlogResponse(b))
	}

	upgrades, err := s.ListMyRoleUpgrades(ctx, userID)
	if err != nil {
		return nil, err
	}

	applications := []dto.ApplicationResponse{}
	for _, t := range []models.ApplicationType{
		models.ApplicationGuide, models.ApplicationMentor, models.ApplicationInfluencer,
	} {
		a, err := s.appRepo.GetActiveByUser(ctx, t, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		applications = append(applications, dto.NewApplicationResponse(a))
	}

	return map[string]interface{}{
		"account":      userDetail(u),
		"settings":     settings,
		"blogs":        blogItems,
		"applications": applications,
		"roleUpgrades": upgrades,
		"exportedAt":   time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// DeleteAccount removes the account row, its cascaded children, and the
// identity credential.
func (s *userServiceImpl) DeleteAccount(ctx context.Context, user *models.User) error {
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return err
	}
	if err := s.credentialRepo.Delete(ctx, user.AuthUID); err != nil {
		s.logger.Warn().Err(err).Str("authUid", user.AuthUID).Msg("Failed to delete credential")
	}
	s.logger.Info().Int64("userId", user.ID).Msg("Account deleted")
	return nil
}
