package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/app/repositories"
	"github.com/stellarion/backend/internal/pkg/apperrors"
	"github.com/stellarion/backend/internal/pkg/auth"
	"github.com/stellarion/backend/internal/pkg/helpers"
	"time"
)

// AuthService defines the interface for identity operations.
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Signin(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, error)
	Signout(ctx context.Context, claims *auth.Claims) error
	ChangePassword(ctx context.Context, authUID string, req *dto.ChangePasswordRequest) error
	ResolveAccount(ctx context.Context, authUID, email, displayName string) (*models.User, error)
}

type authServiceImpl struct {
	credentialRepo *repositories.CredentialRepository
	userRepo       *repositories.UserRepository
	settingsRepo   *repositories.SettingsRepository
	tokens         *auth.TokenService
	logger         zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	credentialRepo *repositories.CredentialRepository,
	userRepo *repositories.UserRepository,
	settingsRepo *repositories.SettingsRepository,
	tokens *auth.TokenService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		credentialRepo: credentialRepo,
		userRepo:       userRepo,
		settingsRepo:   settingsRepo,
		tokens:         tokens,
		logger:         logger,
	}
}

// DeriveNames splits a display name on its first space, falling back to the
// email local part when no display name was given.
func DeriveNames(displayName, email string) (firstName, lastName string) {
	name := strings.TrimSpace(displayName)
	if name == "" {
		local := email
		if i := strings.Index(email, "@"); i > 0 {
			local = email[:i]
		}
		return local, ""
	}
	if i := strings.Index(name, " "); i > 0 {
		return name[:i], strings.TrimSpace(name[i+1:])
	}
	return name, ""
}

// Signup registers a credential, provisions the account, and signs the
// caller in.
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	cred := &repositories.Credential{
		AuthUID:      uuid.New().String(),
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
	}
	if err := s.credentialRepo.Create(ctx, cred); err != nil {
		return nil, err
	}

	user, err := s.ResolveAccount(ctx, cred.AuthUID, cred.Email, req.DisplayName)
	if err != nil {
		return nil, err
	}
	return s.issueFor(user)
}

// Signin verifies the credential and issues a token.
func (s *authServiceImpl) Signin(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, error) {
	cred, err := s.credentialRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredential
		}
		return nil, err
	}
	if !auth.CheckPassword(cred.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredential
	}

	user, err := s.ResolveAccount(ctx, cred.AuthUID, cred.Email, "")
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountInactive
	}
	return s.issueFor(user)
}

func (s *authServiceImpl) issueFor(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.tokens.Issue(user.AuthUID, user.Email)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token: dto.TokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresIn: expiresIn},
		User:  dto.NewUserResponse(user),
	}, nil
}

// Signout revokes the presented token until its natural expiry.
func (s *authServiceImpl) Signout(ctx context.Context, claims *auth.Claims) error {
	expiresAt := time.Now().Add(24 * time.Hour)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return s.credentialRepo.Revoke(ctx, claims.ID, expiresAt)
}

// ChangePassword rotates the caller's password after verifying the current
// one.
func (s *authServiceImpl) ChangePassword(ctx context.Context, authUID string, req *dto.ChangePasswordRequest) error {
	cred, err := s.credentialRepo.GetByAuthUID(ctx, authUID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(cred.PasswordHash, req.CurrentPassword) {
		return apperrors.ErrInvalidCredential
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.credentialRepo.UpdatePassword(ctx, authUID, hash)
}

// ResolveAccount loads the account for a verified identity, provisioning it
// on first sight. The settings insert is deliberately outside the account
// insert: its failure is logged, never fatal.
func (s *authServiceImpl) ResolveAccount(ctx context.Context, authUID, email, displayName string) (*models.User, error) {
	user, err := s.userRepo.GetByAuthUID(ctx, authUID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	firstName, lastName := DeriveNames(displayName, email)
	user = &models.User{
		AuthUID:                   authUID,
		Email:                     email,
		FirstName:                 firstName,
		LastName:                  lastName,
		Role:                      models.RoleLearner,
		IsActive:                  true,
		Plan:                      models.PlanFree,
		SubscriptionStatus:        models.SubscriptionActive,
		ChatbotQuestionsResetDate: helpers.UTCDateString(time.Now()),
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailExists) {
			// Lost a provisioning race; the winner's row is ours.
			return s.userRepo.GetByAuthUID(ctx, authUID)
		}
		return nil, err
	}
	user.ID = id

	if err := s.settingsRepo.Upsert(ctx, models.DefaultSettings(id)); err != nil {
		s.logger.Warn().Err(err).Int64("userId", id).Msg("Failed to create default settings")
	}

	s.logger.Info().Int64("userId", id).Str("email", email).Msg("Provisioned new account")
	return user, nil
}
