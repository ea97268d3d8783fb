package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stellarion/backend/internal/pkg/apperrors"
)

// RevocationChecker answers whether a token id has been revoked by signout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// TokenConfig defines token issuance settings.
type TokenConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// TokenService issues and verifies HS256 bearer tokens. Verification
// consults the revocation checker so a signed-out token is refused even
// before its expiry.
type TokenService struct {
	config      TokenConfig
	revocations RevocationChecker
}

// NewTokenService creates a token service.
func NewTokenService(config TokenConfig, revocations RevocationChecker) *TokenService {
	return &TokenService{config: config, revocations: revocations}
}

// Claims is the verified identity attached to a request.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthUID returns the identity subject id.
func (c *Claims) AuthUID() string { return c.Subject }

// Issue creates a signed token for the given identity subject.
func (s *TokenService) Issue(authUID, email string) (token string, expiresIn int64, err error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			Subject:   authUID,
			ID:        uuid.New().String(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, int64(s.config.Expiration.Seconds()), nil
}

// Verify parses and validates a token string, including the revocation
// check. Returned errors wrap the apperrors credential sentinels.
func (s *TokenService) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrExpiredCredential
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidCredential, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, apperrors.ErrInvalidCredential
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("revocation check failed: %w", err)
	}
	if revoked {
		return nil, apperrors.ErrRevokedCredential
	}
	return claims, nil
}

// ExtractBearerToken extracts the raw token from an Authorization header.
// Only the "Bearer <token>" form is accepted.
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", apperrors.ErrInvalidCredential
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return "", apperrors.ErrInvalidCredential
	}
	token := strings.TrimSpace(authHeader[len(prefix):])
	if token == "" {
		return "", apperrors.ErrInvalidCredential
	}
	return token, nil
}
