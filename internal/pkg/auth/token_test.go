package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarion/backend/internal/pkg/apperrors"
)

type fakeRevocations struct {
	revoked map[string]bool
}

func (f *fakeRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	return f.revoked[jti], nil
}

func newTestTokenService(expiration time.Duration, revoked *fakeRevocations) *TokenService {
	if revoked == nil {
		revoked = &fakeRevocations{}
	}
	return NewTokenService(TokenConfig{
		Secret:     "test-secret",
		Expiration: expiration,
		Issuer:     "stellarion.test",
	}, revoked)
}

func TestIssueAndVerify(t *testing.T) {
	svc := newTestTokenService(time.Hour, nil)

	token, expiresIn, err := svc.Issue("uid-123", "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", claims.AuthUID())
	assert.Equal(t, "user@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := newTestTokenService(-time.Minute, nil)

	token, _, err := svc.Issue("uid-123", "user@example.com")
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrExpiredCredential)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := newTestTokenService(time.Hour, nil)
	token, _, err := issuer.Issue("uid-123", "user@example.com")
	require.NoError(t, err)

	other := NewTokenService(TokenConfig{
		Secret:     "different-secret",
		Expiration: time.Hour,
		Issuer:     "stellarion.test",
	}, &fakeRevocations{})

	_, err = other.Verify(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
}

func TestVerifyRevokedToken(t *testing.T) {
	revocations := &fakeRevocations{revoked: map[string]bool{}}
	svc := newTestTokenService(time.Hour, revocations)

	token, _, err := svc.Issue("uid-123", "user@example.com")
	require.NoError(t, err)

	claims, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)

	revocations.revoked[claims.ID] = true
	_, err = svc.Verify(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrRevokedCredential)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "abc.def.ghi", "bearer abc", "Bearer ", "Basic abc"} {
		_, err := ExtractBearerToken(header)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredential, "header %q", header)
	}
}
