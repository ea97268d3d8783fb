package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/pkg/apperrors"
	"github.com/stellarion/backend/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier struct {
	claims *auth.Claims
	err    error
}

func (s *stubVerifier) Verify(context.Context, string) (*auth.Claims, error) {
	return s.claims, s.err
}

type stubResolver struct {
	user   *models.User
	err    error
	called bool
}

func (s *stubResolver) ResolveAccount(context.Context, string, string, string) (*models.User, error) {
	s.called = true
	return s.user, s.err
}

type stubActivity struct{}

func (stubActivity) TouchLastActivity(context.Context, int64) error { return nil }

func activeUser(role models.Role) *models.User {
	return &models.User{
		ID:       1,
		AuthUID:  "uid-1",
		Email:    "user@example.com",
		Role:     role,
		IsActive: true,
		Plan:     models.PlanFree,
	}
}

func newTestMiddleware(verifier TokenVerifier, resolver AccountResolver, devSubject string) *AuthMiddleware {
	return NewAuthMiddleware(verifier, resolver, stubActivity{}, devSubject, "dev@example.com", zerolog.Nop())
}

func performRequest(handler gin.HandlerFunc, mw ...gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	chain := append(mw, handler)
	router.GET("/probe", chain...)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(w, req)
	return w
}

func okHandler(c *gin.Context) {
	c.Status(http.StatusOK)
}

func TestAuthenticateWithoutHeader(t *testing.T) {
	resolver := &stubResolver{user: activeUser(models.RoleLearner)}
	mw := newTestMiddleware(&stubVerifier{err: apperrors.ErrInvalidCredential}, resolver, "")

	w := performRequest(okHandler, mw.Authenticate())

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, resolver.called)
}

func TestAuthenticateDevSubjectWithoutHeader(t *testing.T) {
	resolver := &stubResolver{user: activeUser(models.RoleAdmin)}
	mw := newTestMiddleware(&stubVerifier{err: apperrors.ErrInvalidCredential}, resolver, "dev-uid")

	w := performRequest(okHandler, mw.Authenticate())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resolver.called)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	user := activeUser(models.RoleLearner)
	user.IsActive = false
	resolver := &stubResolver{user: user}
	mw := newTestMiddleware(&stubVerifier{}, resolver, "dev-uid")

	w := performRequest(okHandler, mw.Authenticate())

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoles(t *testing.T) {
	resolver := &stubResolver{user: activeUser(models.RoleLearner)}
	mw := newTestMiddleware(&stubVerifier{}, resolver, "dev-uid")

	w := performRequest(okHandler, mw.Authenticate(), mw.RequireRoles(models.RoleAdmin, models.RoleModerator))
	assert.Equal(t, http.StatusForbidden, w.Code)

	resolver.user = activeUser(models.RoleModerator)
	w = performRequest(okHandler, mw.Authenticate(), mw.RequireRoles(models.RoleAdmin, models.RoleModerator))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesWithoutAuthentication(t *testing.T) {
	mw := newTestMiddleware(&stubVerifier{}, &stubResolver{}, "")

	w := performRequest(okHandler, mw.RequireRoles(models.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckEntitlement(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(720 * time.Hour)

	free := activeUser(models.RoleLearner)
	assert.NoError(t, CheckEntitlement(free, models.FeatureChatbot, now))
	assert.ErrorIs(t, CheckEntitlement(free, models.FeatureNightCamps, now), apperrors.ErrFeatureLocked)

	paid := activeUser(models.RoleLearner)
	paid.Plan = models.PlanExplorer
	paid.SubscriptionStatus = models.SubscriptionActive
	paid.SubscriptionEnd = &future
	assert.NoError(t, CheckEntitlement(paid, models.FeatureNightCamps, now))

	paid.SubscriptionStatus = models.SubscriptionCancelled
	assert.ErrorIs(t, CheckEntitlement(paid, models.FeatureNightCamps, now), apperrors.ErrSubscriptionInactive)

	paid.SubscriptionStatus = models.SubscriptionActive
	paid.SubscriptionEnd = &past
	assert.ErrorIs(t, CheckEntitlement(paid, models.FeatureNightCamps, now), apperrors.ErrSubscriptionExpired)

	// Advanced chatbot stays locked below cosmos even with a live subscription.
	paid.SubscriptionEnd = &future
	assert.ErrorIs(t, CheckEntitlement(paid, models.FeatureAdvancedChatbot, now), apperrors.ErrFeatureLocked)
}
