package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/pkg/apperrors"
)

func handleError(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/probe", nil)
	HandleAPIError(c, err)
	return w
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{apperrors.ErrInvalidCredential, http.StatusUnauthorized},
		{apperrors.ErrExpiredCredential, http.StatusUnauthorized},
		{apperrors.ErrRevokedCredential, http.StatusUnauthorized},
		{apperrors.ErrAccountInactive, http.StatusForbidden},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{apperrors.ErrFeatureLocked, http.StatusForbidden},
		{apperrors.ErrSubscriptionInactive, http.StatusForbidden},
		{apperrors.ErrSubscriptionExpired, http.StatusForbidden},
		{apperrors.ErrQuotaExceeded, http.StatusTooManyRequests},
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrConflict, http.StatusConflict},
		{apperrors.ErrEmailExists, http.StatusConflict},
		{apperrors.ErrValidationFailed, http.StatusBadRequest},
		{apperrors.ErrBadRequest, http.StatusBadRequest},
		{apperrors.ErrUpstreamFailure, http.StatusBadGateway},
		{errors.New("database on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := handleError(tt.err)
		assert.Equal(t, tt.status, w.Code, "error %v", tt.err)

		var resp dto.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "error %v", tt.err)
		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Error)
	}
}

func TestHandleAPIErrorCarriesContextMessage(t *testing.T) {
	w := handleError(apperrors.NewConflictError("application is not pending"))

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application is not pending", resp.Error)
}

func TestHandleAPIErrorHidesInternalDetail(t *testing.T) {
	w := handleError(errors.New("pq: connection refused at 10.0.0.3"))

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error)
}
