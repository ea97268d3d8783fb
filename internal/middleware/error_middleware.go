package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/pkg/apperrors"
	"github.com/stellarion/backend/internal/pkg/logger"
)

// HandleAPIError maps a service error to the JSON envelope. Every handler
// funnels its failures through here so the taxonomy stays in one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredential),
		errors.Is(err, apperrors.ErrExpiredCredential),
		errors.Is(err, apperrors.ErrRevokedCredential):
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure(apperrors.Message(err, "authentication required")))

	case errors.Is(err, apperrors.ErrAccountInactive):
		c.AbortWithStatusJSON(http.StatusForbidden, dto.Failure("account is deactivated"))

	case errors.Is(err, apperrors.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, dto.Failure(apperrors.Message(err, "permission denied")))

	case errors.Is(err, apperrors.ErrFeatureLocked):
		c.AbortWithStatusJSON(http.StatusForbidden, dto.Failure("feature not included in your plan"))

	case errors.Is(err, apperrors.ErrSubscriptionInactive):
		c.AbortWithStatusJSON(http.StatusForbidden, dto.Failure("subscription is not active"))

	case errors.Is(err, apperrors.ErrSubscriptionExpired):
		c.AbortWithStatusJSON(http.StatusForbidden, dto.Failure("subscription has expired"))

	case errors.Is(err, apperrors.ErrQuotaExceeded):
		c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.Failure("daily question quota exceeded"))

	case errors.Is(err, apperrors.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, dto.Failure(apperrors.Message(err, "resource not found")))

	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrEmailExists):
		c.AbortWithStatusJSON(http.StatusConflict, dto.Failure(apperrors.Message(err, "resource already exists")))

	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Failure(apperrors.Message(err, "invalid request")))

	case errors.Is(err, apperrors.ErrUpstreamFailure):
		c.AbortWithStatusJSON(http.StatusBadGateway, dto.Failure("upstream service failure"))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Failure("internal server error"))
	}
}
