package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/app/services"
	"github.com/stellarion/backend/internal/middleware"
	"github.com/stellarion/backend/internal/pkg/apperrors"
)

// SubscriptionController handles plan and subscription reads.
type SubscriptionController struct {
	subService services.SubscriptionService
}

// NewSubscriptionController creates a new SubscriptionController.
func NewSubscriptionController(subService services.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{subService: subService}
}

// Plans returns the purchasable catalog.
func (c *SubscriptionController) Plans(ctx *gin.Context) {
	resp, err := c.subService.Plans(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// Current returns the caller's active subscription view.
func (c *SubscriptionController) Current(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	resp, err := c.subService.Current(ctx.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// History returns the caller's subscriptions.
func (c *SubscriptionController) History(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	resp, err := c.subService.History(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// Cancel downgrades the caller to the free tier.
func (c *SubscriptionController) Cancel(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	if err := c.subService.Cancel(ctx.Request.Context(), user); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessMessage("subscription cancelled"))
}
