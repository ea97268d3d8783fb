package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/app/services"
	"github.com/stellarion/backend/internal/middleware"
	"github.com/stellarion/backend/internal/pkg/apperrors"
)

// NightCampController handles camp operations.
type NightCampController struct {
	campService services.NightCampService
}

// NewNightCampController creates a new NightCampController.
func NewNightCampController(campService services.NightCampService) *NightCampController {
	return &NightCampController{campService: campService}
}

// List returns one page of camps.
func (c *NightCampController) List(ctx *gin.Context) {
	resp, err := c.campService.List(ctx.Request.Context(), queryInt(ctx, "page"), queryInt(ctx, "limit"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// Get returns one camp.
func (c *NightCampController) Get(ctx *gin.Context) {
	campID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.campService.Get(ctx.Request.Context(), campID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// Create inserts a camp with its child collections.
func (c *NightCampController) Create(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}

	var req dto.CreateNightCampRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid camp payload: "+err.Error()))
		return
	}
	resp, err := c.campService.Create(ctx.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.Success(resp))
}

// Update mutates a camp and replaces the child collections present in the
// payload.
func (c *NightCampController) Update(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	campID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateNightCampRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid camp payload: "+err.Error()))
		return
	}
	resp, err := c.campService.Update(ctx.Request.Context(), user, campID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// Delete removes a camp.
func (c *NightCampController) Delete(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	campID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.campService.Delete(ctx.Request.Context(), user, campID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessMessage("camp deleted"))
}
