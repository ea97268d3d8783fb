package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/app/services"
	"github.com/stellarion/backend/internal/middleware"
)

// NASAController serves the opportunity catalog.
type NASAController struct {
	nasaService services.NASAService
}

// NewNASAController creates a new NASAController.
func NewNASAController(nasaService services.NASAService) *NASAController {
	return &NASAController{nasaService: nasaService}
}

// List returns one page of opportunities.
func (c *NASAController) List(ctx *gin.Context) {
	resp, err := c.nasaService.List(ctx.Request.Context(),
		ctx.Query("category"), ctx.Query("search"), queryInt(ctx, "page"), queryInt(ctx, "limit"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// Get returns one opportunity.
func (c *NASAController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.nasaService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}
