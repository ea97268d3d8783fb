package controllers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/app/services"
	"github.com/stellarion/backend/internal/middleware"
	"github.com/stellarion/backend/internal/pkg/apperrors"
)

// ApplicationController handles one application family. Three instances
// are registered, one per type, sharing the same handler code.
type ApplicationController struct {
	appType    models.ApplicationType
	appService services.ApplicationService
}

// NewApplicationController creates a controller bound to one application
// type.
func NewApplicationController(appType models.ApplicationType, appService services.ApplicationService) *ApplicationController {
	return &ApplicationController{appType: appType, appService: appService}
}

// Submit files a new application. Accepts either a JSON body or a
// multipart form with document uploads.
func (c *ApplicationController) Submit(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}

	var req dto.SubmitApplicationRequest
	files := map[string]*multipart.FileHeader{}

	if strings.HasPrefix(ctx.ContentType(), "multipart/form-data") {
		if err := ctx.ShouldBind(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Failure("invalid application payload: "+err.Error()))
			return
		}
		if details := ctx.PostForm("details"); details != "" {
			req.Details = json.RawMessage(details)
		}
		form, err := ctx.MultipartForm()
		if err == nil {
			for field, headers := range form.File {
				if len(headers) > 0 {
					files[field] = headers[0]
				}
			}
		}
	} else if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid application payload: "+err.Error()))
		return
	}

	resp, err := c.appService.Submit(ctx.Request.Context(), c.appType, user, &req, files)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.Success(resp))
}

// Mine returns the caller's active application.
func (c *ApplicationController) Mine(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	resp, err := c.appService.GetMine(ctx.Request.Context(), c.appType, user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// List returns one page of applications for reviewers.
func (c *ApplicationController) List(ctx *gin.Context) {
	resp, err := c.appService.List(ctx.Request.Context(), c.appType,
		ctx.Query("status"), queryInt(ctx, "page"), queryInt(ctx, "limit"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// Review resolves a pending application.
func (c *ApplicationController) Review(ctx *gin.Context) {
	reviewer, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	applicationID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid review payload: "+err.Error()))
		return
	}
	if err := c.appService.Review(ctx.Request.Context(), c.appType, applicationID, reviewer.ID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessMessage("application resolved"))
}

// Withdraw soft-deletes the caller's application.
func (c *ApplicationController) Withdraw(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	applicationID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.appService.Withdraw(ctx.Request.Context(), c.appType, applicationID, user.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessMessage("application withdrawn"))
}
