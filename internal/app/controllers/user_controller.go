package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/app/services"
	"github.com/stellarion/backend/internal/middleware"
	"github.com/stellarion/backend/internal/pkg/apperrors"
)

// UserController handles account and settings operations.
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController.
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid "+name))
		return 0, false
	}
	return id, true
}

func queryInt(ctx *gin.Context, name string) int {
	v, _ := strconv.Atoi(ctx.Query(name))
	return v
}

// Detail returns the caller's full account view.
func (c *UserController) Detail(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	detail, err := c.userService.GetDetail(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(detail))
}

// UpdateProfile rewrites the caller's names and profile blobs.
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid profile payload: "+err.Error()))
		return
	}
	detail, err := c.userService.UpdateProfile(ctx.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(detail))
}

// Settings returns the caller's preferences.
func (c *UserController) Settings(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	settings, err := c.userService.GetSettings(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(settings))
}

// UpdateSettings merges the payload into the caller's preferences.
func (c *UserController) UpdateSettings(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}

	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid settings payload: "+err.Error()))
		return
	}
	settings, err := c.userService.UpdateSettings(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(settings))
}

// List returns one page of accounts. Admin and moderator only.
func (c *UserController) List(ctx *gin.Context) {
	resp, err := c.userService.List(ctx.Request.Context(), queryInt(ctx, "page"), queryInt(ctx, "limit"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// AssignRole sets an account's role. Admin only.
func (c *UserController) AssignRole(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.AssignRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid role payload: "+err.Error()))
		return
	}
	if err := c.userService.AssignRole(ctx.Request.Context(), userID, req.Role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessMessage("role updated"))
}

// SetActive toggles an account's active flag. Admin only.
func (c *UserController) SetActive(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid activation payload: "+err.Error()))
		return
	}
	if err := c.userService.SetActive(ctx.Request.Context(), userID, *req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessMessage("activation updated"))
}

// RequestRoleUpgrade files a pending upgrade request for the caller.
func (c *UserController) RequestRoleUpgrade(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}

	var req dto.RoleUpgradeRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid upgrade payload: "+err.Error()))
		return
	}
	resp, err := c.userService.RequestRoleUpgrade(ctx.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.Success(resp))
}

// MyRoleUpgrades lists the caller's upgrade requests.
func (c *UserController) MyRoleUpgrades(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	resp, err := c.userService.ListMyRoleUpgrades(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// ListRoleUpgrades lists upgrade requests for reviewers.
func (c *UserController) ListRoleUpgrades(ctx *gin.Context) {
	resp, err := c.userService.ListRoleUpgrades(ctx.Request.Context(),
		ctx.Query("status"), queryInt(ctx, "page"), queryInt(ctx, "limit"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// ReviewRoleUpgrade resolves a pending upgrade request.
func (c *UserController) ReviewRoleUpgrade(ctx *gin.Context) {
	reviewer, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	requestID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid review payload: "+err.Error()))
		return
	}
	if err := c.userService.ReviewRoleUpgrade(ctx.Request.Context(), requestID, reviewer.ID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessMessage("request resolved"))
}

// ExportData returns the caller's data as one JSON document.
func (c *UserController) ExportData(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	doc, err := c.userService.ExportData(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(doc))
}

// DeleteAccount removes the caller's account.
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	if err := c.userService.DeleteAccount(ctx.Request.Context(), user); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessMessage("account deleted"))
}
