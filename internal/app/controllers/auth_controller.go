package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/app/services"
	"github.com/stellarion/backend/internal/middleware"
	"github.com/stellarion/backend/internal/pkg/apperrors"
)

// AuthController handles identity operations.
type AuthController struct {
	authService services.AuthService
	userService services.UserService
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService services.AuthService, userService services.UserService) *AuthController {
	return &AuthController{authService: authService, userService: userService}
}

// Signup registers a new account and signs it in.
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup payload"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse}
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid signup payload: "+err.Error()))
		return
	}

	resp, err := c.authService.Signup(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.Success(resp))
}

// Signin exchanges credentials for a bearer token.
func (c *AuthController) Signin(ctx *gin.Context) {
	var req dto.SigninRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid signin payload: "+err.Error()))
		return
	}

	resp, err := c.authService.Signin(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// Signout revokes the presented token.
func (c *AuthController) Signout(ctx *gin.Context) {
	claims, ok := middleware.ClaimsFrom(ctx)
	if !ok {
		// Dev-fixture sessions carry no token to revoke.
		ctx.JSON(http.StatusOK, dto.SuccessMessage("signed out"))
		return
	}
	if err := c.authService.Signout(ctx.Request.Context(), claims); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessMessage("signed out"))
}

// Profile returns the caller's account view.
func (c *AuthController) Profile(ctx *gin.Context) {
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

// ChangePassword rotates the caller's password.
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid password payload: "+err.Error()))
		return
	}
	if err := c.authService.ChangePassword(ctx.Request.Context(), user.AuthUID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessMessage("password updated"))
}

// Verify confirms that the presented token is valid. The middleware has
// already done the work by the time this handler runs.
func (c *AuthController) Verify(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(dto.NewUserResponse(user)))
}
