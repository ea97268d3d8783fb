package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/app/services"
	"github.com/stellarion/backend/internal/middleware"
	"github.com/stellarion/backend/internal/pkg/apperrors"
)

// BlogController handles blog operations.
type BlogController struct {
	blogService services.BlogService
}

// NewBlogController creates a new BlogController.
func NewBlogController(blogService services.BlogService) *BlogController {
	return &BlogController{blogService: blogService}
}

// List returns one page of blogs.
// @Summary List blogs
// @Tags blogs
// @Produce json
// @Param status query string false "draft or published"
// @Param search query string false "match against title, content, excerpt"
// @Param tags query []string false "any-of tag filter"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse}
// @Router /blogs [get]
func (c *BlogController) List(ctx *gin.Context) {
	var filter dto.BlogFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid filter: "+err.Error()))
		return
	}
	resp, err := c.blogService.List(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// Get returns one blog and records the view.
func (c *BlogController) Get(ctx *gin.Context) {
	blogID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var viewerID *int64
	if user, ok := middleware.UserFrom(ctx); ok {
		viewerID = &user.ID
	}
	resp, err := c.blogService.Get(ctx.Request.Context(), blogID, viewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// Create inserts a post for the caller.
func (c *BlogController) Create(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}

	var req dto.CreateBlogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid blog payload: "+err.Error()))
		return
	}
	resp, err := c.blogService.Create(ctx.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.Success(resp))
}

// Update mutates a post.
func (c *BlogController) Update(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	blogID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateBlogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid blog payload: "+err.Error()))
		return
	}
	resp, err := c.blogService.Update(ctx.Request.Context(), user, blogID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// Delete removes a post.
func (c *BlogController) Delete(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	blogID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.blogService.Delete(ctx.Request.Context(), user, blogID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessMessage("blog deleted"))
}

// ToggleLike flips the caller's like.
func (c *BlogController) ToggleLike(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	blogID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.blogService.ToggleLike(ctx.Request.Context(), user.ID, blogID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// ListComments returns the blog's comment tree.
func (c *BlogController) ListComments(ctx *gin.Context) {
	blogID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.blogService.ListComments(ctx.Request.Context(), blogID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// AddComment appends a comment.
func (c *BlogController) AddComment(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	blogID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid comment payload: "+err.Error()))
		return
	}
	resp, err := c.blogService.AddComment(ctx.Request.Context(), user, blogID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.Success(resp))
}

// DeleteComment removes a comment and its replies.
func (c *BlogController) DeleteComment(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	blogID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(ctx, "commentId")
	if !ok {
		return
	}
	if err := c.blogService.DeleteComment(ctx.Request.Context(), user, blogID, commentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessMessage("comment deleted"))
}
