package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/app/services"
	"github.com/stellarion/backend/internal/middleware"
	"github.com/stellarion/backend/internal/pkg/apperrors"
)

// ChatbotController handles the chatbot proxy.
type ChatbotController struct {
	chatbotService services.ChatbotService
}

// NewChatbotController creates a new ChatbotController.
func NewChatbotController(chatbotService services.ChatbotService) *ChatbotController {
	return &ChatbotController{chatbotService: chatbotService}
}

// Status reports the caller's quota without consuming it.
func (c *ChatbotController) Status(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	resp, err := c.chatbotService.Status(ctx.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// Chat forwards one question and returns the reply with the updated quota.
func (c *ChatbotController) Chat(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}

	var req dto.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid chat payload: "+err.Error()))
		return
	}
	resp, err := c.chatbotService.Chat(ctx.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}
