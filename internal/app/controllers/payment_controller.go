package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/app/services"
	"github.com/stellarion/backend/internal/middleware"
	"github.com/stellarion/backend/internal/pkg/apperrors"
	"github.com/stellarion/backend/internal/pkg/payhere"
)

// PaymentController handles checkout initiation, payment history, and the
// gateway notification webhook.
type PaymentController struct {
	paymentService services.PaymentService
	logger         zerolog.Logger
}

// NewPaymentController creates a new PaymentController.
func NewPaymentController(paymentService services.PaymentService, logger zerolog.Logger) *PaymentController {
	return &PaymentController{paymentService: paymentService, logger: logger}
}

// Checkout creates a pending payment and returns the signed redirect
// parameters.
func (c *PaymentController) Checkout(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}

	var req dto.InitiateCheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure("invalid checkout payload: "+err.Error()))
		return
	}
	resp, err := c.paymentService.InitiateCheckout(ctx.Request.Context(), user, req.Plan)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.Success(resp))
}

// History returns the caller's payments.
func (c *PaymentController) History(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCredential)
		return
	}
	resp, err := c.paymentService.History(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(resp))
}

// Notify is the unauthenticated gateway webhook. A bad signature answers
// with bare text, matching the gateway's expected contract, and mutates
// nothing.
func (c *PaymentController) Notify(ctx *gin.Context) {
	n := payhere.Notification{
		MerchantID: ctx.PostForm("merchant_id"),
		OrderID:    ctx.PostForm("order_id"),
		PaymentID:  ctx.PostForm("payment_id"),
		Amount:     ctx.PostForm("payhere_amount"),
		Currency:   ctx.PostForm("payhere_currency"),
		StatusCode: ctx.PostForm("status_code"),
		MD5Sig:     ctx.PostForm("md5sig"),
	}

	err := c.paymentService.HandleNotification(ctx.Request.Context(), n)
	if err != nil {
		if err == apperrors.ErrInvalidSignature {
			c.logger.Warn().Str("orderId", n.OrderID).Msg("Rejected notification with bad signature")
			ctx.String(http.StatusBadRequest, "invalid signature")
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.String(http.StatusOK, "ok")
}
