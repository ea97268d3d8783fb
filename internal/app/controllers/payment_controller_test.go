package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/pkg/apperrors"
	"github.com/stellarion/backend/internal/pkg/payhere"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubPaymentService struct {
	notifyErr error
	received  payhere.Notification
}

func (s *stubPaymentService) InitiateCheckout(context.Context, *models.User, string) (*dto.CheckoutResponse, error) {
	return nil, apperrors.ErrBadRequest
}

func (s *stubPaymentService) HandleNotification(_ context.Context, n payhere.Notification) error {
	s.received = n
	return s.notifyErr
}

func (s *stubPaymentService) History(context.Context, int64) ([]dto.PaymentResponse, error) {
	return nil, nil
}

func postNotify(svc *stubPaymentService, form url.Values) *httptest.ResponseRecorder {
	ctrl := NewPaymentController(svc, zerolog.Nop())
	router := gin.New()
	router.POST("/payments/payhere/notify", ctrl.Notify)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/payhere/notify",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func TestNotifyAcknowledgesValidNotification(t *testing.T) {
	svc := &stubPaymentService{}

	form := url.Values{}
	form.Set("merchant_id", "1211149")
	form.Set("order_id", "order-1")
	form.Set("payment_id", "320032")
	form.Set("payhere_amount", "990.00")
	form.Set("payhere_currency", "LKR")
	form.Set("status_code", "2")
	form.Set("md5sig", "ABCDEF")

	w := postNotify(svc, form)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.Equal(t, "order-1", svc.received.OrderID)
	assert.Equal(t, "990.00", svc.received.Amount)
	assert.Equal(t, "2", svc.received.StatusCode)
}

func TestNotifyRejectsBadSignatureWithBareText(t *testing.T) {
	svc := &stubPaymentService{notifyErr: apperrors.ErrInvalidSignature}

	form := url.Values{}
	form.Set("merchant_id", "1211149")
	form.Set("order_id", "order-1")
	form.Set("md5sig", "WRONG")

	w := postNotify(svc, form)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid signature", w.Body.String())
	assert.NotContains(t, w.Header().Get("Content-Type"), "application/json")
}
