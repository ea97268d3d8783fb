package dto

import (
	"time"

	"github.com/stellarion/backend/internal/app/models"
)

// InitiateCheckoutRequest starts a gateway checkout for a paid plan.
type InitiateCheckoutRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// CheckoutResponse carries the signed redirect parameters the client posts
// to the gateway.
type CheckoutResponse struct {
	CheckoutURL string            `json:"checkoutUrl"`
	OrderID     string            `json:"orderId"`
	Params      map[string]string `json:"params"`
}

// PaymentResponse is the history view of one payment.
type PaymentResponse struct {
	ID        int64   `json:"id"`
	OrderID   string  `json:"orderId"`
	Plan      string  `json:"plan"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

// NewPaymentResponse maps a payment model to its view.
func NewPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Plan:      string(p.Plan),
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

// SubscriptionResponse is the view of one entitlement window.
type SubscriptionResponse struct {
	ID        int64   `json:"id"`
	Plan      string  `json:"plan"`
	Status    string  `json:"status"`
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate,omitempty"`
}

// NewSubscriptionResponse maps a subscription model to its view.
func NewSubscriptionResponse(s *models.Subscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		ID:        s.ID,
		Plan:      string(s.Plan),
		Status:    string(s.Status),
		StartDate: s.StartDate.Format(time.RFC3339),
	}
	if s.EndDate != nil {
		e := s.EndDate.Format(time.RFC3339)
		resp.EndDate = &e
	}
	return resp
}

// PlanResponse is the catalog view of a purchasable tier.
type PlanResponse struct {
	Plan        string   `json:"plan"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Features    []string `json:"features"`
}
