package models

import "time"

// PaymentStatus is the gateway-driven lifecycle of a payment row.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// IsValid reports whether s is a known payment status.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

// Payment is created pending when a checkout is initiated. OrderID is the
// uuid sent to the gateway and echoed back in the notification; it is the
// only key the webhook can address the row by.
type Payment struct {
	ID               int64
	OrderID          string
	UserID           int64
	Plan             Plan
	Amount           float64
	Currency         string
	Status           PaymentStatus
	GatewayPaymentID *string
	SubscriptionID   *int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Subscription is one entitlement window granted to an account, spawned by
// a completed payment or by an explicit downgrade to the free tier.
type Subscription struct {
	ID        int64
	UserID    int64
	Plan      Plan
	Status    SubscriptionStatus
	StartDate time.Time
	EndDate   *time.Time
	PaymentID *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubscriptionPlan is a catalog row describing a purchasable tier.
type SubscriptionPlan struct {
	ID          int64
	Plan        Plan
	Name        string
	Description string
	Price       float64
	Currency    string
	Features    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
