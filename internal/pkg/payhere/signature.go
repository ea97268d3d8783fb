// Package payhere implements the PayHere gateway's keyed-digest contracts:
// the checkout hash sent with a redirect and the md5sig carried by the
// server-to-server notification.
package payhere

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/pkg/apperrors"
)

// Verifier holds the decoded merchant credentials.
type Verifier struct {
	merchantID string
	secret     string
}

// NewVerifier decodes the merchant secret from its base64 transport
// encoding. A secret that does not decode is a configuration error.
func NewVerifier(merchantID, encodedSecret string) (*Verifier, error) {
	raw, err := base64.StdEncoding.DecodeString(encodedSecret)
	if err != nil {
		return nil, fmt.Errorf("merchant secret is not valid base64: %w", err)
	}
	return &Verifier{merchantID: merchantID, secret: string(raw)}, nil
}

// MerchantID returns the configured merchant id.
func (v *Verifier) MerchantID() string { return v.merchantID }

func md5Upper(s string) string {
	sum := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// CheckoutHash computes the hash included in the redirect parameters:
// UPPER(MD5(merchant_id + order_id + amount + currency + UPPER(MD5(secret)))).
func (v *Verifier) CheckoutHash(orderID string, amount float64, currency string) string {
	payload := v.merchantID + orderID + fmt.Sprintf("%.2f", amount) + currency + md5Upper(v.secret)
	return md5Upper(payload)
}

// NotifySignature computes the expected md5sig for a notification:
// UPPER(MD5(merchant_id + order_id + amount + currency + status_code +
// UPPER(MD5(secret)))).
func (v *Verifier) NotifySignature(orderID string, amount, currency, statusCode string) string {
	payload := v.merchantID + orderID + amount + currency + statusCode + md5Upper(v.secret)
	return md5Upper(payload)
}

// Notification is the parsed webhook form.
type Notification struct {
	MerchantID string
	OrderID    string
	PaymentID  string
	Amount     string
	Currency   string
	StatusCode string
	MD5Sig     string
}

// Verify checks the notification's signature byte for byte. It fails
// closed: any mismatch, including a wrong merchant id, yields
// ErrInvalidSignature.
func (v *Verifier) Verify(n Notification) error {
	if n.MerchantID != v.merchantID {
		return apperrors.ErrInvalidSignature
	}
	expected := v.NotifySignature(n.OrderID, n.Amount, n.Currency, n.StatusCode)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(n.MD5Sig)) != 1 {
		return apperrors.ErrInvalidSignature
	}
	return nil
}

// MapStatusCode maps a gateway status code to a payment status. Codes
// other than the two recognized ones map to failed.
func MapStatusCode(code string) models.PaymentStatus {
	switch code {
	case "2":
		return models.PaymentCompleted
	case "0":
		return models.PaymentPending
	default:
		return models.PaymentFailed
	}
}
