package payhere

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/pkg/apperrors"
)

const testMerchantID = "1211149"

func newTestVerifier(t *testing.T, rawSecret string) *Verifier {
	t.Helper()
	v, err := NewVerifier(testMerchantID, base64.StdEncoding.EncodeToString([]byte(rawSecret)))
	require.NoError(t, err)
	return v
}

func referenceDigest(parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, "")))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func TestNewVerifierRejectsBadSecret(t *testing.T) {
	_, err := NewVerifier(testMerchantID, "not base64 !!!")
	assert.Error(t, err)
}

func TestCheckoutHash(t *testing.T) {
	v := newTestVerifier(t, "merchant-secret")

	got := v.CheckoutHash("order-1", 990, "LKR")

	inner := referenceDigest("merchant-secret")
	want := referenceDigest(testMerchantID, "order-1", "990.00", "LKR", inner)
	assert.Equal(t, want, got)
}

func TestVerifyAcceptsMatchingSignature(t *testing.T) {
	v := newTestVerifier(t, "merchant-secret")

	n := Notification{
		MerchantID: testMerchantID,
		OrderID:    "order-1",
		Amount:     "990.00",
		Currency:   "LKR",
		StatusCode: "2",
	}
	n.MD5Sig = v.NotifySignature(n.OrderID, n.Amount, n.Currency, n.StatusCode)

	assert.NoError(t, v.Verify(n))
}

func TestVerifyRejectsTamperedFields(t *testing.T) {
	v := newTestVerifier(t, "merchant-secret")

	base := Notification{
		MerchantID: testMerchantID,
		OrderID:    "order-1",
		Amount:     "990.00",
		Currency:   "LKR",
		StatusCode: "2",
	}
	base.MD5Sig = v.NotifySignature(base.OrderID, base.Amount, base.Currency, base.StatusCode)

	tampered := base
	tampered.Amount = "0.01"
	assert.ErrorIs(t, v.Verify(tampered), apperrors.ErrInvalidSignature)

	tampered = base
	tampered.StatusCode = "0"
	assert.ErrorIs(t, v.Verify(tampered), apperrors.ErrInvalidSignature)

	tampered = base
	tampered.MerchantID = "999999"
	assert.ErrorIs(t, v.Verify(tampered), apperrors.ErrInvalidSignature)

	tampered = base
	tampered.MD5Sig = strings.ToLower(base.MD5Sig[:31]) + "0"
	assert.ErrorIs(t, v.Verify(tampered), apperrors.ErrInvalidSignature)
}

func TestMapStatusCode(t *testing.T) {
	assert.Equal(t, models.PaymentCompleted, MapStatusCode("2"))
	assert.Equal(t, models.PaymentPending, MapStatusCode("0"))
	assert.Equal(t, models.PaymentFailed, MapStatusCode("-1"))
	assert.Equal(t, models.PaymentFailed, MapStatusCode("-2"))
	assert.Equal(t, models.PaymentFailed, MapStatusCode(""))
}
