package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HMACVerifier authenticates gateway callbacks. The provider signs
// "orderRef|paymentRef" with the shared secret; comparison is constant time.
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Sign(orderRef, paymentRef string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderRef + "|" + paymentRef))
	return hex.EncodeToString(mac.Sum(nil))
}

func (v *HMACVerifier) Verify(orderRef, paymentRef, signature string) bool {
	want, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderRef + "|" + paymentRef))
	return hmac.Equal(mac.Sum(nil), want)
}
