package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// RazorpaySignature computes the hex-encoded HMAC-SHA256 digest Razorpay
// documents for checkout callbacks: the key is the account secret and the
// message is "<order_id>|<payment_id>". The concatenation order and the pipe
// delimiter must not change; the gateway signs exactly this string.
func RazorpaySignature(orderID, paymentID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyRazorpaySignature reports whether signature matches the expected
// digest for the order/payment pair. Comparison is constant time.
func VerifyRazorpaySignature(orderID, paymentID, signature, secret string) bool {
	expected := RazorpaySignature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
