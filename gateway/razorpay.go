package gateway

import (
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Order is the subset of a gateway order the registration flow cares about.
// Amount is in the smallest currency unit (paise for INR).
type Order struct {
	ID       string
	Amount   int64
	Currency string
}

// OrderIssuer mints a payment order on the external gateway. The notes map is
// opaque metadata echoed back by the gateway on its dashboard and webhooks.
type OrderIssuer interface {
	CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*Order, error)
}

// RazorpayIssuer implements OrderIssuer over the Razorpay Orders API
type RazorpayIssuer struct {
	client *razorpay.Client
}

// NewRazorpayIssuer creates an issuer bound to one Razorpay account
func NewRazorpayIssuer(keyID, keySecret string) *RazorpayIssuer {
	return &RazorpayIssuer{
		client: razorpay.NewClient(keyID, keySecret),
	}
}

// CreateOrder creates a Razorpay order and returns its id along with the
// amount and currency the gateway echoed back
func (r *RazorpayIssuer) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*Order, error) {
	orderData := map[string]interface{}{
		"amount":          amount,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	if len(notes) > 0 {
		orderData["notes"] = notes
	}

	rzOrder, err := r.client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create failed: %w", err)
	}

	order := &Order{
		ID:       fmt.Sprintf("%v", rzOrder["id"]),
		Amount:   amount,
		Currency: currency,
	}
	// Trust the gateway's echoed values when present
	if v, ok := rzOrder["amount"].(float64); ok {
		order.Amount = int64(v)
	}
	if v, ok := rzOrder["currency"].(string); ok {
		order.Currency = v
	}
	return order, nil
}
