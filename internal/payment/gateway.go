// Package payment models the payment processor as a capability: authorize an
// amount, then capture it. The order core never inspects a gateway's
// internals and never branches on payment-method strings.
package payment

import (
	"context"
	"errors"
)

var (
	ErrDeclined      = errors.New("payment declined")
	ErrInvalidAmount = errors.New("payment amount must be positive")
)

// Authorization is the gateway's reference for a pending payment.
type Authorization struct {
	OrderRef string  `json:"orderRef"`
	Amount   float64 `json:"amount"`
	Method   string  `json:"method"`
}

// Receipt is the proof of a captured payment.
type Receipt struct {
	PaymentID string `json:"paymentId"`
	OrderRef  string `json:"orderRef"`
}

// Gateway is implemented by the mock adapter and, in production, by an
// adapter for a live processor. Swapping implementations must not change
// the order flow.
type Gateway interface {
	Authorize(ctx context.Context, amount float64, method string) (Authorization, error)
	Capture(ctx context.Context, orderRef string) (Receipt, error)
}
