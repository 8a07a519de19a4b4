package commands

import "context"

// PaymentGateway is the outbound port to the payment provider. Calls happen
// outside database transactions; the caller re-locks the booking afterwards
// to persist the outcome.
type PaymentGateway interface {
	// CreateOrder registers a payable order for the given amount and returns
	// the provider's order reference.
	CreateOrder(ctx context.Context, amountCents int64, currency string, receipt string) (orderRef string, err error)
	// Refund reverses a captured payment and returns the provider's refund
	// reference.
	Refund(ctx context.Context, paymentRef string, amountCents int64) (refundRef string, err error)
}

// SignatureVerifier checks the provider callback signature binding an order
// reference to a payment reference.
type SignatureVerifier interface {
	Verify(orderRef, paymentRef, signature string) bool
}
