package request

type CreateOrderRequest struct {
	BookingID   string `json:"booking_id" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required"`
	Currency    string `json:"currency,omitempty"`
}

// VerifyPaymentRequest carries the gateway callback relayed by the client
// after checkout. The signature binds the order to the payment.
type VerifyPaymentRequest struct {
	BookingID  string `json:"booking_id" binding:"required"`
	OrderRef   string `json:"order_ref" binding:"required"`
	PaymentRef string `json:"payment_ref" binding:"required"`
	Signature  string `json:"signature" binding:"required"`
}
