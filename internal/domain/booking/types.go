package booking

// Status is the single canonical booking lifecycle vocabulary. CANCELLED and
// COMPLETED are terminal.
type Status string

const (
	StatusCreated          Status = "CREATED"
	StatusPaymentPending   Status = "PAYMENT_PENDING"
	StatusPaymentConfirmed Status = "PAYMENT_CONFIRMED"
	StatusConfirmed        Status = "CONFIRMED"
	StatusCancelled        Status = "CANCELLED"
	StatusCompleted        Status = "COMPLETED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusPaymentPending, StatusPaymentConfirmed,
		StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// HoldsVehicle reports whether a booking in this status blocks overlapping
// bookings. PAYMENT_PENDING counts as a tentative hold so a vehicle cannot be
// double-booked while payment is in flight.
func (s Status) HoldsVehicle() bool {
	return !s.IsTerminal()
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	default:
		return false
	}
}
