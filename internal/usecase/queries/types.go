package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID               uuid.UUID  `json:"id"`
	CarID            uuid.UUID  `json:"car_id"`
	CarBrand         string     `json:"car_brand"`
	CarModel         string     `json:"car_model"`
	RenterID         uuid.UUID  `json:"renter_id"`
	OwnerID          uuid.UUID  `json:"owner_id"`
	StartAt          time.Time  `json:"start_at"`
	EndAt            time.Time  `json:"end_at"`
	TotalDays        int        `json:"total_days"`
	TotalAmountCents int64      `json:"total_amount_cents"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"payment_status"`
	AmountPaidCents  int64      `json:"amount_paid_cents"`
	OrderRef         *string    `json:"order_ref,omitempty"`
	PaymentRef       *string    `json:"payment_ref,omitempty"`
	RefundRef        *string    `json:"refund_ref,omitempty"`
	Note             *string    `json:"note,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	ConfirmedAt      *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
}

type BookingListItem struct {
	ID               uuid.UUID `json:"id"`
	CarID            uuid.UUID `json:"car_id"`
	CarBrand         string    `json:"car_brand"`
	CarModel         string    `json:"car_model"`
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"payment_status"`
	CreatedAt        time.Time `json:"created_at"`
}

type CarView struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	Brand          string    `json:"brand"`
	Model          string    `json:"model"`
	DailyRateCents int64     `json:"daily_rate_cents"`
	Listed         bool      `json:"listed"`
	AvailableNow   bool      `json:"available_now"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
