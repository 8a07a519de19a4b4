package request

import (
	"strings"
	"time"
)

type CreateBookingRequest struct {
	CarID   string    `json:"car_id" binding:"required"`
	StartAt time.Time `json:"start_at" binding:"required"`
	EndAt   time.Time `json:"end_at" binding:"required"`
	Note    *string   `json:"note,omitempty"`
}

func (r CreateBookingRequest) GetNote() string {
	if r.Note == nil {
		return ""
	}
	return strings.TrimSpace(*r.Note)
}

type OverridePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}
