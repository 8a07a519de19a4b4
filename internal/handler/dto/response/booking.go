package response

import (
	"time"

	"wheelshare/internal/pkg/opaqueid"
	"wheelshare/internal/usecase/queries"
)

type BookingResponse struct {
	ID               string     `json:"id"`
	CarID            string     `json:"carId"`
	CarBrand         string     `json:"carBrand"`
	CarModel         string     `json:"carModel"`
	StartAt          time.Time  `json:"startAt"`
	EndAt            time.Time  `json:"endAt"`
	TotalDays        int        `json:"totalDays"`
	TotalAmountCents int64      `json:"totalAmountCents"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"paymentStatus"`
	AmountPaidCents  int64      `json:"amountPaidCents"`
	OrderRef         *string    `json:"orderRef,omitempty"`
	RefundRef        *string    `json:"refundRef,omitempty"`
	Note             *string    `json:"note,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	ConfirmedAt      *time.Time `json:"confirmedAt,omitempty"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`
}

type BookingListResponse struct {
	ID               string    `json:"id"`
	CarID            string    `json:"carId"`
	CarBrand         string    `json:"carBrand"`
	CarModel         string    `json:"carModel"`
	StartAt          time.Time `json:"startAt"`
	EndAt            time.Time `json:"endAt"`
	TotalAmountCents int64     `json:"totalAmountCents"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"paymentStatus"`
	CreatedAt        time.Time `json:"createdAt"`
}

// FromBookingView encodes internal UUIDs into opaque tokens on the way out.
// The payment reference stays internal; clients only ever see their order and
// refund references.
func FromBookingView(codec *opaqueid.Codec, rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:               codec.Encode(rm.ID),
		CarID:            codec.Encode(rm.CarID),
		CarBrand:         rm.CarBrand,
		CarModel:         rm.CarModel,
		StartAt:          rm.StartAt,
		EndAt:            rm.EndAt,
		TotalDays:        rm.TotalDays,
		TotalAmountCents: rm.TotalAmountCents,
		Status:           rm.Status,
		PaymentStatus:    rm.PaymentStatus,
		AmountPaidCents:  rm.AmountPaidCents,
		OrderRef:         rm.OrderRef,
		RefundRef:        rm.RefundRef,
		Note:             rm.Note,
		CreatedAt:        rm.CreatedAt,
		ConfirmedAt:      rm.ConfirmedAt,
		CancelledAt:      rm.CancelledAt,
	}
}

func FromBookingListItem(codec *opaqueid.Codec, rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:               codec.Encode(rm.ID),
		CarID:            codec.Encode(rm.CarID),
		CarBrand:         rm.CarBrand,
		CarModel:         rm.CarModel,
		StartAt:          rm.StartAt,
		EndAt:            rm.EndAt,
		TotalAmountCents: rm.TotalAmountCents,
		Status:           rm.Status,
		PaymentStatus:    rm.PaymentStatus,
		CreatedAt:        rm.CreatedAt,
	}
}

type CancelBookingResponse struct {
	Booking      *BookingResponse `json:"booking"`
	RefundIssued bool             `json:"refundIssued"`
	RefundRef    *string          `json:"refundRef,omitempty"`
}
