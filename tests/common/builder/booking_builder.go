//go:build unit || e2e

package builder

import (
	"time"

	dombooking "wheelshare/internal/domain/booking"
	"wheelshare/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingBuilder reconstructs bookings in arbitrary lifecycle states so state
// machine tests do not have to walk every transition to reach their starting
// point.
type BookingBuilder struct {
	ID               uuid.UUID
	CarID            uuid.UUID
	CarBrand         string
	CarModel         string
	RenterID         uuid.UUID
	OwnerID          uuid.UUID
	StartAt          time.Time
	EndAt            time.Time
	TotalAmountCents int64
	Status           dombooking.Status
	PaymentStatus    dombooking.PaymentStatus
	AmountPaidCents  int64
	OrderRef         *string
	PaymentRef       *string
	RefundRef        *string
	Note             string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ConfirmedAt      *time.Time
	CancelledAt      *time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now().Truncate(time.Second)
	start := now.Add(72 * time.Hour)
	return &BookingBuilder{
		ID:               uuid.New(),
		CarID:            uuid.New(),
		CarBrand:         "Toyota",
		CarModel:         "Corolla",
		RenterID:         uuid.New(),
		OwnerID:          uuid.New(),
		StartAt:          start,
		EndAt:            start.Add(72 * time.Hour),
		TotalAmountCents: 15_000_00,
		Status:           dombooking.StatusPaymentPending,
		PaymentStatus:    dombooking.PaymentPending,
		AmountPaidCents:  0,
		Note:             "",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	period, err := dombooking.NewPeriod(b.StartAt, b.EndAt)
	if err != nil {
		return nil, err
	}
	total, err := dombooking.NewMoney(b.TotalAmountCents)
	if err != nil {
		return nil, err
	}
	paid, err := dombooking.NewMoney(b.AmountPaidCents)
	if err != nil {
		return nil, err
	}

	return dombooking.ReconstructBooking(
		b.ID, b.CarID, b.RenterID, b.OwnerID,
		period, total,
		b.Status, b.PaymentStatus, paid,
		b.OrderRef, b.PaymentRef, b.RefundRef, b.Note,
		b.CreatedAt, b.UpdatedAt, b.ConfirmedAt, b.CancelledAt,
	), nil
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	period, _ := dombooking.NewPeriod(b.StartAt, b.EndAt)
	note := b.Note
	return &queries.BookingView{
		ID:               b.ID,
		CarID:            b.CarID,
		CarBrand:         b.CarBrand,
		CarModel:         b.CarModel,
		RenterID:         b.RenterID,
		OwnerID:          b.OwnerID,
		StartAt:          b.StartAt,
		EndAt:            b.EndAt,
		TotalDays:        period.Days(),
		TotalAmountCents: b.TotalAmountCents,
		Status:           b.Status.String(),
		PaymentStatus:    b.PaymentStatus.String(),
		AmountPaidCents:  b.AmountPaidCents,
		OrderRef:         b.OrderRef,
		PaymentRef:       b.PaymentRef,
		RefundRef:        b.RefundRef,
		Note:             &note,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
		ConfirmedAt:      b.ConfirmedAt,
		CancelledAt:      b.CancelledAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:               b.ID,
		CarID:            b.CarID,
		CarBrand:         b.CarBrand,
		CarModel:         b.CarModel,
		StartAt:          b.StartAt,
		EndAt:            b.EndAt,
		TotalAmountCents: b.TotalAmountCents,
		Status:           b.Status.String(),
		PaymentStatus:    b.PaymentStatus.String(),
		CreatedAt:        b.CreatedAt,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithRenterID(id uuid.UUID) *BookingBuilder {
	b.RenterID = id
	return b
}

func (b *BookingBuilder) WithOwnerID(id uuid.UUID) *BookingBuilder {
	b.OwnerID = id
	return b
}

func (b *BookingBuilder) WithPeriod(start, end time.Time) *BookingBuilder {
	b.StartAt = start
	b.EndAt = end
	return b
}

func (b *BookingBuilder) WithStatus(s dombooking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithCreatedAt(t time.Time) *BookingBuilder {
	b.CreatedAt = t
	return b
}

// AsPaid moves the builder to the state after a verified payment.
func (b *BookingBuilder) AsPaid() *BookingBuilder {
	order := "order_" + uuid.NewString()[:8]
	pay := "pay_" + uuid.NewString()[:8]
	b.Status = dombooking.StatusPaymentConfirmed
	b.PaymentStatus = dombooking.PaymentPaid
	b.AmountPaidCents = b.TotalAmountCents
	b.OrderRef = &order
	b.PaymentRef = &pay
	return b
}

// AsConfirmed moves the builder to the state after the owner accepted.
func (b *BookingBuilder) AsConfirmed() *BookingBuilder {
	b.AsPaid()
	confirmedAt := b.CreatedAt.Add(time.Hour)
	b.Status = dombooking.StatusConfirmed
	b.ConfirmedAt = &confirmedAt
	return b
}

func (b *BookingBuilder) AsCancelled() *BookingBuilder {
	cancelledAt := b.CreatedAt.Add(time.Hour)
	b.Status = dombooking.StatusCancelled
	b.CancelledAt = &cancelledAt
	return b
}

func (b *BookingBuilder) WithOrderRef(ref string) *BookingBuilder {
	b.OrderRef = &ref
	return b
}
