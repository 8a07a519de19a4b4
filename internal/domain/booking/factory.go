package booking

import (
	"wheelshare/internal/domain/car"
	"wheelshare/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

// NewBooking creates a reservation in PAYMENT_PENDING: a tentative hold on
// the vehicle until payment completes. The overlap check against other
// bookings happens in the same transaction as the insert, outside the
// factory.
func (f *Factory) NewBooking(
	c *car.Car,
	renterID uuid.UUID,
	period Period,
	note string,
) (*Booking, error) {
	if !c.Bookable() {
		return nil, ErrVehicleNotListed
	}

	now := f.Clock.Now()
	if period.Start().Before(now) {
		return nil, ErrPeriodInPast
	}

	total, err := NewMoney(f.PriceCalculator.CalculatePriceCents(c, period))
	if err != nil {
		return nil, err
	}

	return &Booking{
		id:            uuid.New(),
		carID:         c.ID(),
		renterID:      renterID,
		ownerID:       c.OwnerID(),
		period:        period,
		totalAmount:   total,
		status:        StatusPaymentPending,
		paymentStatus: PaymentPending,
		amountPaid:    Money{},
		note:          note,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}
