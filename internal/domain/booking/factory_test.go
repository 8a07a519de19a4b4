//go:build unit

package booking_test

import (
	"testing"
	"time"

	"wheelshare/internal/domain/booking"
	"wheelshare/internal/pkg/clock"
	"wheelshare/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFactory(now time.Time) *booking.Factory {
	return booking.NewFactory(clock.NewMockClock(now), booking.NewDailyRateCalculator())
}

func TestFactoryNewBooking(t *testing.T) {
	now := base
	renterID := uuid.New()

	t.Run("creates a pending hold priced per day", func(t *testing.T) {
		c := builder.NewCarBuilder().WithDailyRateCents(1000).BuildDomain()
		period := mustPeriod(t, now.Add(24*time.Hour), now.Add(96*time.Hour))

		b, err := newFactory(now).NewBooking(c, renterID, period, "weekend trip")
		require.NoError(t, err)

		assert.Equal(t, c.ID(), b.CarID())
		assert.Equal(t, c.OwnerID(), b.OwnerID())
		assert.Equal(t, renterID, b.RenterID())
		assert.Equal(t, booking.StatusPaymentPending, b.Status())
		assert.Equal(t, booking.PaymentPending, b.PaymentStatus())
		assert.Equal(t, int64(3000), b.TotalAmount().Cents())
		assert.True(t, b.AmountPaid().IsZero())
		assert.Equal(t, "weekend trip", b.Note())
	})

	t.Run("partial day bills a full day", func(t *testing.T) {
		c := builder.NewCarBuilder().WithDailyRateCents(1000).BuildDomain()
		period := mustPeriod(t, now.Add(24*time.Hour), now.Add(49*time.Hour))

		b, err := newFactory(now).NewBooking(c, renterID, period, "")
		require.NoError(t, err)
		assert.Equal(t, int64(2000), b.TotalAmount().Cents())
	})

	t.Run("delisted car cannot be booked", func(t *testing.T) {
		c := builder.NewCarBuilder().AsDelisted().BuildDomain()
		period := mustPeriod(t, now.Add(24*time.Hour), now.Add(48*time.Hour))

		_, err := newFactory(now).NewBooking(c, renterID, period, "")
		require.ErrorIs(t, err, booking.ErrVehicleNotListed)
	})

	t.Run("period starting in the past is rejected", func(t *testing.T) {
		c := builder.NewCarBuilder().BuildDomain()
		period := mustPeriod(t, now.Add(-time.Hour), now.Add(48*time.Hour))

		_, err := newFactory(now).NewBooking(c, renterID, period, "")
		require.ErrorIs(t, err, booking.ErrPeriodInPast)
	})

	t.Run("period starting exactly now is allowed", func(t *testing.T) {
		c := builder.NewCarBuilder().BuildDomain()
		period := mustPeriod(t, now, now.Add(48*time.Hour))

		_, err := newFactory(now).NewBooking(c, renterID, period, "")
		require.NoError(t, err)
	})
}
