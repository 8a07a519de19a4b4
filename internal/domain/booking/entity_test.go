//go:build unit

package booking_test

import (
	"testing"
	"time"

	"wheelshare/internal/domain/booking"
	"wheelshare/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkPaid(t *testing.T) {
	t.Run("pending booking becomes payment confirmed with full capture", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.MarkPaid("pay_123"))

		assert.Equal(t, booking.StatusPaymentConfirmed, b.Status())
		assert.Equal(t, booking.PaymentPaid, b.PaymentStatus())
		assert.Equal(t, b.TotalAmount().Cents(), b.AmountPaid().Cents())
		require.NotNil(t, b.PaymentRef())
		assert.Equal(t, "pay_123", *b.PaymentRef())
	})

	t.Run("rejected once already confirmed", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().AsPaid().BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, b.MarkPaid("pay_again"), booking.ErrInvalidTransition)
	})

	t.Run("rejected in terminal state", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().AsCancelled().BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, b.MarkPaid("pay_123"), booking.ErrTerminalState)
	})
}

func TestConfirmByOwner(t *testing.T) {
	now := time.Now()

	t.Run("owner confirms a paid booking", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsPaid()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.ConfirmByOwner(bb.OwnerID, now))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		require.NotNil(t, b.ConfirmedAt())
	})

	t.Run("non-owner cannot confirm", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsPaid()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, b.ConfirmByOwner(bb.RenterID, now), booking.ErrNotOwner)
	})

	t.Run("unpaid booking cannot be confirmed", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, b.ConfirmByOwner(bb.OwnerID, now), booking.ErrInvalidTransition)
	})
}

func TestCancelByRenter(t *testing.T) {
	t.Run("unpaid hold cancels any time without refund", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		// Even inside the 24h window: no payment means no window check.
		refundDue, err := b.CancelByRenter(bb.RenterID, bb.StartAt.Add(-time.Hour))
		require.NoError(t, err)
		assert.False(t, refundDue)
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("paid booking refunds when cancelled before the window", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsPaid()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		refundDue, err := b.CancelByRenter(bb.RenterID, bb.StartAt.Add(-48*time.Hour))
		require.NoError(t, err)
		assert.True(t, refundDue)
	})

	t.Run("exactly at the window boundary is allowed", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsPaid()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		refundDue, err := b.CancelByRenter(bb.RenterID, bb.StartAt.Add(-booking.CancellationWindow))
		require.NoError(t, err)
		assert.True(t, refundDue)
	})

	t.Run("one minute inside the window is rejected", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsPaid()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		_, err = b.CancelByRenter(bb.RenterID, bb.StartAt.Add(-booking.CancellationWindow+time.Minute))
		require.ErrorIs(t, err, booking.ErrCancellationWindow)
		assert.Equal(t, booking.StatusPaymentConfirmed, b.Status())
	})

	t.Run("window also applies once owner confirmed", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsConfirmed()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		_, err = b.CancelByRenter(bb.RenterID, bb.StartAt.Add(-time.Hour))
		require.ErrorIs(t, err, booking.ErrCancellationWindow)
	})

	t.Run("only the renter may cancel their booking", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		_, err = b.CancelByRenter(bb.OwnerID, time.Now())
		require.ErrorIs(t, err, booking.ErrNotRenter)
	})

	t.Run("cancelling twice is rejected", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		_, err = b.CancelByRenter(bb.RenterID, time.Now())
		require.NoError(t, err)
		_, err = b.CancelByRenter(bb.RenterID, time.Now())
		require.ErrorIs(t, err, booking.ErrTerminalState)
	})
}

func TestCancelByOwner(t *testing.T) {
	t.Run("owner cancels before confirming", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsPaid()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		refundDue, err := b.CancelByOwner(bb.OwnerID, time.Now())
		require.NoError(t, err)
		assert.True(t, refundDue)
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("owner cannot back out of a confirmed booking", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsConfirmed()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		_, err = b.CancelByOwner(bb.OwnerID, time.Now())
		require.ErrorIs(t, err, booking.ErrInvalidTransition)
	})
}

func TestComplete(t *testing.T) {
	t.Run("confirmed booking completes after the period ends", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsConfirmed()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Complete(bb.EndAt.Add(time.Minute)))
		assert.Equal(t, booking.StatusCompleted, b.Status())
		assert.True(t, b.IsTerminal())
	})

	t.Run("cannot complete before the period ends", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsConfirmed()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, b.Complete(bb.EndAt.Add(-time.Minute)), booking.ErrInvalidTransition)
	})

	t.Run("only confirmed bookings complete", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsPaid()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, b.Complete(bb.EndAt.Add(time.Minute)), booking.ErrInvalidTransition)
	})
}

func TestExpireUnpaid(t *testing.T) {
	hold := 30 * time.Minute

	t.Run("expires after the hold elapses", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.ExpireUnpaid(bb.CreatedAt.Add(hold), hold))
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.Equal(t, booking.PaymentFailed, b.PaymentStatus())
	})

	t.Run("hold not yet elapsed", func(t *testing.T) {
		bb := builder.NewBookingBuilder()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, b.ExpireUnpaid(bb.CreatedAt.Add(hold-time.Minute), hold), booking.ErrHoldNotExpired)
	})

	t.Run("paid booking never expires", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsPaid()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, b.ExpireUnpaid(bb.CreatedAt.Add(2*hold), hold), booking.ErrInvalidTransition)
	})
}

func TestMarkRefunded(t *testing.T) {
	t.Run("captured payment refunds", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsPaid().AsCancelled()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.MarkRefunded("rf_123"))
		assert.Equal(t, booking.PaymentRefunded, b.PaymentStatus())
		require.NotNil(t, b.RefundRef())
		assert.Equal(t, "rf_123", *b.RefundRef())
	})

	t.Run("uncaptured payment cannot refund", func(t *testing.T) {
		bb := builder.NewBookingBuilder().AsCancelled()
		b, err := bb.BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, b.MarkRefunded("rf_123"), booking.ErrNotPaid)
	})
}

func TestOverridePaymentStatus(t *testing.T) {
	now := time.Now()

	t.Run("override to paid advances the lifecycle", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.OverridePaymentStatus(booking.PaymentPaid, now))
		assert.Equal(t, booking.StatusPaymentConfirmed, b.Status())
		assert.Equal(t, b.TotalAmount().Cents(), b.AmountPaid().Cents())
	})

	t.Run("override to failed cancels the booking", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.OverridePaymentStatus(booking.PaymentFailed, now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.True(t, b.ReleasesVehicle())
	})

	t.Run("override to refunded cancels and releases", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().AsPaid().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.OverridePaymentStatus(booking.PaymentRefunded, now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.Equal(t, booking.PaymentRefunded, b.PaymentStatus())
	})

	t.Run("pending is not a valid override target", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, b.OverridePaymentStatus(booking.PaymentPending, now), booking.ErrInvalidTransition)
	})

	t.Run("terminal bookings cannot be overridden", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().AsCancelled().BuildDomain()
		require.NoError(t, err)

		require.ErrorIs(t, b.OverridePaymentStatus(booking.PaymentPaid, now), booking.ErrTerminalState)
	})
}

func TestOverlaps(t *testing.T) {
	bb := builder.NewBookingBuilder()
	b, err := bb.BuildDomain()
	require.NoError(t, err)

	overlapping := mustPeriod(t, bb.StartAt.Add(time.Hour), bb.StartAt.Add(48*time.Hour))
	adjacent := mustPeriod(t, bb.EndAt, bb.EndAt.Add(24*time.Hour))

	t.Run("active booking blocks an overlapping period", func(t *testing.T) {
		assert.True(t, b.Overlaps(overlapping))
	})

	t.Run("adjacent period does not conflict", func(t *testing.T) {
		assert.False(t, b.Overlaps(adjacent))
	})

	t.Run("cancelled booking holds nothing", func(t *testing.T) {
		cancelled, err := builder.NewBookingBuilder().
			WithPeriod(bb.StartAt, bb.EndAt).
			AsCancelled().
			BuildDomain()
		require.NoError(t, err)
		assert.False(t, cancelled.Overlaps(overlapping))
	})
}
