package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CancellationWindow is how long before the rental start a paid booking can
// still be cancelled by the renter.
const CancellationWindow = 24 * time.Hour

var (
	ErrTerminalState       = errors.New("booking is in a terminal state")
	ErrInvalidTransition   = errors.New("transition not allowed from current state")
	ErrNotRenter           = errors.New("actor is not the renter")
	ErrNotOwner            = errors.New("actor is not the vehicle owner")
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrNotPaid             = errors.New("booking has no captured payment")
	ErrCancellationWindow  = errors.New("cannot cancel within 24 hours of start")
	ErrVehicleNotListed    = errors.New("vehicle is not listed for booking")
	ErrHoldNotExpired      = errors.New("payment hold has not expired")
)

// Booking owns the reservation lifecycle. All status and payment-status
// writes go through its transition methods; guards (actor, time window,
// payment precondition) are enforced here so the transition is the unit of
// atomicity, not the transport layer.
type Booking struct {
	id            uuid.UUID
	carID         uuid.UUID
	renterID      uuid.UUID
	ownerID       uuid.UUID
	period        Period
	totalAmount   Money
	status        Status
	paymentStatus PaymentStatus
	amountPaid    Money
	orderRef      *string
	paymentRef    *string
	refundRef     *string
	note          string
	createdAt     time.Time
	updatedAt     time.Time
	confirmedAt   *time.Time
	cancelledAt   *time.Time
}

func ReconstructBooking(
	id, carID, renterID, ownerID uuid.UUID,
	period Period,
	totalAmount Money,
	status Status,
	paymentStatus PaymentStatus,
	amountPaid Money,
	orderRef, paymentRef, refundRef *string,
	note string,
	createdAt, updatedAt time.Time,
	confirmedAt, cancelledAt *time.Time,
) *Booking {
	return &Booking{
		id:            id,
		carID:         carID,
		renterID:      renterID,
		ownerID:       ownerID,
		period:        period,
		totalAmount:   totalAmount,
		status:        status,
		paymentStatus: paymentStatus,
		amountPaid:    amountPaid,
		orderRef:      orderRef,
		paymentRef:    paymentRef,
		refundRef:     refundRef,
		note:          note,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		confirmedAt:   confirmedAt,
		cancelledAt:   cancelledAt,
	}
}

func (b *Booking) guardNotTerminal() error {
	if b.status.IsTerminal() {
		return ErrTerminalState
	}
	return nil
}

// AttachOrder records the gateway order reference created for this booking.
// Re-creating an order for the same pending booking simply replaces the
// reference; the old order is abandoned at the gateway.
func (b *Booking) AttachOrder(orderRef string) error {
	if err := b.guardNotTerminal(); err != nil {
		return err
	}
	if b.status != StatusPaymentPending {
		return ErrInvalidTransition
	}
	b.orderRef = &orderRef
	return nil
}

// MarkPaid applies the "payment verified" transition:
// PAYMENT_PENDING -> PAYMENT_CONFIRMED with the full amount captured.
func (b *Booking) MarkPaid(paymentRef string) error {
	if err := b.guardNotTerminal(); err != nil {
		return err
	}
	if b.status != StatusPaymentPending {
		return ErrInvalidTransition
	}
	b.status = StatusPaymentConfirmed
	b.paymentStatus = PaymentPaid
	b.amountPaid = b.totalAmount
	b.paymentRef = &paymentRef
	return nil
}

// MarkPaymentFailed applies the "payment failed" transition: the booking is
// cancelled and the vehicle hold released.
func (b *Booking) MarkPaymentFailed(now time.Time) error {
	if err := b.guardNotTerminal(); err != nil {
		return err
	}
	if b.status != StatusPaymentPending {
		return ErrInvalidTransition
	}
	b.status = StatusCancelled
	b.paymentStatus = PaymentFailed
	b.cancelledAt = &now
	return nil
}

// ConfirmByOwner moves a paid booking to CONFIRMED. Requires the actor to be
// the vehicle owner and the payment to be captured in full.
func (b *Booking) ConfirmByOwner(actorID uuid.UUID, now time.Time) error {
	if actorID != b.ownerID {
		return ErrNotOwner
	}
	if err := b.guardNotTerminal(); err != nil {
		return err
	}
	if b.status != StatusPaymentConfirmed {
		return ErrInvalidTransition
	}
	if b.paymentStatus != PaymentPaid {
		return ErrPaymentNotCompleted
	}
	b.status = StatusConfirmed
	b.confirmedAt = &now
	return nil
}

// CancelByRenter cancels the renter's own booking. Once payment is confirmed
// the 24-hour window applies: now must be at or before start-24h. The
// returned flag tells the caller whether a refund is due.
func (b *Booking) CancelByRenter(actorID uuid.UUID, now time.Time) (refundDue bool, err error) {
	if actorID != b.renterID {
		return false, ErrNotRenter
	}
	if err := b.guardNotTerminal(); err != nil {
		return false, err
	}
	if b.status == StatusPaymentConfirmed || b.status == StatusConfirmed {
		if now.After(b.period.Start().Add(-CancellationWindow)) {
			return false, ErrCancellationWindow
		}
	}
	return b.cancel(now), nil
}

// CancelByOwner cancels a booking on the owner's car. Owners cannot back out
// of a booking they already confirmed.
func (b *Booking) CancelByOwner(actorID uuid.UUID, now time.Time) (refundDue bool, err error) {
	if actorID != b.ownerID {
		return false, ErrNotOwner
	}
	if err := b.guardNotTerminal(); err != nil {
		return false, err
	}
	if b.status == StatusConfirmed {
		return false, ErrInvalidTransition
	}
	return b.cancel(now), nil
}

func (b *Booking) cancel(now time.Time) (refundDue bool) {
	b.status = StatusCancelled
	b.cancelledAt = &now
	return b.paymentStatus == PaymentPaid
}

// Complete closes out a CONFIRMED booking whose rental period has ended.
// Driven by the sweep, not by user action.
func (b *Booking) Complete(now time.Time) error {
	if err := b.guardNotTerminal(); err != nil {
		return err
	}
	if b.status != StatusConfirmed || !now.After(b.period.End()) {
		return ErrInvalidTransition
	}
	b.status = StatusCompleted
	return nil
}

// ExpireUnpaid releases a tentative hold that was never paid within the
// configured hold duration.
func (b *Booking) ExpireUnpaid(now time.Time, hold time.Duration) error {
	if err := b.guardNotTerminal(); err != nil {
		return err
	}
	if b.status != StatusPaymentPending || b.paymentStatus != PaymentPending {
		return ErrInvalidTransition
	}
	if now.Before(b.createdAt.Add(hold)) {
		return ErrHoldNotExpired
	}
	b.status = StatusCancelled
	b.paymentStatus = PaymentFailed
	b.cancelledAt = &now
	return nil
}

// MarkRefunded records a successful gateway refund. Only a captured payment
// can be refunded.
func (b *Booking) MarkRefunded(refundRef string) error {
	if b.paymentStatus != PaymentPaid {
		return ErrNotPaid
	}
	b.paymentStatus = PaymentRefunded
	b.refundRef = &refundRef
	return nil
}

// OverridePaymentStatus is the administrative escape hatch. It bypasses the
// cancellation window and actor checks but still maps statuses through the
// state machine: PAID advances to PAYMENT_CONFIRMED, FAILED and REFUNDED
// cancel the booking and release the vehicle.
func (b *Booking) OverridePaymentStatus(ps PaymentStatus, now time.Time) error {
	if err := b.guardNotTerminal(); err != nil {
		return err
	}
	switch ps {
	case PaymentPaid:
		b.paymentStatus = PaymentPaid
		b.amountPaid = b.totalAmount
		b.status = StatusPaymentConfirmed
	case PaymentFailed:
		b.paymentStatus = PaymentFailed
		b.status = StatusCancelled
		b.cancelledAt = &now
	case PaymentRefunded:
		b.paymentStatus = PaymentRefunded
		b.status = StatusCancelled
		b.cancelledAt = &now
	default:
		return ErrInvalidTransition
	}
	return nil
}

// ReleasesVehicle reports whether this booking no longer holds its vehicle.
func (b *Booking) ReleasesVehicle() bool {
	return b.status.IsTerminal()
}

func (b *Booking) Overlaps(p Period) bool {
	return b.status.HoldsVehicle() && b.period.Overlaps(p)
}

func (b *Booking) IsTerminal() bool { return b.status.IsTerminal() }

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) CarID() uuid.UUID             { return b.carID }
func (b *Booking) RenterID() uuid.UUID          { return b.renterID }
func (b *Booking) OwnerID() uuid.UUID           { return b.ownerID }
func (b *Booking) Period() Period               { return b.period }
func (b *Booking) TotalAmount() Money           { return b.totalAmount }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) AmountPaid() Money            { return b.amountPaid }
func (b *Booking) OrderRef() *string            { return b.orderRef }
func (b *Booking) PaymentRef() *string          { return b.paymentRef }
func (b *Booking) RefundRef() *string           { return b.refundRef }
func (b *Booking) Note() string                 { return b.note }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
func (b *Booking) ConfirmedAt() *time.Time      { return b.confirmedAt }
func (b *Booking) CancelledAt() *time.Time      { return b.cancelledAt }
