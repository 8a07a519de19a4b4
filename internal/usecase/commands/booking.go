package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"wheelshare/internal/domain/booking"
	"wheelshare/internal/infra"
	"wheelshare/internal/pkg/clock"
	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/usecase/queries"
	"wheelshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCarNotFound             = errs.New("car not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrVehicleUnavailable      = errs.New("vehicle unavailable for the requested period")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrForbiddenActor          = errs.New("actor may not perform this operation")
	ErrTransitionRejected      = errs.New("transition rejected")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingInput struct {
	CarID   uuid.UUID
	StartAt time.Time
	EndAt   time.Time
	Note    string
}

type CancelBookingResult struct {
	Booking *queries.BookingView
	// RefundIssued is false when no payment was captured, or when the refund
	// call failed and was left for manual reconciliation.
	RefundIssued bool
	RefundRef    *string
}

type BookingCommands interface {
	// CreateBooking places a tentative hold on the vehicle for the half-open
	// period. The hold starts in PAYMENT_PENDING and expires if never paid.
	CreateBooking(ctx context.Context, actor shared.Principal, in CreateBookingInput) (*queries.BookingView, error)
	// ConfirmBooking is the owner's acceptance of a paid booking.
	ConfirmBooking(ctx context.Context, actor shared.Principal, id uuid.UUID) (*queries.BookingView, error)
	// CancelBooking cancels as the renter or the owner. A captured payment is
	// refunded after the cancellation commits; a refund failure never undoes
	// the cancellation.
	CancelBooking(ctx context.Context, actor shared.Principal, id uuid.UUID) (*CancelBookingResult, error)
	// OverridePaymentStatus is the admin reconciliation escape hatch.
	OverridePaymentStatus(ctx context.Context, actor shared.Principal, id uuid.UUID, paymentStatus booking.PaymentStatus) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	factory        *booking.Factory
	gateway        PaymentGateway
	bookingQueries queries.BookingQueries
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	factory *booking.Factory,
	gateway PaymentGateway,
	bookingQueries queries.BookingQueries,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		factory:        factory,
		gateway:        gateway,
		bookingQueries: bookingQueries,
		clock:          clock,
	}
}

func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, actor shared.Principal, in CreateBookingInput) (*queries.BookingView, error) {
	period, err := booking.NewPeriod(in.StartAt, in.EndAt)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var bookingID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// The row lock on the car serializes the availability check and the
		// insert for the same vehicle. The exclusion constraint is the
		// backstop.
		carEntity, err := tx.Cars().FindByIDForUpdate(ctx, in.CarID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCarNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		taken, err := tx.Bookings().ExistsOverlapping(ctx, carEntity.ID(), period, nil)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if taken {
			return ErrVehicleUnavailable
		}

		b, err := c.factory.NewBooking(carEntity, actor.ID, period, in.Note)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Bookings().Create(ctx, b); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrVehicleUnavailable
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if period.Contains(c.clock.Now()) {
			if err := tx.Cars().SetAvailableNow(ctx, carEntity.ID(), false); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		bookingID = b.ID()
		return c.enqueueNotification(ctx, tx, "booking_created", bookingID)
	})
	if err != nil {
		return nil, err
	}

	return c.bookingQueries.GetByIDSystem(ctx, bookingID)
}

func (c *bookingCommandsImpl) ConfirmBooking(ctx context.Context, actor shared.Principal, id uuid.UUID) (*queries.BookingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBookingTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := b.ConfirmByOwner(actor.ID, c.clock.Now()); err != nil {
			return markTransitionErr(err)
		}

		if err := tx.Bookings().Save(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return c.enqueueNotification(ctx, tx, "booking_confirmed", id)
	})
	if err != nil {
		return nil, err
	}

	return c.bookingQueries.GetByIDSystem(ctx, id)
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, actor shared.Principal, id uuid.UUID) (*CancelBookingResult, error) {
	var (
		refundDue  bool
		paymentRef *string
		amountPaid int64
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBookingTx(ctx, tx, id)
		if err != nil {
			return err
		}

		now := c.clock.Now()
		switch actor.ID {
		case b.RenterID():
			refundDue, err = b.CancelByRenter(actor.ID, now)
		case b.OwnerID():
			refundDue, err = b.CancelByOwner(actor.ID, now)
		default:
			return ErrForbiddenActor
		}
		if err != nil {
			return markTransitionErr(err)
		}

		paymentRef = b.PaymentRef()
		amountPaid = b.AmountPaid().Cents()

		if err := tx.Bookings().Save(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if b.Period().Contains(now) {
			if err := tx.Cars().SetAvailableNow(ctx, b.CarID(), true); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return c.enqueueNotification(ctx, tx, "booking_cancelled", id)
	})
	if err != nil {
		return nil, err
	}

	result := &CancelBookingResult{}
	if refundDue && paymentRef != nil {
		result.RefundIssued, result.RefundRef = c.issueRefund(ctx, id, *paymentRef, amountPaid)
	}

	view, err := c.bookingQueries.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	result.Booking = view
	return result, nil
}

// issueRefund is a compensating action: the cancellation has already
// committed, so a gateway or persistence failure here leaves the payment
// captured and is surfaced through logs, never as a caller error.
func (c *bookingCommandsImpl) issueRefund(ctx context.Context, id uuid.UUID, paymentRef string, amountCents int64) (bool, *string) {
	refundRef, err := c.gateway.Refund(ctx, paymentRef, amountCents)
	if err != nil {
		slog.Error("refund failed after cancellation, payment left captured",
			"booking_id", id, "payment_ref", paymentRef, "error", err)
		return false, nil
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBookingTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := b.MarkRefunded(refundRef); err != nil {
			return markTransitionErr(err)
		}
		if err := tx.Bookings().Save(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return c.enqueueNotification(ctx, tx, "booking_refunded", id)
	})
	if err != nil {
		slog.Error("refund issued but not recorded",
			"booking_id", id, "refund_ref", refundRef, "error", err)
		return false, nil
	}
	return true, &refundRef
}

func (c *bookingCommandsImpl) OverridePaymentStatus(ctx context.Context, actor shared.Principal, id uuid.UUID, paymentStatus booking.PaymentStatus) (*queries.BookingView, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbiddenActor
	}
	if !paymentStatus.IsValid() {
		return nil, ErrDomainValidation
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBookingTx(ctx, tx, id)
		if err != nil {
			return err
		}

		now := c.clock.Now()
		if err := b.OverridePaymentStatus(paymentStatus, now); err != nil {
			return markTransitionErr(err)
		}

		if err := tx.Bookings().Save(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if b.ReleasesVehicle() && b.Period().Contains(now) {
			if err := tx.Cars().SetAvailableNow(ctx, b.CarID(), true); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return c.enqueueNotification(ctx, tx, "payment_status_overridden", id)
	})
	if err != nil {
		return nil, err
	}

	return c.bookingQueries.GetByIDSystem(ctx, id)
}

func (c *bookingCommandsImpl) enqueueNotification(ctx context.Context, tx shared.Tx, topic string, bookingID uuid.UUID) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       topic,
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := tx.Notifications().CreateJob(ctx, "email", topic, payload, c.clock.Now()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// markTransitionErr attaches the usecase sentinel while keeping the domain
// error in the chain so the handler can map the specific guard.
func markTransitionErr(err error) error {
	switch {
	case errors.Is(err, booking.ErrNotRenter), errors.Is(err, booking.ErrNotOwner):
		return errs.Mark(err, ErrForbiddenActor)
	default:
		return errs.Mark(err, ErrTransitionRejected)
	}
}
