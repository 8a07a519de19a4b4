package commands

import (
	"context"
	"encoding/json"

	"wheelshare/internal/domain/booking"
	"wheelshare/internal/infra"
	"wheelshare/internal/pkg/clock"
	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/usecase/queries"
	"wheelshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOrderNotPayable     = errs.New("booking is not awaiting payment")
	ErrOrderAmountMismatch = errs.New("order amount does not match booking total")
	ErrOrderMismatch       = errs.New("order reference does not match booking")
	ErrSignatureMismatch   = errs.New("payment signature mismatch")
	ErrGatewayFailure      = errs.New("payment gateway failure")
)

type CreateOrderInput struct {
	BookingID   uuid.UUID
	AmountCents int64
	Currency    string
}

type CreateOrderResult struct {
	OrderRef    string
	AmountCents int64
	Currency    string
}

type VerifyPaymentInput struct {
	BookingID  uuid.UUID
	OrderRef   string
	PaymentRef string
	Signature  string
}

type PaymentCommands interface {
	// CreatePaymentOrder registers a gateway order for a PAYMENT_PENDING
	// booking. The requested amount must equal the booking total. A gateway
	// timeout leaves the booking payable so the renter can retry.
	CreatePaymentOrder(ctx context.Context, actor shared.Principal, in CreateOrderInput) (*CreateOrderResult, error)
	// VerifyPayment reconciles the gateway callback. A valid signature marks
	// the booking paid; an invalid one fails the payment and cancels the
	// hold. Replaying a verification that already succeeded is a no-op.
	VerifyPayment(ctx context.Context, in VerifyPaymentInput) (*queries.BookingView, error)
}

type paymentCommandsImpl struct {
	uow            shared.UnitOfWork
	gateway        PaymentGateway
	verifier       SignatureVerifier
	bookingQueries queries.BookingQueries
	clock          clock.Clock
}

func NewPaymentCommands(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	verifier SignatureVerifier,
	bookingQueries queries.BookingQueries,
	clock clock.Clock,
) PaymentCommands {
	return &paymentCommandsImpl{
		uow:            uow,
		gateway:        gateway,
		verifier:       verifier,
		bookingQueries: bookingQueries,
		clock:          clock,
	}
}

func (c *paymentCommandsImpl) CreatePaymentOrder(ctx context.Context, actor shared.Principal, in CreateOrderInput) (*CreateOrderResult, error) {
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	// Validate before touching the gateway so a bad request never creates an
	// orphan order.
	view, err := c.bookingQueries.GetByIDSystem(ctx, in.BookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if !actor.IsAdmin() && actor.ID != view.RenterID {
		return nil, ErrForbiddenActor
	}
	if view.Status != booking.StatusPaymentPending.String() {
		return nil, ErrOrderNotPayable
	}
	if in.AmountCents != view.TotalAmountCents {
		return nil, ErrOrderAmountMismatch
	}

	// The gateway call runs outside any transaction. On timeout the booking
	// stays PAYMENT_PENDING and the order can be re-created.
	orderRef, err := c.gateway.CreateOrder(ctx, in.AmountCents, currency, in.BookingID.String())
	if err != nil {
		return nil, errs.Mark(err, ErrGatewayFailure)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBookingTx(ctx, tx, in.BookingID)
		if err != nil {
			return err
		}
		if b.TotalAmount().Cents() != in.AmountCents {
			return ErrOrderAmountMismatch
		}
		if err := b.AttachOrder(orderRef); err != nil {
			return markTransitionErr(err)
		}
		if err := tx.Bookings().Save(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateOrderResult{
		OrderRef:    orderRef,
		AmountCents: in.AmountCents,
		Currency:    currency,
	}, nil
}

func (c *paymentCommandsImpl) VerifyPayment(ctx context.Context, in VerifyPaymentInput) (*queries.BookingView, error) {
	var sigMismatch bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := lockBookingTx(ctx, tx, in.BookingID)
		if err != nil {
			return err
		}

		// Replay of a verification that already succeeded: confirm and move
		// on without touching state.
		if alreadyVerified(b, in.PaymentRef) {
			return nil
		}

		if b.OrderRef() == nil || *b.OrderRef() != in.OrderRef {
			return ErrOrderMismatch
		}

		if !c.verifier.Verify(in.OrderRef, in.PaymentRef, in.Signature) {
			// A forged or corrupted callback fails the payment outright; the
			// hold is released rather than left dangling.
			sigMismatch = true
			if err := b.MarkPaymentFailed(c.clock.Now()); err != nil {
				return markTransitionErr(err)
			}
			if err := tx.Bookings().Save(ctx, b); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			return c.notifyPayment(ctx, tx, "payment_failed", b.ID())
		}

		if err := b.MarkPaid(in.PaymentRef); err != nil {
			return markTransitionErr(err)
		}
		if err := tx.Bookings().Save(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return c.notifyPayment(ctx, tx, "payment_confirmed", b.ID())
	})
	if err != nil {
		return nil, err
	}
	if sigMismatch {
		return nil, ErrSignatureMismatch
	}

	return c.bookingQueries.GetByIDSystem(ctx, in.BookingID)
}

// alreadyVerified reports whether this callback was applied before: the
// booking has moved past PAYMENT_PENDING with the same payment reference.
func alreadyVerified(b *booking.Booking, paymentRef string) bool {
	if b.Status() != booking.StatusPaymentConfirmed && b.Status() != booking.StatusConfirmed {
		return false
	}
	return b.PaymentRef() != nil && *b.PaymentRef() == paymentRef
}

func lockBookingTx(ctx context.Context, tx shared.Tx, id uuid.UUID) (*booking.Booking, error) {
	b, err := tx.Bookings().FindByIDForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return b, nil
}

func (c *paymentCommandsImpl) notifyPayment(ctx context.Context, tx shared.Tx, topic string, bookingID uuid.UUID) error {
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
