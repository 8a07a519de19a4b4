package repository

import (
	"context"
	"errors"
	"time"

	"wheelshare/internal/domain/booking"
	"wheelshare/internal/infra"
	"wheelshare/internal/infra/db"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var bookingColumns = []string{
	"id", "car_id", "renter_id", "owner_id",
	"start_at", "end_at",
	"total_amount_cents", "status", "payment_status", "amount_paid_cents",
	"order_ref", "payment_ref", "refund_ref", "note",
	"created_at", "updated_at", "confirmed_at", "cancelled_at",
}

// Statuses that do not hold the vehicle. Kept in one place so the overlap
// predicate and the exclusion constraint agree.
var terminalStatuses = []string{
	booking.StatusCancelled.String(),
	booking.StatusCompleted.String(),
}

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	query, args, err := psql.Insert("bookings").
		Columns(
			"id", "car_id", "renter_id", "owner_id",
			"start_at", "end_at",
			"total_amount_cents", "status", "payment_status", "amount_paid_cents",
			"note", "created_at", "updated_at",
		).
		Values(
			b.ID(), b.CarID(), b.RenterID(), b.OwnerID(),
			b.Period().Start(), b.Period().End(),
			b.TotalAmount().Cents(), b.Status().String(), b.PaymentStatus().String(), b.AmountPaid().Cents(),
			b.Note(), b.CreatedAt(), b.UpdatedAt(),
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		if isIntervalConflict(err) {
			return infra.WrapRepoErr("booking interval conflict", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query, args, err := psql.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking lock query", err)
	}

	b, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	return b, nil
}

func (r *BookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	query, args, err := psql.Update("bookings").
		Set("status", b.Status().String()).
		Set("payment_status", b.PaymentStatus().String()).
		Set("amount_paid_cents", b.AmountPaid().Cents()).
		Set("order_ref", b.OrderRef()).
		Set("payment_ref", b.PaymentRef()).
		Set("refund_ref", b.RefundRef()).
		Set("confirmed_at", b.ConfirmedAt()).
		Set("cancelled_at", b.CancelledAt()).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if isIntervalConflict(err) {
			return infra.WrapRepoErr("booking interval conflict", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to save booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

const existsOverlappingSQL = `
SELECT EXISTS (
	SELECT 1 FROM bookings
	WHERE car_id = $1
	  AND start_at < $3
	  AND $2 < end_at
	  AND status NOT IN ('CANCELLED', 'COMPLETED')
	  AND ($4::uuid IS NULL OR id <> $4)
)`

func (r *BookingRepository) ExistsOverlapping(ctx context.Context, carID uuid.UUID, p booking.Period, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, existsOverlappingSQL, carID, p.Start(), p.End(), excludeID).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check overlapping bookings", err)
	}
	return exists, nil
}

func (r *BookingRepository) FindExpiredHoldIDs(ctx context.Context, cutoff time.Time, limit int32) ([]uuid.UUID, error) {
	query, args, err := psql.Select("id").
		From("bookings").
		Where(squirrel.Eq{
			"status":         booking.StatusPaymentPending.String(),
			"payment_status": booking.PaymentPending.String(),
		}).
		Where(squirrel.Lt{"created_at": cutoff}).
		OrderBy("created_at").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build expired holds query", err)
	}

	return r.queryIDs(ctx, query, args)
}

func (r *BookingRepository) FindEndedConfirmedIDs(ctx context.Context, now time.Time, limit int32) ([]uuid.UUID, error) {
	query, args, err := psql.Select("id").
		From("bookings").
		Where(squirrel.Eq{"status": booking.StatusConfirmed.String()}).
		Where(squirrel.Lt{"end_at": now}).
		OrderBy("end_at").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build ended bookings query", err)
	}

	return r.queryIDs(ctx, query, args)
}

func (r *BookingRepository) queryIDs(ctx context.Context, query string, args []any) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query booking ids", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking ids", err)
	}
	return ids, nil
}

// isIntervalConflict recognizes both the gist exclusion constraint on
// overlapping periods (23P01) and unique violations on payment references
// (23505) as conflicts.
func isIntervalConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.ExclusionViolation || pgErr.Code == pgerrcode.UniqueViolation
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, carID, renterID, ownerID         uuid.UUID
		startAt, endAt, createdAt, updatedAt time.Time
		totalCents, paidCents                int64
		status, paymentStatus, note          string
		orderRef, paymentRef, refundRef      *string
		confirmedAt, cancelledAt             *time.Time
	)

	err := row.Scan(
		&id, &carID, &renterID, &ownerID,
		&startAt, &endAt,
		&totalCents, &status, &paymentStatus, &paidCents,
		&orderRef, &paymentRef, &refundRef, &note,
		&createdAt, &updatedAt, &confirmedAt, &cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	period, err := booking.NewPeriod(startAt, endAt)
	if err != nil {
		return nil, err
	}
	total, err := booking.NewMoney(totalCents)
	if err != nil {
		return nil, err
	}
	paid, err := booking.NewMoney(paidCents)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		id, carID, renterID, ownerID,
		period, total,
		booking.Status(status), booking.PaymentStatus(paymentStatus), paid,
		orderRef, paymentRef, refundRef, note,
		createdAt, updatedAt, confirmedAt, cancelledAt,
	), nil
}
