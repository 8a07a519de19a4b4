package readstore

import (
	"context"
	"errors"

	"wheelshare/internal/domain/booking"
	"wheelshare/internal/infra"
	"wheelshare/internal/infra/db"
	"wheelshare/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var bookingViewColumns = []string{
	"b.id", "b.car_id", "c.brand", "c.model",
	"b.renter_id", "b.owner_id",
	"b.start_at", "b.end_at",
	"b.total_amount_cents", "b.status", "b.payment_status", "b.amount_paid_cents",
	"b.order_ref", "b.payment_ref", "b.refund_ref", "b.note",
	"b.created_at", "b.updated_at", "b.confirmed_at", "b.cancelled_at",
}

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query, args, err := psql.Select(bookingViewColumns...).
		From("bookings b").
		Join("cars c ON c.id = b.car_id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking view query", err)
	}

	view, err := scanBookingView(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindByRenterID(ctx context.Context, renterID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	return r.findList(ctx, squirrel.Eq{"b.renter_id": renterID}, limit)
}

func (r *BookingReadStore) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	return r.findList(ctx, squirrel.Eq{"b.owner_id": ownerID}, limit)
}

func (r *BookingReadStore) findList(ctx context.Context, pred squirrel.Eq, limit int32) ([]*queries.BookingListItem, error) {
	query, args, err := psql.Select(
		"b.id", "b.car_id", "c.brand", "c.model",
		"b.start_at", "b.end_at",
		"b.total_amount_cents", "b.status", "b.payment_status", "b.created_at",
	).
		From("bookings b").
		Join("cars c ON c.id = b.car_id").
		Where(pred).
		OrderBy("b.created_at DESC", "b.id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var it queries.BookingListItem
		err := rows.Scan(
			&it.ID, &it.CarID, &it.CarBrand, &it.CarModel,
			&it.StartAt, &it.EndAt,
			&it.TotalAmountCents, &it.Status, &it.PaymentStatus, &it.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking list", err)
	}
	return items, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	err := row.Scan(
		&v.ID, &v.CarID, &v.CarBrand, &v.CarModel,
		&v.RenterID, &v.OwnerID,
		&v.StartAt, &v.EndAt,
		&v.TotalAmountCents, &v.Status, &v.PaymentStatus, &v.AmountPaidCents,
		&v.OrderRef, &v.PaymentRef, &v.RefundRef, &v.Note,
		&v.CreatedAt, &v.UpdatedAt, &v.ConfirmedAt, &v.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	if period, perr := booking.NewPeriod(v.StartAt, v.EndAt); perr == nil {
		v.TotalDays = period.Days()
	}
	return &v, nil
}
