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

var carViewColumns = []string{
	"id", "owner_id", "brand", "model", "daily_rate_cents",
	"listed", "available_now", "created_at", "updated_at",
}

type CarReadStore struct {
	db db.DBTX
}

func NewCarReadStore(dbtx db.DBTX) *CarReadStore {
	return &CarReadStore{db: dbtx}
}

func (r *CarReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CarView, error) {
	query, args, err := psql.Select(carViewColumns...).
		From("cars").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build car view query", err)
	}

	v, err := scanCarView(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("car not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find car by ID", err)
	}
	return v, nil
}

func (r *CarReadStore) FindListed(ctx context.Context, limit int32) ([]*queries.CarView, error) {
	query, args, err := psql.Select(carViewColumns...).
		From("cars").
		Where(squirrel.Eq{"listed": true}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build listed cars query", err)
	}
	return r.queryViews(ctx, query, args)
}

// FindAvailable derives availability from the booking table: a car qualifies
// when no non-terminal booking overlaps the half-open search period.
func (r *CarReadStore) FindAvailable(ctx context.Context, p booking.Period, limit int32) ([]*queries.CarView, error) {
	query, args, err := psql.Select(carViewColumns...).
		From("cars").
		Where(squirrel.Eq{"listed": true}).
		Where(squirrel.Expr(`NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.car_id = cars.id
			  AND b.start_at < ?
			  AND ? < b.end_at
			  AND b.status NOT IN ('CANCELLED', 'COMPLETED')
		)`, p.End(), p.Start())).
		OrderBy("daily_rate_cents", "created_at").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build availability query", err)
	}
	return r.queryViews(ctx, query, args)
}

func (r *CarReadStore) queryViews(ctx context.Context, query string, args []any) ([]*queries.CarView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cars", err)
	}
	defer rows.Close()

	var views []*queries.CarView
	for rows.Next() {
		v, err := scanCarView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan car view", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate cars", err)
	}
	return views, nil
}

func scanCarView(row pgx.Row) (*queries.CarView, error) {
	var v queries.CarView
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Brand, &v.Model, &v.DailyRateCents,
		&v.Listed, &v.AvailableNow, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
