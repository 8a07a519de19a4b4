package repository

import (
	"context"
	"errors"
	"time"

	"wheelshare/internal/domain/car"
	"wheelshare/internal/infra"
	"wheelshare/internal/infra/db"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var carColumns = []string{
	"id", "owner_id", "brand", "model", "daily_rate_cents",
	"listed", "available_now", "created_at", "updated_at",
}

type CarRepository struct {
	db db.DBTX
}

func NewCarRepository(dbtx db.DBTX) *CarRepository {
	return &CarRepository{db: dbtx}
}

func (r *CarRepository) Create(ctx context.Context, c *car.Car) error {
	query, args, err := psql.Insert("cars").
		Columns("id", "owner_id", "brand", "model", "daily_rate_cents", "listed", "available_now").
		Values(c.ID(), c.OwnerID(), c.Brand(), c.Model(), c.DailyRateCents(), c.Listed(), c.AvailableNow()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build car insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to create car", err)
	}
	return nil
}

func (r *CarRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*car.Car, error) {
	query, args, err := psql.Select(carColumns...).
		From("cars").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build car lock query", err)
	}

	c, err := scanCar(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("car not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock car", err)
	}
	return c, nil
}

func (r *CarRepository) SetListed(ctx context.Context, id uuid.UUID, listed bool) error {
	return r.setFlag(ctx, id, "listed", listed)
}

func (r *CarRepository) SetAvailableNow(ctx context.Context, id uuid.UUID, available bool) error {
	return r.setFlag(ctx, id, "available_now", available)
}

func (r *CarRepository) setFlag(ctx context.Context, id uuid.UUID, column string, value bool) error {
	query, args, err := psql.Update("cars").
		Set(column, value).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build car update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update car", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("car not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanCar(row pgx.Row) (*car.Car, error) {
	var (
		id, ownerID          uuid.UUID
		brand, model         string
		rateCents            int64
		listed, availableNow bool
		createdAt, updatedAt time.Time
	)

	err := row.Scan(&id, &ownerID, &brand, &model, &rateCents, &listed, &availableNow, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	return car.ReconstructCar(id, ownerID, brand, model, rateCents, listed, availableNow, createdAt, updatedAt), nil
}
