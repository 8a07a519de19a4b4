package queries

import (
	"context"
	"time"

	"wheelshare/internal/domain/booking"
	"wheelshare/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidSearchPeriod = errs.New("invalid search period")

type CarQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*CarView, error)
	ListListed(ctx context.Context, limit int) ([]*CarView, error)
	// SearchAvailable lists listed cars with no overlapping active booking in
	// the half-open period. Availability is derived from the booking table at
	// read time, never from the cached flag.
	SearchAvailable(ctx context.Context, startAt, endAt time.Time, limit int) ([]*CarView, error)
}

type CarViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CarView, error)
	FindListed(ctx context.Context, limit int32) ([]*CarView, error)
	FindAvailable(ctx context.Context, p booking.Period, limit int32) ([]*CarView, error)
}

type carQueriesImpl struct {
	repo CarViewRepo
}

func NewCarQueries(repo CarViewRepo) CarQueries {
	return &carQueriesImpl{repo: repo}
}

func (q *carQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*CarView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *carQueriesImpl) ListListed(ctx context.Context, limit int) ([]*CarView, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return q.repo.FindListed(ctx, int32(limit))
}

func (q *carQueriesImpl) SearchAvailable(ctx context.Context, startAt, endAt time.Time, limit int) ([]*CarView, error) {
	period, err := booking.NewPeriod(startAt, endAt)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidSearchPeriod)
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return q.repo.FindAvailable(ctx, period, int32(limit))
}
