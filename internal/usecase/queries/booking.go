package queries

import (
	"context"

	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrForbidden = errs.New("actor may not view this booking")

const defaultListLimit = 50

type BookingQueries interface {
	// GetByID returns the booking view when the actor is the renter, the
	// vehicle owner or an admin.
	GetByID(ctx context.Context, actor shared.Principal, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem skips actor scoping. For internal read-after-write paths.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByRenter(ctx context.Context, renterID uuid.UUID, limit int) ([]*BookingListItem, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*BookingListItem, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByRenterID(ctx context.Context, renterID uuid.UUID, limit int32) ([]*BookingListItem, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, limit int32) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor shared.Principal, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.ID != view.RenterID && actor.ID != view.OwnerID {
		return nil, ErrForbidden
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) ListByRenter(ctx context.Context, renterID uuid.UUID, limit int) ([]*BookingListItem, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return q.repo.FindByRenterID(ctx, renterID, int32(limit))
}

func (q *bookingQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*BookingListItem, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return q.repo.FindByOwnerID(ctx, ownerID, int32(limit))
}
