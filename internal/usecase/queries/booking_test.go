//go:build unit

package queries_test

import (
	"context"
	"testing"

	"wheelshare/internal/domain/user"
	"wheelshare/internal/usecase/queries"
	"wheelshare/internal/usecase/shared"
	"wheelshare/tests/common/builder"
	queriesmock "wheelshare/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBookingQueries_GetByID(t *testing.T) {
	ctx := context.Background()

	newSut := func(t *testing.T) (*queriesmock.MockBookingViewRepo, queries.BookingQueries) {
		ctrl := gomock.NewController(t)
		repo := queriesmock.NewMockBookingViewRepo(ctrl)
		return repo, queries.NewBookingQueries(repo)
	}

	view := builder.NewBookingBuilder().BuildView()

	cases := []struct {
		name  string
		actor shared.Principal
		errIs error
	}{
		{
			name:  "renter sees their own booking",
			actor: shared.Principal{ID: view.RenterID, Role: user.RoleRenter},
		},
		{
			name:  "owner sees a booking on their car",
			actor: shared.Principal{ID: view.OwnerID, Role: user.RoleOwner},
		},
		{
			name:  "admin sees any booking",
			actor: shared.Principal{ID: uuid.New(), Role: user.RoleAdmin},
		},
		{
			name:  "unrelated actor is refused",
			actor: shared.Principal{ID: uuid.New(), Role: user.RoleRenter},
			errIs: queries.ErrForbidden,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo, sut := newSut(t)
			repo.EXPECT().FindByID(ctx, view.ID).Return(view, nil)

			got, err := sut.GetByID(ctx, c.actor, view.ID)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(view, got); diff != "" {
				t.Errorf("view mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBookingQueries_Lists(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := queriesmock.NewMockBookingViewRepo(ctrl)
	sut := queries.NewBookingQueries(repo)

	renterID := uuid.New()
	items := []*queries.BookingListItem{
		builder.NewBookingBuilder().BuildListItem(),
		builder.NewBookingBuilder().AsPaid().BuildListItem(),
	}

	t.Run("zero limit falls back to the default", func(t *testing.T) {
		repo.EXPECT().FindByRenterID(ctx, renterID, int32(50)).Return(items, nil)

		got, err := sut.ListByRenter(ctx, renterID, 0)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("explicit limit is passed through", func(t *testing.T) {
		repo.EXPECT().FindByOwnerID(ctx, renterID, int32(5)).Return(nil, nil)

		got, err := sut.ListByOwner(ctx, renterID, 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
