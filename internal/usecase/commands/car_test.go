//go:build unit

package commands_test

import (
	"context"
	"testing"

	"wheelshare/internal/domain/user"
	"wheelshare/internal/infra"
	"wheelshare/internal/usecase/commands"
	"wheelshare/internal/usecase/shared"
	"wheelshare/tests/common/builder"
	queriesmock "wheelshare/tests/mock/queries"
	sharedmock "wheelshare/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type carFixture struct {
	uow     *sharedmock.MockUnitOfWork
	tx      *sharedmock.MockTx
	cars    *sharedmock.MockCarRepository
	queries *queriesmock.MockCarQueries
	sut     commands.CarCommands
}

func newCarFixture(t *testing.T) *carFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &carFixture{
		uow:     sharedmock.NewMockUnitOfWork(ctrl),
		tx:      sharedmock.NewMockTx(ctrl),
		cars:    sharedmock.NewMockCarRepository(ctrl),
		queries: queriesmock.NewMockCarQueries(ctrl),
	}
	f.tx.EXPECT().Cars().Return(f.cars).AnyTimes()
	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		}).AnyTimes()

	f.sut = commands.NewCarCommands(f.uow, f.queries)
	return f
}

func ownerPrincipal(id uuid.UUID) shared.Principal {
	return shared.Principal{ID: id, Role: user.RoleOwner}
}

func TestCarCommands_CreateCar(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	input := commands.CreateCarInput{
		Brand:          "Honda",
		Model:          "Civic",
		DailyRateCents: 4_500_00,
	}

	t.Run("success: owner lists a vehicle", func(t *testing.T) {
		f := newCarFixture(t)
		view := builder.NewCarBuilder().WithOwnerID(ownerID).BuildView()

		f.cars.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.queries.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(view, nil)

		got, err := f.sut.CreateCar(ctx, ownerPrincipal(ownerID), input)
		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("error: renter may not list a vehicle", func(t *testing.T) {
		f := newCarFixture(t)

		_, err := f.sut.CreateCar(ctx, renterPrincipal(ownerID), input)
		require.ErrorIs(t, err, commands.ErrForbiddenActor)
	})

	t.Run("error: missing brand fails validation", func(t *testing.T) {
		f := newCarFixture(t)
		in := input
		in.Brand = ""

		_, err := f.sut.CreateCar(ctx, ownerPrincipal(ownerID), in)
		require.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("error: non-positive rate fails validation", func(t *testing.T) {
		f := newCarFixture(t)
		in := input
		in.DailyRateCents = 0

		_, err := f.sut.CreateCar(ctx, ownerPrincipal(ownerID), in)
		require.ErrorIs(t, err, commands.ErrDomainValidation)
	})
}

func TestCarCommands_DelistCar(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("success: owner delists their car", func(t *testing.T) {
		f := newCarFixture(t)
		cb := builder.NewCarBuilder().WithOwnerID(ownerID)
		carEntity := cb.BuildDomain()

		f.cars.EXPECT().FindByIDForUpdate(gomock.Any(), cb.ID).Return(carEntity, nil)
		f.cars.EXPECT().SetListed(gomock.Any(), cb.ID, false).Return(nil)

		err := f.sut.DelistCar(ctx, ownerPrincipal(ownerID), cb.ID)
		require.NoError(t, err)
		assert.False(t, carEntity.Listed())
	})

	t.Run("success: admin delists without owning the car", func(t *testing.T) {
		f := newCarFixture(t)
		cb := builder.NewCarBuilder()
		carEntity := cb.BuildDomain()
		admin := shared.Principal{ID: uuid.New(), Role: user.RoleAdmin}

		f.cars.EXPECT().FindByIDForUpdate(gomock.Any(), cb.ID).Return(carEntity, nil)
		f.cars.EXPECT().SetListed(gomock.Any(), cb.ID, false).Return(nil)

		err := f.sut.DelistCar(ctx, admin, cb.ID)
		require.NoError(t, err)
	})

	t.Run("error: unknown car id", func(t *testing.T) {
		f := newCarFixture(t)
		id := uuid.New()

		f.cars.EXPECT().FindByIDForUpdate(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("car not found", nil, infra.KindNotFound))

		err := f.sut.DelistCar(ctx, ownerPrincipal(ownerID), id)
		require.ErrorIs(t, err, commands.ErrCarNotFound)
	})

	t.Run("error: non-owner may not delist", func(t *testing.T) {
		f := newCarFixture(t)
		cb := builder.NewCarBuilder()
		carEntity := cb.BuildDomain()

		f.cars.EXPECT().FindByIDForUpdate(gomock.Any(), cb.ID).Return(carEntity, nil)

		err := f.sut.DelistCar(ctx, ownerPrincipal(ownerID), cb.ID)
		require.ErrorIs(t, err, commands.ErrForbiddenActor)
	})

	t.Run("error: already delisted", func(t *testing.T) {
		f := newCarFixture(t)
		cb := builder.NewCarBuilder().WithOwnerID(ownerID).AsDelisted()
		carEntity := cb.BuildDomain()

		f.cars.EXPECT().FindByIDForUpdate(gomock.Any(), cb.ID).Return(carEntity, nil)

		err := f.sut.DelistCar(ctx, ownerPrincipal(ownerID), cb.ID)
		require.ErrorIs(t, err, commands.ErrTransitionRejected)
	})
}
