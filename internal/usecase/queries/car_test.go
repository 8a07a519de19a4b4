//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"wheelshare/internal/domain/booking"
	"wheelshare/internal/usecase/queries"
	"wheelshare/tests/common/builder"
	queriesmock "wheelshare/tests/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCarQueries_SearchAvailable(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	newSut := func(t *testing.T) (*queriesmock.MockCarViewRepo, queries.CarQueries) {
		ctrl := gomock.NewController(t)
		repo := queriesmock.NewMockCarViewRepo(ctrl)
		return repo, queries.NewCarQueries(repo)
	}

	t.Run("success: delegates the validated period", func(t *testing.T) {
		repo, sut := newSut(t)
		views := []*queries.CarView{builder.NewCarBuilder().BuildView()}
		repo.EXPECT().FindAvailable(ctx, gomock.Any(), int32(10)).
			DoAndReturn(func(_ context.Context, p booking.Period, _ int32) ([]*queries.CarView, error) {
				assert.True(t, p.Start().Equal(start))
				assert.True(t, p.End().Equal(start.Add(48*time.Hour)))
				return views, nil
			})

		got, err := sut.SearchAvailable(ctx, start, start.Add(48*time.Hour), 10)
		require.NoError(t, err)
		assert.Equal(t, views, got)
	})

	t.Run("error: inverted range", func(t *testing.T) {
		_, sut := newSut(t)

		_, err := sut.SearchAvailable(ctx, start, start.Add(-time.Hour), 10)
		require.ErrorIs(t, err, queries.ErrInvalidSearchPeriod)
	})

	t.Run("error: range beyond the rental maximum", func(t *testing.T) {
		_, sut := newSut(t)

		_, err := sut.SearchAvailable(ctx, start, start.Add((booking.MaxRentalDays+1)*24*time.Hour), 10)
		require.ErrorIs(t, err, queries.ErrInvalidSearchPeriod)
	})

	t.Run("zero limit falls back to the default", func(t *testing.T) {
		repo, sut := newSut(t)
		repo.EXPECT().FindAvailable(ctx, gomock.Any(), int32(50)).Return(nil, nil)

		_, err := sut.SearchAvailable(ctx, start, start.Add(24*time.Hour), 0)
		require.NoError(t, err)
	})
}
