//go:build unit

package repository_test

import (
	"context"
	"testing"

	"wheelshare/internal/infra"
	"wheelshare/internal/infra/repository"
	"wheelshare/tests/common/builder"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execFailDB fails every statement with a fixed error, standing in for the
// database rejecting a write.
type execFailDB struct {
	err error
}

func (d *execFailDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, d.err
}

func (d *execFailDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, d.err
}

func (d *execFailDB) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("not used")
}

func TestBookingRepository_CreateConflictClassification(t *testing.T) {
	ctx := context.Background()
	b, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)

	t.Run("exclusion violation is a conflict", func(t *testing.T) {
		repo := repository.NewBookingRepository(&execFailDB{
			err: &pgconn.PgError{Code: pgerrcode.ExclusionViolation},
		})

		err := repo.Create(ctx, b)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})

	t.Run("unique violation is a conflict", func(t *testing.T) {
		repo := repository.NewBookingRepository(&execFailDB{
			err: &pgconn.PgError{Code: pgerrcode.UniqueViolation},
		})

		err := repo.Create(ctx, b)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})

	t.Run("other database errors stay failures", func(t *testing.T) {
		repo := repository.NewBookingRepository(&execFailDB{
			err: &pgconn.PgError{Code: pgerrcode.NotNullViolation},
		})

		err := repo.Create(ctx, b)
		require.Error(t, err)
		assert.False(t, infra.IsKind(err, infra.KindConflict))
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})

	t.Run("save hitting the constraint is a conflict too", func(t *testing.T) {
		repo := repository.NewBookingRepository(&execFailDB{
			err: &pgconn.PgError{Code: pgerrcode.ExclusionViolation},
		})

		err := repo.Save(ctx, b)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})
}
