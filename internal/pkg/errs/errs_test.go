//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"wheelshare/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	cause := errs.New("vehicle is delisted")
	sentinel := errs.New("transition rejected")

	t.Run("mark and cause are both in the errors.Is chain", func(t *testing.T) {
		err := errs.Mark(cause, sentinel)
		require.ErrorIs(t, err, sentinel)
		require.ErrorIs(t, err, cause)
	})

	t.Run("mark survives wrapping", func(t *testing.T) {
		err := errs.Wrap(errs.Mark(cause, sentinel), "saving booking")
		require.ErrorIs(t, err, sentinel)
		require.ErrorIs(t, err, cause)
	})

	t.Run("marking nil yields the sentinel alone", func(t *testing.T) {
		err := errs.Mark(nil, sentinel)
		require.ErrorIs(t, err, sentinel)
	})

	t.Run("unrelated sentinel does not match", func(t *testing.T) {
		err := errs.Mark(cause, sentinel)
		assert.False(t, errors.Is(err, errs.New("transition rejected")))
	})
}

func TestWrap(t *testing.T) {
	t.Run("wrapping nil returns nil", func(t *testing.T) {
		assert.NoError(t, errs.Wrap(nil, "no-op"))
	})

	t.Run("wrapped cause stays matchable", func(t *testing.T) {
		cause := errs.New("row locked")
		require.ErrorIs(t, errs.Wrap(cause, "loading booking"), cause)
	})
}

func TestExtractStackLines(t *testing.T) {
	t.Run("caps the line count", func(t *testing.T) {
		lines := errs.ExtractStackLines(errs.New("boom"), 3)
		assert.LessOrEqual(t, len(lines), 3)
		assert.NotEmpty(t, lines)
	})

	t.Run("nil error yields nothing", func(t *testing.T) {
		assert.Nil(t, errs.ExtractStackLines(nil, 3))
	})
}
