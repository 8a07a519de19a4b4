//go:build unit

package opaqueid_test

import (
	"testing"

	"wheelshare/internal/pkg/opaqueid"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec(t *testing.T) {
	codec, err := opaqueid.NewCodec("unit-test-id-codec-key")
	require.NoError(t, err)

	t.Run("encode decode round trip", func(t *testing.T) {
		id := uuid.New()
		token := codec.Encode(id)

		decoded, err := codec.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	})

	t.Run("token is deterministic and opaque", func(t *testing.T) {
		id := uuid.New()
		token := codec.Encode(id)

		assert.Equal(t, token, codec.Encode(id))
		assert.Len(t, token, 22)
		assert.NotContains(t, token, id.String())
	})

	t.Run("distinct ids produce distinct tokens", func(t *testing.T) {
		seen := make(map[string]struct{})
		for range 100 {
			token := codec.Encode(uuid.New())
			_, dup := seen[token]
			require.False(t, dup)
			seen[token] = struct{}{}
		}
	})

	t.Run("garbage tokens are rejected", func(t *testing.T) {
		for _, token := range []string{"", "not base64 ***", "c2hvcnQ", uuid.NewString()} {
			_, err := codec.Decode(token)
			assert.ErrorIs(t, err, opaqueid.ErrInvalidToken, "token %q", token)
		}
	})

	t.Run("tokens from another key do not decode to the same id", func(t *testing.T) {
		other, err := opaqueid.NewCodec("a-different-key")
		require.NoError(t, err)

		id := uuid.New()
		decoded, err := codec.Decode(other.Encode(id))
		if err == nil {
			assert.NotEqual(t, id, decoded)
		}
	})
}
