// Package opaqueid maps internal UUIDs to opaque public tokens so that
// sequential or guessable identifiers never leave the API surface. A UUID is
// exactly one AES block, so the mapping is a single block encryption encoded
// as unpadded base64url: deterministic, invertible, 22 characters.
package opaqueid

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid opaque id token")

type Codec struct {
	block cipher.Block
}

// NewCodec derives the AES key from the configured secret. Keys shorter than
// 32 bytes are zero-padded, longer ones truncated.
func NewCodec(key string) (*Codec, error) {
	padded := make([]byte, 32)
	copy(padded, key)

	block, err := aes.NewCipher(padded)
	if err != nil {
		return nil, err
	}
	return &Codec{block: block}, nil
}

func (c *Codec) Encode(id uuid.UUID) string {
	var out [aes.BlockSize]byte
	c.block.Encrypt(out[:], id[:])
	return base64.RawURLEncoding.EncodeToString(out[:])
}

// Decode reverses Encode. Callers treat a failure as "resource not found"
// rather than an internal error.
func (c *Codec) Decode(token string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw) != aes.BlockSize {
		return uuid.Nil, ErrInvalidToken
	}

	var out [aes.BlockSize]byte
	c.block.Decrypt(out[:], raw)

	id, err := uuid.FromBytes(out[:])
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
