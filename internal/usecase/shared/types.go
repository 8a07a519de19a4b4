package shared

import (
	"wheelshare/internal/domain/user"

	"github.com/google/uuid"
)

// Principal is the authenticated actor attached by the identity provider.
// The core trusts it as given.
type Principal struct {
	ID   uuid.UUID
	Role user.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role.IsAdmin()
}
