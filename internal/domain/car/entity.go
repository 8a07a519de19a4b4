package car

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDailyRate = errors.New("daily rate must be positive")
	ErrMissingName      = errors.New("brand and model are required")
	ErrNotOwner         = errors.New("actor is not the car owner")
	ErrAlreadyDelisted  = errors.New("car is already delisted")
)

// Car is an owner's listed vehicle. The availableNow flag is a cached hint
// only; authoritative availability is always derived from bookings.
type Car struct {
	id             uuid.UUID
	ownerID        uuid.UUID
	brand          string
	model          string
	dailyRateCents int64
	listed         bool
	availableNow   bool
	createdAt      time.Time
	updatedAt      time.Time
}

func NewCar(ownerID uuid.UUID, brand, model string, dailyRateCents int64) (*Car, error) {
	if brand == "" || model == "" {
		return nil, ErrMissingName
	}
	if dailyRateCents <= 0 {
		return nil, ErrInvalidDailyRate
	}

	return &Car{
		id:             uuid.New(),
		ownerID:        ownerID,
		brand:          brand,
		model:          model,
		dailyRateCents: dailyRateCents,
		listed:         true,
		availableNow:   true,
	}, nil
}

func ReconstructCar(
	id, ownerID uuid.UUID,
	brand, model string,
	dailyRateCents int64,
	listed, availableNow bool,
	createdAt, updatedAt time.Time,
) *Car {
	return &Car{
		id:             id,
		ownerID:        ownerID,
		brand:          brand,
		model:          model,
		dailyRateCents: dailyRateCents,
		listed:         listed,
		availableNow:   availableNow,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Bookable reports whether new bookings may be created for this car. It does
// not consult existing bookings; overlap checking is the availability index's
// job.
func (c *Car) Bookable() bool {
	return c.listed
}

func (c *Car) Delist(actorID uuid.UUID) error {
	if actorID != c.ownerID {
		return ErrNotOwner
	}
	if !c.listed {
		return ErrAlreadyDelisted
	}
	c.listed = false
	return nil
}

func (c *Car) ID() uuid.UUID         { return c.id }
func (c *Car) OwnerID() uuid.UUID    { return c.ownerID }
func (c *Car) Brand() string         { return c.brand }
func (c *Car) Model() string         { return c.model }
func (c *Car) DailyRateCents() int64 { return c.dailyRateCents }
func (c *Car) Listed() bool          { return c.listed }
func (c *Car) AvailableNow() bool    { return c.availableNow }
func (c *Car) CreatedAt() time.Time  { return c.createdAt }
func (c *Car) UpdatedAt() time.Time  { return c.updatedAt }
