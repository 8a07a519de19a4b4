//go:build unit || e2e

package builder

import (
	"time"

	domcar "wheelshare/internal/domain/car"
	"wheelshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type CarBuilder struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Brand          string
	Model          string
	DailyRateCents int64
	Listed         bool
	AvailableNow   bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewCarBuilder() *CarBuilder {
	now := time.Now()
	return &CarBuilder{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		Brand:          "Toyota",
		Model:          "Corolla",
		DailyRateCents: 5_000_00,
		Listed:         true,
		AvailableNow:   true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (c *CarBuilder) With(mutate func(*CarBuilder)) *CarBuilder {
	mutate(c)
	return c
}

// Build methods
func (c *CarBuilder) BuildDomain() *domcar.Car {
	return domcar.ReconstructCar(
		c.ID, c.OwnerID, c.Brand, c.Model, c.DailyRateCents,
		c.Listed, c.AvailableNow, c.CreatedAt, c.UpdatedAt,
	)
}

func (c *CarBuilder) BuildView() *queries.CarView {
	return &queries.CarView{
		ID:             c.ID,
		OwnerID:        c.OwnerID,
		Brand:          c.Brand,
		Model:          c.Model,
		DailyRateCents: c.DailyRateCents,
		Listed:         c.Listed,
		AvailableNow:   c.AvailableNow,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// Fluent builder methods
func (c *CarBuilder) WithOwnerID(ownerID uuid.UUID) *CarBuilder {
	c.OwnerID = ownerID
	return c
}

func (c *CarBuilder) WithDailyRateCents(cents int64) *CarBuilder {
	c.DailyRateCents = cents
	return c
}

func (c *CarBuilder) AsDelisted() *CarBuilder {
	c.Listed = false
	return c
}
