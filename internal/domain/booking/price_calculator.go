package booking

import (
	"wheelshare/internal/domain/car"
)

type PriceCalculator interface {
	CalculatePriceCents(c *car.Car, period Period) int64
}

// DailyRateCalculator bills whole days at the car's daily rate; partial days
// round up to a full day.
type DailyRateCalculator struct{}

func NewDailyRateCalculator() *DailyRateCalculator {
	return &DailyRateCalculator{}
}

func (pc *DailyRateCalculator) CalculatePriceCents(c *car.Car, period Period) int64 {
	return int64(period.Days()) * c.DailyRateCents()
}
