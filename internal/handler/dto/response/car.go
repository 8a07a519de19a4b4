package response

import (
	"time"

	"wheelshare/internal/pkg/opaqueid"
	"wheelshare/internal/usecase/queries"
)

type CarResponse struct {
	ID             string    `json:"id"`
	Brand          string    `json:"brand"`
	Model          string    `json:"model"`
	DailyRateCents int64     `json:"dailyRateCents"`
	Listed         bool      `json:"listed"`
	AvailableNow   bool      `json:"availableNow"`
	CreatedAt      time.Time `json:"createdAt"`
}

func FromCarView(codec *opaqueid.Codec, rm *queries.CarView) *CarResponse {
	return &CarResponse{
		ID:             codec.Encode(rm.ID),
		Brand:          rm.Brand,
		Model:          rm.Model,
		DailyRateCents: rm.DailyRateCents,
		Listed:         rm.Listed,
		AvailableNow:   rm.AvailableNow,
		CreatedAt:      rm.CreatedAt,
	}
}
