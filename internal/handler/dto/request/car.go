package request

type CreateCarRequest struct {
	Brand          string `json:"brand" binding:"required"`
	Model          string `json:"model" binding:"required"`
	DailyRateCents int64  `json:"daily_rate_cents" binding:"required,gt=0"`
}
