package request

type RegisterVehicleRequest struct {
	Name           string `json:"name" binding:"required,max=255"`
	Plate          string `json:"plate" binding:"required,max=16"`
	DailyRateCents int64  `json:"daily_rate_cents" binding:"required,min=0"`
}
