package response

import (
	"time"

	"driveshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type VehicleResponse struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	Name           string    `json:"name"`
	Plate          string    `json:"plate"`
	DailyRateCents int64     `json:"daily_rate_cents"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewVehicleResponse(view *queries.VehicleView) VehicleResponse {
	return VehicleResponse{
		ID:             view.ID,
		OwnerID:        view.OwnerID,
		Name:           view.Name,
		Plate:          view.Plate,
		DailyRateCents: view.DailyRateCents,
		Status:         view.Status,
		CreatedAt:      view.CreatedAt,
		UpdatedAt:      view.UpdatedAt,
	}
}

func NewVehicleListResponse(views []*queries.VehicleView) []VehicleResponse {
	out := make([]VehicleResponse, len(views))
	for i, view := range views {
		out[i] = NewVehicleResponse(view)
	}
	return out
}
