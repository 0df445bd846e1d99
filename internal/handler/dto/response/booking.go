package response

import (
	"time"

	"driveshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID          uuid.UUID `json:"id"`
	VehicleID   uuid.UUID `json:"vehicle_id"`
	VehicleName string    `json:"vehicle_name"`
	RenterID    uuid.UUID `json:"renter_id"`
	RenterEmail string    `json:"renter_email"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Status      string    `json:"status"`
	PriceCents  int64     `json:"price_cents"`
	Note        *string   `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BookingListItemResponse struct {
	ID          uuid.UUID `json:"id"`
	VehicleID   uuid.UUID `json:"vehicle_id"`
	VehicleName string    `json:"vehicle_name"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Status      string    `json:"status"`
	PriceCents  int64     `json:"price_cents"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewBookingResponse(view *queries.BookingView) BookingResponse {
	return BookingResponse{
		ID:          view.ID,
		VehicleID:   view.VehicleID,
		VehicleName: view.VehicleName,
		RenterID:    view.RenterID,
		RenterEmail: view.RenterEmail,
		StartAt:     view.StartAt,
		EndAt:       view.EndAt,
		Status:      view.Status,
		PriceCents:  view.PriceCents,
		Note:        view.Note,
		CreatedAt:   view.CreatedAt,
		UpdatedAt:   view.UpdatedAt,
	}
}

func NewBookingListResponse(items []*queries.BookingListItem) []BookingListItemResponse {
	out := make([]BookingListItemResponse, len(items))
	for i, item := range items {
		out[i] = BookingListItemResponse{
			ID:          item.ID,
			VehicleID:   item.VehicleID,
			VehicleName: item.VehicleName,
			StartAt:     item.StartAt,
			EndAt:       item.EndAt,
			Status:      item.Status,
			PriceCents:  item.PriceCents,
			CreatedAt:   item.CreatedAt,
		}
	}
	return out
}
