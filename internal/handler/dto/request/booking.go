package request

import (
	"time"

	"driveshare/internal/domain/availability"

	"github.com/google/uuid"
)

// CreateBookingRequest carries the normalized selection produced by the
// availability check flow: dates as YYYY-MM-DD, hand-over times as HH:00.
type CreateBookingRequest struct {
	VehicleID  uuid.UUID `json:"vehicle_id" binding:"required"`
	StartDate  string    `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate    string    `json:"end_date" binding:"required,datetime=2006-01-02"`
	PickupTime string    `json:"pickup_time" binding:"required,datetime=15:04"`
	ReturnTime string    `json:"return_time" binding:"required,datetime=15:04"`
	Note       string    `json:"note" binding:"max=500"`
}

// ToSelection rebuilds the availability selection so the server re-runs the
// exact confirmation the client claims to have passed.
func (r *CreateBookingRequest) ToSelection() (availability.Selection, error) {
	pickupDate, err := time.ParseInLocation("2006-01-02", r.StartDate, time.UTC)
	if err != nil {
		return availability.Selection{}, err
	}
	returnDate, err := time.ParseInLocation("2006-01-02", r.EndDate, time.UTC)
	if err != nil {
		return availability.Selection{}, err
	}
	pickupAt, err := time.Parse("15:04", r.PickupTime)
	if err != nil {
		return availability.Selection{}, err
	}
	returnAt, err := time.Parse("15:04", r.ReturnTime)
	if err != nil {
		return availability.Selection{}, err
	}

	pickupHour := pickupAt.Hour()
	returnHour := returnAt.Hour()
	return availability.Selection{
		PickupDate: &pickupDate,
		ReturnDate: &returnDate,
		PickupHour: &pickupHour,
		ReturnHour: &returnHour,
	}, nil
}
