package request

import (
	"errors"
	"time"

	"driveshare/internal/domain/availability"
)

var errUnknownStep = errors.New("step must be date, hour or confirm")

// SelectionState mirrors the client's in-progress selection. All fields are
// optional; the engine tolerates any partially-built state.
type SelectionState struct {
	PickupDate *string `json:"pickup_date" form:"pickup_date" binding:"omitempty,datetime=2006-01-02"`
	ReturnDate *string `json:"return_date" form:"return_date" binding:"omitempty,datetime=2006-01-02"`
	PickupHour *int    `json:"pickup_hour" form:"pickup_hour" binding:"omitempty,min=0,max=23"`
	ReturnHour *int    `json:"return_hour" form:"return_hour" binding:"omitempty,min=0,max=23"`
}

func (s *SelectionState) ToDomain() (availability.Selection, error) {
	var sel availability.Selection
	if s == nil {
		return sel, nil
	}
	if s.PickupDate != nil {
		d, err := time.ParseInLocation("2006-01-02", *s.PickupDate, time.UTC)
		if err != nil {
			return sel, err
		}
		sel.PickupDate = &d
	}
	if s.ReturnDate != nil {
		d, err := time.ParseInLocation("2006-01-02", *s.ReturnDate, time.UTC)
		if err != nil {
			return sel, err
		}
		sel.ReturnDate = &d
	}
	sel.PickupHour = s.PickupHour
	sel.ReturnHour = s.ReturnHour
	return sel, nil
}

// CheckSelectionRequest advances one step of the selection state machine:
// choose a date, choose an hour, or confirm the completed window.
type CheckSelectionRequest struct {
	Step      string          `json:"step" binding:"required,oneof=date hour confirm"`
	Side      string          `json:"side" binding:"omitempty,oneof=pickup return"`
	Date      *string         `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Hour      *int            `json:"hour" binding:"omitempty,min=0,max=23"`
	Selection *SelectionState `json:"selection"`
}

func (r *CheckSelectionRequest) Validate() error {
	switch r.Step {
	case "date":
		if r.Side == "" || r.Date == nil {
			return errors.New("date step requires side and date")
		}
	case "hour":
		if r.Side == "" || r.Hour == nil {
			return errors.New("hour step requires side and hour")
		}
	case "confirm":
	default:
		return errUnknownStep
	}
	return nil
}
