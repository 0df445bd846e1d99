package response

import (
	"time"

	"driveshare/internal/domain/availability"
	"driveshare/internal/usecase/queries"
)

type ReservedIntervalResponse struct {
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
	PickupTime    string    `json:"pickupTime"`
	ReturnTime    string    `json:"returnTime"`
}

type HourSlotResponse struct {
	Hour      int    `json:"hour"`
	Available bool   `json:"available"`
	Reason    string `json:"reason"`
}

type DayAvailabilityResponse struct {
	Date  string             `json:"date"`
	Side  string             `json:"side"`
	Empty bool               `json:"empty"`
	Slots []HourSlotResponse `json:"slots"`
}

// SelectionResponse echoes the updated selection state after a check step.
type SelectionResponse struct {
	PickupDate *string `json:"pickup_date,omitempty"`
	ReturnDate *string `json:"return_date,omitempty"`
	PickupHour *int    `json:"pickup_hour,omitempty"`
	ReturnHour *int    `json:"return_hour,omitempty"`
}

// CheckSelectionResponse is the discriminated result of one selection step:
// either ok with the updated (or confirmed) state, or rejected with the
// engine's reason tag.
type CheckSelectionResponse struct {
	OK        bool                        `json:"ok"`
	Reason    string                      `json:"reason,omitempty"`
	Selection *SelectionResponse          `json:"selection,omitempty"`
	Confirmed *ConfirmedSelectionResponse `json:"confirmed,omitempty"`
}

type ConfirmedSelectionResponse struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	PickupTime string `json:"pickup_time"`
	ReturnTime string `json:"return_time"`
}

func NewReservedIntervalListResponse(views []queries.ReservedIntervalView) []ReservedIntervalResponse {
	out := make([]ReservedIntervalResponse, len(views))
	for i, v := range views {
		out[i] = ReservedIntervalResponse{
			StartDateTime: v.StartDateTime,
			EndDateTime:   v.EndDateTime,
			PickupTime:    v.PickupTime,
			ReturnTime:    v.ReturnTime,
		}
	}
	return out
}

func NewDayAvailabilityResponse(day *queries.DayAvailability) DayAvailabilityResponse {
	slots := make([]HourSlotResponse, len(day.Slots))
	for i, s := range day.Slots {
		slots[i] = HourSlotResponse{
			Hour:      s.Hour,
			Available: s.Available,
			Reason:    string(s.Reason),
		}
	}
	return DayAvailabilityResponse{
		Date:  day.Date,
		Side:  string(day.Side),
		Empty: day.Empty,
		Slots: slots,
	}
}

func NewSelectionResponse(sel availability.Selection) *SelectionResponse {
	resp := &SelectionResponse{
		PickupHour: sel.PickupHour,
		ReturnHour: sel.ReturnHour,
	}
	if sel.PickupDate != nil {
		d := sel.PickupDate.Format("2006-01-02")
		resp.PickupDate = &d
	}
	if sel.ReturnDate != nil {
		d := sel.ReturnDate.Format("2006-01-02")
		resp.ReturnDate = &d
	}
	return resp
}

func NewConfirmedSelectionResponse(c availability.ConfirmedSelection) *ConfirmedSelectionResponse {
	return &ConfirmedSelectionResponse{
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
		PickupTime: c.PickupTime,
		ReturnTime: c.ReturnTime,
	}
}
