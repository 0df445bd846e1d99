package availability

import (
	"errors"
	"fmt"
	"time"
)

// Validation outcomes. All are recovered locally by the caller (re-prompt the
// user); none abort the selection session.
var (
	ErrDateInPast          = errors.New("date is in the past")
	ErrHourInPast          = errors.New("hour is in the past")
	ErrOrderInvalid        = errors.New("pickup must come before return")
	ErrSlotBooked          = errors.New("slot is already booked")
	ErrMustBeAfterPickup   = errors.New("return hour must be after pickup hour")
	ErrConflict            = errors.New("selection conflicts with an existing booking")
	ErrIncompleteSelection = errors.New("selection is not fully specified")
	ErrNoAvailableHours    = errors.New("no available hours on this date")
)

// Tag maps a validation error to its wire-level reason tag.
func Tag(err error) string {
	switch {
	case errors.Is(err, ErrDateInPast), errors.Is(err, ErrHourInPast):
		return "past"
	case errors.Is(err, ErrSlotBooked):
		return "booked"
	case errors.Is(err, ErrOrderInvalid):
		return "order-invalid"
	case errors.Is(err, ErrMustBeAfterPickup):
		return "must-be-after-pickup"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrNoAvailableHours):
		return "empty-day"
	default:
		return "invalid"
	}
}

// ApplyDate validates choosing a calendar date for one side of the selection
// and returns the updated selection. On rejection the input selection is
// returned unchanged.
//
// Dependent fields regress rather than fail: a new pickup date always clears
// the pickup hour, and moving the pickup past the chosen return clears the
// return date and hour so the user re-picks them. A return date before the
// chosen pickup date is rejected outright.
func ApplyDate(sel Selection, side Side, date time.Time, intervals []ReservedInterval, now time.Time) (Selection, error) {
	date = DateOf(date)
	if DateInPast(date, now) {
		return sel, ErrDateInPast
	}

	switch side {
	case SidePickup:
		if sel.ReturnDate != nil && date.Before(*sel.ReturnDate) {
			if err := checkInterveningDays(date, *sel.ReturnDate, intervals); err != nil {
				return sel, err
			}
		}
		out := sel
		out.PickupDate = &date
		out.PickupHour = nil
		if sel.ReturnDate != nil && date.After(*sel.ReturnDate) {
			out.ReturnDate = nil
			out.ReturnHour = nil
		}
		return out, nil

	case SideReturn:
		if sel.PickupDate != nil && date.Before(*sel.PickupDate) {
			return sel, ErrOrderInvalid
		}
		if sel.PickupDate != nil && date.After(*sel.PickupDate) {
			if err := checkInterveningDays(*sel.PickupDate, date, intervals); err != nil {
				return sel, err
			}
		}
		out := sel
		out.ReturnDate = &date
		out.ReturnHour = nil
		return out, nil

	default:
		return sel, fmt.Errorf("unknown side %q", side)
	}
}

// checkInterveningDays runs the day-granularity pre-flight between two chosen
// dates: any reservation occupying the span from end-of-day of the earlier
// date to start-of-day of the later date would make the window unbookable
// before hours are even chosen.
func checkInterveningDays(earlier, later time.Time, intervals []ReservedInterval) error {
	spanStart := DateOf(earlier).AddDate(0, 0, 1)
	spanEnd := DateOf(later)
	if _, found := FindConflict(spanStart, spanEnd, intervals); found {
		return ErrConflict
	}
	return nil
}

// ApplyHour validates choosing an hour for one side of the selection. The
// side's date must already be chosen. Once the candidate completes the
// selection, the full [pickup, return) window gets a final conflict check.
//
// On acceptance a pickup hour at or past a same-day return hour clears the
// return hour for re-selection.
func ApplyHour(sel Selection, side Side, hour int, intervals []ReservedInterval, now time.Time) (Selection, error) {
	if hour < 0 || hour > 23 {
		return sel, ErrHourOutOfRange
	}

	switch side {
	case SidePickup:
		if sel.PickupDate == nil {
			return sel, ErrIncompleteSelection
		}
		date := *sel.PickupDate
		if err := checkHour(hour, date, intervals, now); err != nil {
			return sel, err
		}
		out := sel
		out.PickupHour = &hour
		if out.ReturnDate != nil && out.ReturnHour != nil &&
			sameDay(*out.ReturnDate, date) && hour >= *out.ReturnHour {
			out.ReturnHour = nil
		}
		if err := checkCompleteWindow(out, intervals); err != nil {
			return sel, err
		}
		return out, nil

	case SideReturn:
		if sel.ReturnDate == nil {
			return sel, ErrIncompleteSelection
		}
		date := *sel.ReturnDate
		if err := checkHour(hour, date, intervals, now); err != nil {
			return sel, err
		}
		if mustFollowPickup(hour, date, sel) {
			return sel, ErrMustBeAfterPickup
		}
		out := sel
		out.ReturnHour = &hour
		if err := checkCompleteWindow(out, intervals); err != nil {
			return sel, err
		}
		return out, nil

	default:
		return sel, fmt.Errorf("unknown side %q", side)
	}
}

func checkHour(hour int, date time.Time, intervals []ReservedInterval, now time.Time) error {
	if HourInPast(hour, date, now) {
		return ErrHourInPast
	}
	if HourBooked(hour, date, intervals) {
		return ErrSlotBooked
	}
	return nil
}

func checkCompleteWindow(sel Selection, intervals []ReservedInterval) error {
	start, ok := sel.PickupInstant()
	if !ok {
		return nil
	}
	end, ok := sel.ReturnInstant()
	if !ok {
		return nil
	}
	if _, found := FindConflict(start, end, intervals); found {
		return ErrConflict
	}
	return nil
}

// Confirm runs the terminal validation of a fully-specified selection and
// returns the normalized form submitted to booking creation.
func Confirm(sel Selection, intervals []ReservedInterval) (ConfirmedSelection, error) {
	start, okStart := sel.PickupInstant()
	end, okEnd := sel.ReturnInstant()
	if !okStart || !okEnd {
		return ConfirmedSelection{}, ErrIncompleteSelection
	}
	if !start.Before(end) {
		return ConfirmedSelection{}, ErrOrderInvalid
	}
	if _, found := FindConflict(start, end, intervals); found {
		return ConfirmedSelection{}, ErrConflict
	}

	return ConfirmedSelection{
		StartDate:  start.Format("2006-01-02"),
		EndDate:    end.Format("2006-01-02"),
		PickupTime: fmt.Sprintf("%02d:00", start.Hour()),
		ReturnTime: fmt.Sprintf("%02d:00", end.Hour()),
	}, nil
}
