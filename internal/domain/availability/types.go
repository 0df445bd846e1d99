// Package availability decides which calendar dates and hours of a vehicle
// are selectable for a rental window, and whether a tentative pickup/return
// pair collides with existing bookings. The package is pure: all functions
// take the reserved-interval snapshot and the current instant as explicit
// arguments and perform no I/O.
//
// All instants are UTC. Calendar dates are represented as time.Time values
// truncated to midnight UTC.
package availability

import (
	"errors"
	"time"
)

var (
	ErrInvalidInterval = errors.New("interval start must be before end")
	ErrHourOutOfRange  = errors.New("hour must be between 0 and 23")
)

// Side distinguishes the two halves of a selection.
type Side string

const (
	SidePickup Side = "pickup"
	SideReturn Side = "return"
)

func (s Side) IsValid() bool {
	return s == SidePickup || s == SideReturn
}

// Reason explains why an hour slot is not selectable.
type Reason string

const (
	ReasonNone              Reason = "none"
	ReasonPast              Reason = "past"
	ReasonBooked            Reason = "booked"
	ReasonMustBeAfterPickup Reason = "must-be-after-pickup"
)

// ReservedInterval is an already-confirmed booking's occupied span for a
// vehicle. PickupHour and ReturnHour are the hand-over hours on the start
// and end dates; those exact hours stay reserved even when the half-open
// overlap test alone would not catch them.
type ReservedInterval struct {
	Start      time.Time
	End        time.Time
	PickupHour int
	ReturnHour int
}

// NewReservedInterval normalizes the instants to UTC and enforces the
// Start < End invariant and hour ranges.
func NewReservedInterval(start, end time.Time, pickupHour, returnHour int) (ReservedInterval, error) {
	start = start.UTC()
	end = end.UTC()
	if !start.Before(end) {
		return ReservedInterval{}, ErrInvalidInterval
	}
	if pickupHour < 0 || pickupHour > 23 || returnHour < 0 || returnHour > 23 {
		return ReservedInterval{}, ErrHourOutOfRange
	}
	return ReservedInterval{
		Start:      start,
		End:        end,
		PickupHour: pickupHour,
		ReturnHour: returnHour,
	}, nil
}

// IntervalFromInstants derives the hand-over hours from the instants
// themselves, the common case when intervals come straight from bookings.
func IntervalFromInstants(start, end time.Time) (ReservedInterval, error) {
	return NewReservedInterval(start, end, start.UTC().Hour(), end.UTC().Hour())
}

// HourSlot is the derived selectability of one hour on one calendar date.
// Never persisted; recomputed per request.
type HourSlot struct {
	Hour      int
	Available bool
	Reason    Reason
}

// Selection is a rental window under construction. Fields are nil until the
// user chooses them; dates are midnight-UTC days, hours are 0-23.
type Selection struct {
	PickupDate *time.Time
	ReturnDate *time.Time
	PickupHour *int
	ReturnHour *int
}

// Complete reports whether both dates and both hours have been chosen.
func (s Selection) Complete() bool {
	return s.PickupDate != nil && s.ReturnDate != nil && s.PickupHour != nil && s.ReturnHour != nil
}

// PickupInstant returns the fully-specified pickup moment, if any.
func (s Selection) PickupInstant() (time.Time, bool) {
	if s.PickupDate == nil || s.PickupHour == nil {
		return time.Time{}, false
	}
	return At(*s.PickupDate, *s.PickupHour), true
}

// ReturnInstant returns the fully-specified return moment, if any.
func (s Selection) ReturnInstant() (time.Time, bool) {
	if s.ReturnDate == nil || s.ReturnHour == nil {
		return time.Time{}, false
	}
	return At(*s.ReturnDate, *s.ReturnHour), true
}

// ConfirmedSelection is the normalized form handed to booking creation.
type ConfirmedSelection struct {
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD
	PickupTime string // HH:00
	ReturnTime string // HH:00
}

// DateOf truncates an instant to its calendar day, midnight UTC.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// At combines a calendar date with an hour-of-day.
func At(date time.Time, hour int) time.Time {
	d := DateOf(date)
	return d.Add(time.Duration(hour) * time.Hour)
}

func sameDay(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}
