package availability

import "time"

// Overlaps reports whether the half-open windows [aStart,aEnd) and
// [bStart,bEnd) intersect: aStart < bEnd && bStart < aEnd. Shared boundary
// instants do not count as overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DateInPast reports whether the date's start-of-day is strictly before
// today's start-of-day. Past calendar days are never selectable.
func DateInPast(date, now time.Time) bool {
	return DateOf(date).Before(DateOf(now))
}

// HourInPast reports whether date@hour is at or before the current instant.
func HourInPast(hour int, date, now time.Time) bool {
	return !At(date, hour).After(now)
}

// HourBooked reports whether the one-hour slot [date@hour, date@hour+1)
// collides with any reserved interval. Two rules apply:
//
//  1. half-open overlap with the interval's occupied span, and
//  2. the hand-over rule: an interval's pickup hour stays booked on its
//     start date and its return hour on its end date, so a new renter can
//     never grab the exact hour the vehicle changes hands.
func HourBooked(hour int, date time.Time, intervals []ReservedInterval) bool {
	slotStart := At(date, hour)
	slotEnd := slotStart.Add(time.Hour)

	for _, iv := range intervals {
		if Overlaps(slotStart, slotEnd, iv.Start, iv.End) {
			return true
		}
		if sameDay(date, iv.Start) && hour == iv.PickupHour {
			return true
		}
		if sameDay(date, iv.End) && hour == iv.ReturnHour {
			return true
		}
	}
	return false
}

// FindConflict returns the first reserved interval overlapping the half-open
// candidate window [start, end), if any. An empty or inverted window never
// conflicts.
func FindConflict(start, end time.Time, intervals []ReservedInterval) (ReservedInterval, bool) {
	if !end.After(start) {
		return ReservedInterval{}, false
	}
	for _, iv := range intervals {
		if Overlaps(start, end, iv.Start, iv.End) {
			return iv, true
		}
	}
	return ReservedInterval{}, false
}

// AvailableHours produces the 24 hour slots of a calendar date for one side
// of the selection. Unavailability reasons apply in priority order:
// past, then booked, then (return side on the pickup day) must-be-after-pickup.
func AvailableHours(date time.Time, side Side, sel Selection, intervals []ReservedInterval, now time.Time) []HourSlot {
	slots := make([]HourSlot, 24)
	for hour := range slots {
		slots[hour] = hourSlot(hour, date, side, sel, intervals, now)
	}
	return slots
}

func hourSlot(hour int, date time.Time, side Side, sel Selection, intervals []ReservedInterval, now time.Time) HourSlot {
	switch {
	case HourInPast(hour, date, now):
		return HourSlot{Hour: hour, Reason: ReasonPast}
	case HourBooked(hour, date, intervals):
		return HourSlot{Hour: hour, Reason: ReasonBooked}
	case side == SideReturn && mustFollowPickup(hour, date, sel):
		return HourSlot{Hour: hour, Reason: ReasonMustBeAfterPickup}
	default:
		return HourSlot{Hour: hour, Available: true, Reason: ReasonNone}
	}
}

// mustFollowPickup applies only when the return is being chosen on the same
// calendar day as the already-chosen pickup: the return hour has to be
// strictly after the pickup hour.
func mustFollowPickup(hour int, date time.Time, sel Selection) bool {
	return sel.PickupDate != nil && sel.PickupHour != nil &&
		sameDay(*sel.PickupDate, date) && hour <= *sel.PickupHour
}

// HasAvailableHour reports whether at least one slot is selectable; a day
// with none should not be offered at all.
func HasAvailableHour(slots []HourSlot) bool {
	for _, s := range slots {
		if s.Available {
			return true
		}
	}
	return false
}
