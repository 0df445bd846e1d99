//go:build unit

package availability_test

import (
	"testing"
	"time"

	"driveshare/internal/domain/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrTime(t time.Time) *time.Time { return &t }
func ptrInt(i int) *int              { return &i }

func TestApplyDate(t *testing.T) {
	now := ts("2024-06-01T08:00")

	t.Run("past date rejected on either side", func(t *testing.T) {
		_, err := availability.ApplyDate(availability.Selection{}, availability.SidePickup, day("2024-05-31"), nil, now)
		require.ErrorIs(t, err, availability.ErrDateInPast)
		assert.Equal(t, "past", availability.Tag(err))

		_, err = availability.ApplyDate(availability.Selection{}, availability.SideReturn, day("2024-05-31"), nil, now)
		require.ErrorIs(t, err, availability.ErrDateInPast)
	})

	t.Run("picking a pickup date clears the pickup hour", func(t *testing.T) {
		sel := availability.Selection{
			PickupDate: ptrTime(day("2024-06-10")),
			PickupHour: ptrInt(9),
		}
		out, err := availability.ApplyDate(sel, availability.SidePickup, day("2024-06-11"), nil, now)
		require.NoError(t, err)
		require.NotNil(t, out.PickupDate)
		assert.Equal(t, day("2024-06-11"), *out.PickupDate)
		assert.Nil(t, out.PickupHour)
	})

	t.Run("pickup moved past the return clears the return", func(t *testing.T) {
		sel := availability.Selection{
			PickupDate: ptrTime(day("2024-06-10")),
			ReturnDate: ptrTime(day("2024-06-12")),
			ReturnHour: ptrInt(15),
		}
		out, err := availability.ApplyDate(sel, availability.SidePickup, day("2024-06-14"), nil, now)
		require.NoError(t, err)
		assert.Equal(t, day("2024-06-14"), *out.PickupDate)
		assert.Nil(t, out.ReturnDate)
		assert.Nil(t, out.ReturnHour)
	})

	t.Run("return before pickup rejected", func(t *testing.T) {
		sel := availability.Selection{PickupDate: ptrTime(day("2024-06-10"))}
		_, err := availability.ApplyDate(sel, availability.SideReturn, day("2024-06-09"), nil, now)
		require.ErrorIs(t, err, availability.ErrOrderInvalid)
		assert.Equal(t, "order-invalid", availability.Tag(err))
	})

	t.Run("same-day return allowed", func(t *testing.T) {
		sel := availability.Selection{PickupDate: ptrTime(day("2024-06-10"))}
		out, err := availability.ApplyDate(sel, availability.SideReturn, day("2024-06-10"), nil, now)
		require.NoError(t, err)
		assert.Equal(t, day("2024-06-10"), *out.ReturnDate)
	})

	t.Run("picking a return date clears a stale return hour", func(t *testing.T) {
		sel := availability.Selection{
			PickupDate: ptrTime(day("2024-06-10")),
			ReturnDate: ptrTime(day("2024-06-11")),
			ReturnHour: ptrInt(12),
		}
		out, err := availability.ApplyDate(sel, availability.SideReturn, day("2024-06-12"), nil, now)
		require.NoError(t, err)
		assert.Nil(t, out.ReturnHour)
	})

	// A reservation occupying 2024-06-10 through 2024-06-12
	// blocks a 2024-06-09 → 2024-06-13 window at date-selection time,
	// before any hour is chosen.
	t.Run("intervening fully-booked days rejected early", func(t *testing.T) {
		intervals := []availability.ReservedInterval{
			interval(t, "2024-06-10T09:00", "2024-06-12T18:00"),
		}
		sel := availability.Selection{PickupDate: ptrTime(day("2024-06-09"))}

		_, err := availability.ApplyDate(sel, availability.SideReturn, day("2024-06-13"), intervals, now)
		require.ErrorIs(t, err, availability.ErrConflict)
		assert.Equal(t, "conflict", availability.Tag(err))

		// The same check fires when the pickup date is the one being moved.
		sel2 := availability.Selection{ReturnDate: ptrTime(day("2024-06-13"))}
		_, err = availability.ApplyDate(sel2, availability.SidePickup, day("2024-06-09"), intervals, now)
		require.ErrorIs(t, err, availability.ErrConflict)
	})

	t.Run("adjacent days have no intervening span", func(t *testing.T) {
		intervals := []availability.ReservedInterval{
			interval(t, "2024-06-10T09:00", "2024-06-10T18:00"),
		}
		sel := availability.Selection{PickupDate: ptrTime(day("2024-06-09"))}
		_, err := availability.ApplyDate(sel, availability.SideReturn, day("2024-06-10"), intervals, now)
		require.NoError(t, err)
	})

	// Property: re-validation with identical inputs is idempotent.
	t.Run("idempotent re-validation", func(t *testing.T) {
		intervals := []availability.ReservedInterval{
			interval(t, "2024-06-10T09:00", "2024-06-12T18:00"),
		}
		sel := availability.Selection{PickupDate: ptrTime(day("2024-06-09"))}

		first, err1 := availability.ApplyDate(sel, availability.SideReturn, day("2024-06-09"), intervals, now)
		second, err2 := availability.ApplyDate(sel, availability.SideReturn, day("2024-06-09"), intervals, now)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, first, second)

		_, err1 = availability.ApplyDate(sel, availability.SideReturn, day("2024-06-13"), intervals, now)
		_, err2 = availability.ApplyDate(sel, availability.SideReturn, day("2024-06-13"), intervals, now)
		assert.ErrorIs(t, err1, availability.ErrConflict)
		assert.ErrorIs(t, err2, availability.ErrConflict)
	})
}

func TestApplyHour(t *testing.T) {
	now := ts("2024-06-01T08:00")

	t.Run("hour requires its date", func(t *testing.T) {
		_, err := availability.ApplyHour(availability.Selection{}, availability.SidePickup, 10, nil, now)
		require.ErrorIs(t, err, availability.ErrIncompleteSelection)
	})

	t.Run("out-of-range hour rejected", func(t *testing.T) {
		sel := availability.Selection{PickupDate: ptrTime(day("2024-06-10"))}
		_, err := availability.ApplyHour(sel, availability.SidePickup, 24, nil, now)
		require.ErrorIs(t, err, availability.ErrHourOutOfRange)
	})

	t.Run("past hour rejected", func(t *testing.T) {
		sel := availability.Selection{PickupDate: ptrTime(day("2024-06-01"))}
		_, err := availability.ApplyHour(sel, availability.SidePickup, 7, nil, now)
		require.ErrorIs(t, err, availability.ErrHourInPast)
		assert.Equal(t, "past", availability.Tag(err))
	})

	t.Run("booked hour rejected", func(t *testing.T) {
		intervals := []availability.ReservedInterval{
			interval(t, "2024-06-10T09:00", "2024-06-10T18:00"),
		}
		sel := availability.Selection{PickupDate: ptrTime(day("2024-06-10"))}
		_, err := availability.ApplyHour(sel, availability.SidePickup, 13, intervals, now)
		require.ErrorIs(t, err, availability.ErrSlotBooked)
		assert.Equal(t, "booked", availability.Tag(err))
	})

	t.Run("same-day return hour must trail pickup", func(t *testing.T) {
		sel := availability.Selection{
			PickupDate: ptrTime(day("2024-06-10")),
			ReturnDate: ptrTime(day("2024-06-10")),
			PickupHour: ptrInt(10),
		}
		_, err := availability.ApplyHour(sel, availability.SideReturn, 10, nil, now)
		require.ErrorIs(t, err, availability.ErrMustBeAfterPickup)
		assert.Equal(t, "must-be-after-pickup", availability.Tag(err))

		out, err := availability.ApplyHour(sel, availability.SideReturn, 11, nil, now)
		require.NoError(t, err)
		assert.Equal(t, 11, *out.ReturnHour)
	})

	t.Run("new pickup hour clears an overtaken same-day return hour", func(t *testing.T) {
		sel := availability.Selection{
			PickupDate: ptrTime(day("2024-06-10")),
			ReturnDate: ptrTime(day("2024-06-10")),
			PickupHour: ptrInt(8),
			ReturnHour: ptrInt(12),
		}
		out, err := availability.ApplyHour(sel, availability.SidePickup, 12, nil, now)
		require.NoError(t, err)
		assert.Equal(t, 12, *out.PickupHour)
		assert.Nil(t, out.ReturnHour)
	})

	t.Run("completing the selection triggers the window conflict check", func(t *testing.T) {
		intervals := []availability.ReservedInterval{
			interval(t, "2024-06-10T12:00", "2024-06-10T14:00"),
		}
		sel := availability.Selection{
			PickupDate: ptrTime(day("2024-06-10")),
			ReturnDate: ptrTime(day("2024-06-10")),
			PickupHour: ptrInt(8),
		}
		// Hour 16 itself is free, but [08:00,16:00) spans the reservation.
		_, err := availability.ApplyHour(sel, availability.SideReturn, 16, intervals, now)
		require.ErrorIs(t, err, availability.ErrConflict)

		out, err := availability.ApplyHour(sel, availability.SideReturn, 11, intervals, now)
		require.NoError(t, err)
		assert.True(t, out.Complete())
	})
}

func TestConfirm(t *testing.T) {
	t.Run("incomplete selection rejected", func(t *testing.T) {
		_, err := availability.Confirm(availability.Selection{PickupDate: ptrTime(day("2024-06-10"))}, nil)
		require.ErrorIs(t, err, availability.ErrIncompleteSelection)
	})

	t.Run("inverted window rejected", func(t *testing.T) {
		sel := availability.Selection{
			PickupDate: ptrTime(day("2024-06-10")),
			ReturnDate: ptrTime(day("2024-06-10")),
			PickupHour: ptrInt(15),
			ReturnHour: ptrInt(15),
		}
		_, err := availability.Confirm(sel, nil)
		require.ErrorIs(t, err, availability.ErrOrderInvalid)
	})

	// Boundary case: pickup 08:00 is free, but return 09:00 collides
	// with the reserved pickup hand-over hour, so the completed window
	// [08:00,09:00) was never reachable through ApplyHour; Confirm itself
	// passes the overlap test here, demonstrating the two rules are distinct.
	t.Run("boundary hand-over hour blocked at hour selection", func(t *testing.T) {
		intervals := []availability.ReservedInterval{
			interval(t, "2024-06-10T09:00", "2024-06-10T18:00"),
		}
		now := ts("2024-06-01T00:00")
		sel := availability.Selection{
			PickupDate: ptrTime(day("2024-06-10")),
			ReturnDate: ptrTime(day("2024-06-10")),
		}

		sel, err := availability.ApplyHour(sel, availability.SidePickup, 8, intervals, now)
		require.NoError(t, err)

		_, err = availability.ApplyHour(sel, availability.SideReturn, 9, intervals, now)
		require.ErrorIs(t, err, availability.ErrSlotBooked)
	})

	// Acceptance case: the window ends exactly at the hour before the reserved
	// pickup hour on the next day; no overlap anywhere.
	t.Run("window ending before reserved pickup accepted", func(t *testing.T) {
		intervals := []availability.ReservedInterval{
			interval(t, "2024-06-10T09:00", "2024-06-10T18:00"),
		}
		sel := availability.Selection{
			PickupDate: ptrTime(day("2024-06-09")),
			ReturnDate: ptrTime(day("2024-06-10")),
			PickupHour: ptrInt(10),
			ReturnHour: ptrInt(8),
		}
		confirmed, err := availability.Confirm(sel, intervals)
		require.NoError(t, err)
		assert.Equal(t, availability.ConfirmedSelection{
			StartDate:  "2024-06-09",
			EndDate:    "2024-06-10",
			PickupTime: "10:00",
			ReturnTime: "08:00",
		}, confirmed)
	})

	t.Run("overlapping window rejected", func(t *testing.T) {
		intervals := []availability.ReservedInterval{
			interval(t, "2024-06-10T09:00", "2024-06-10T18:00"),
		}
		sel := availability.Selection{
			PickupDate: ptrTime(day("2024-06-10")),
			ReturnDate: ptrTime(day("2024-06-11")),
			PickupHour: ptrInt(17),
			ReturnHour: ptrInt(10),
		}
		_, err := availability.Confirm(sel, intervals)
		require.ErrorIs(t, err, availability.ErrConflict)
	})

	// Property: two selections confirmed against snapshots updated in between
	// never overlap each other.
	t.Run("sequential confirmations stay disjoint", func(t *testing.T) {
		intervals := []availability.ReservedInterval{
			interval(t, "2024-06-10T09:00", "2024-06-10T18:00"),
		}

		first := availability.Selection{
			PickupDate: ptrTime(day("2024-06-11")),
			ReturnDate: ptrTime(day("2024-06-11")),
			PickupHour: ptrInt(8),
			ReturnHour: ptrInt(12),
		}
		_, err := availability.Confirm(first, intervals)
		require.NoError(t, err)

		// The first confirmation lands in the directory before the second
		// renter confirms.
		start, _ := first.PickupInstant()
		end, _ := first.ReturnInstant()
		booked, err := availability.IntervalFromInstants(start, end)
		require.NoError(t, err)
		intervals = append(intervals, booked)

		second := availability.Selection{
			PickupDate: ptrTime(day("2024-06-11")),
			ReturnDate: ptrTime(day("2024-06-11")),
			PickupHour: ptrInt(10),
			ReturnHour: ptrInt(14),
		}
		_, err = availability.Confirm(second, intervals)
		require.ErrorIs(t, err, availability.ErrConflict)

		disjoint := availability.Selection{
			PickupDate: ptrTime(day("2024-06-11")),
			ReturnDate: ptrTime(day("2024-06-11")),
			PickupHour: ptrInt(13),
			ReturnHour: ptrInt(16),
		}
		_, err = availability.Confirm(disjoint, intervals)
		require.NoError(t, err)
	})
}
