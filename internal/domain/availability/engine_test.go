//go:build unit

package availability_test

import (
	"testing"
	"time"

	"driveshare/internal/domain/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func day(s string) time.Time {
	return availability.DateOf(ts(s + "T00:00"))
}

func interval(t *testing.T, start, end string) availability.ReservedInterval {
	t.Helper()
	iv, err := availability.IntervalFromInstants(ts(start), ts(end))
	require.NoError(t, err)
	return iv
}

func TestNewReservedInterval(t *testing.T) {
	t.Run("start must precede end", func(t *testing.T) {
		_, err := availability.NewReservedInterval(ts("2024-06-10T18:00"), ts("2024-06-10T09:00"), 18, 9)
		require.ErrorIs(t, err, availability.ErrInvalidInterval)

		_, err = availability.NewReservedInterval(ts("2024-06-10T09:00"), ts("2024-06-10T09:00"), 9, 9)
		require.ErrorIs(t, err, availability.ErrInvalidInterval)
	})

	t.Run("hour range enforced", func(t *testing.T) {
		_, err := availability.NewReservedInterval(ts("2024-06-10T09:00"), ts("2024-06-10T18:00"), 24, 9)
		require.ErrorIs(t, err, availability.ErrHourOutOfRange)
	})

	t.Run("hours derived from instants", func(t *testing.T) {
		iv, err := availability.IntervalFromInstants(ts("2024-06-10T09:00"), ts("2024-06-12T18:00"))
		require.NoError(t, err)
		assert.Equal(t, 9, iv.PickupHour)
		assert.Equal(t, 18, iv.ReturnHour)
	})
}

func TestDateInPast(t *testing.T) {
	now := ts("2024-06-10T14:30")

	cases := []struct {
		name string
		date time.Time
		want bool
	}{
		{"yesterday", day("2024-06-09"), true},
		{"today is not past even late in the day", day("2024-06-10"), false},
		{"tomorrow", day("2024-06-11"), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, availability.DateInPast(c.date, now))
		})
	}
}

func TestHourInPast(t *testing.T) {
	now := ts("2024-06-10T14:00")

	cases := []struct {
		name string
		hour int
		date time.Time
		want bool
	}{
		{"earlier hour today", 13, day("2024-06-10"), true},
		{"exactly now counts as past", 14, day("2024-06-10"), true},
		{"next hour today", 15, day("2024-06-10"), false},
		{"any hour tomorrow", 0, day("2024-06-11"), false},
		{"any hour yesterday", 23, day("2024-06-09"), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, availability.HourInPast(c.hour, c.date, now))
		})
	}
}

func TestHourBooked(t *testing.T) {
	intervals := []availability.ReservedInterval{
		interval(t, "2024-06-10T09:00", "2024-06-10T18:00"),
	}

	cases := []struct {
		name string
		hour int
		date time.Time
		want bool
	}{
		{"hour before the interval", 8, day("2024-06-10"), false},
		{"first occupied hour", 9, day("2024-06-10"), true},
		{"middle of the interval", 13, day("2024-06-10"), true},
		{"last partial hour", 17, day("2024-06-10"), true},
		// [18,19) does not overlap [09:00,18:00) but 18 is the hand-over
		// return hour of the interval's end date.
		{"return hand-over hour stays booked", 18, day("2024-06-10"), true},
		{"hour after hand-over", 19, day("2024-06-10"), false},
		{"other days untouched", 13, day("2024-06-11"), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, availability.HourBooked(c.hour, c.date, intervals))
		})
	}

	t.Run("pickup hand-over hour booked on start date of multi-day interval", func(t *testing.T) {
		multi := []availability.ReservedInterval{
			interval(t, "2024-06-10T09:00", "2024-06-12T18:00"),
		}
		assert.True(t, availability.HourBooked(9, day("2024-06-10"), multi))
		assert.True(t, availability.HourBooked(18, day("2024-06-12"), multi))
		// Hours past the return on the end date are free again.
		assert.False(t, availability.HourBooked(19, day("2024-06-12"), multi))
	})
}

func TestFindConflict(t *testing.T) {
	intervals := []availability.ReservedInterval{
		interval(t, "2024-06-10T09:00", "2024-06-10T18:00"),
	}

	t.Run("overlapping window conflicts", func(t *testing.T) {
		_, found := availability.FindConflict(ts("2024-06-10T08:00"), ts("2024-06-10T10:00"), intervals)
		assert.True(t, found)
	})

	t.Run("window ending at interval start does not conflict", func(t *testing.T) {
		_, found := availability.FindConflict(ts("2024-06-09T10:00"), ts("2024-06-10T09:00"), intervals)
		assert.False(t, found)
	})

	t.Run("window starting at interval end does not conflict", func(t *testing.T) {
		_, found := availability.FindConflict(ts("2024-06-10T18:00"), ts("2024-06-10T20:00"), intervals)
		assert.False(t, found)
	})

	t.Run("empty window never conflicts", func(t *testing.T) {
		_, found := availability.FindConflict(ts("2024-06-10T10:00"), ts("2024-06-10T10:00"), intervals)
		assert.False(t, found)
	})

	t.Run("first match wins", func(t *testing.T) {
		many := []availability.ReservedInterval{
			interval(t, "2024-06-10T09:00", "2024-06-10T12:00"),
			interval(t, "2024-06-10T13:00", "2024-06-10T18:00"),
		}
		iv, found := availability.FindConflict(ts("2024-06-10T08:00"), ts("2024-06-10T20:00"), many)
		require.True(t, found)
		assert.Equal(t, many[0], iv)
	})
}

func TestAvailableHours(t *testing.T) {
	intervals := []availability.ReservedInterval{
		interval(t, "2024-06-10T09:00", "2024-06-10T18:00"),
	}

	t.Run("reason priority and hand-over hour", func(t *testing.T) {
		now := ts("2024-06-10T07:30")
		slots := availability.AvailableHours(day("2024-06-10"), availability.SidePickup, availability.Selection{}, intervals, now)
		require.Len(t, slots, 24)

		assert.Equal(t, availability.ReasonPast, slots[7].Reason)
		assert.True(t, slots[8].Available)
		for h := 9; h <= 18; h++ {
			assert.False(t, slots[h].Available, "hour %d", h)
			assert.Equal(t, availability.ReasonBooked, slots[h].Reason, "hour %d", h)
		}
		assert.True(t, slots[19].Available)
	})

	t.Run("past beats booked", func(t *testing.T) {
		now := ts("2024-06-10T12:00")
		slots := availability.AvailableHours(day("2024-06-10"), availability.SidePickup, availability.Selection{}, intervals, now)
		assert.Equal(t, availability.ReasonPast, slots[10].Reason)
		assert.Equal(t, availability.ReasonBooked, slots[13].Reason)
	})

	// Property: past hours are monotonic within a fixed now.
	t.Run("past hours form a prefix", func(t *testing.T) {
		now := ts("2024-06-10T14:00")
		slots := availability.AvailableHours(day("2024-06-10"), availability.SidePickup, availability.Selection{}, nil, now)
		lastPast := -1
		for _, s := range slots {
			if s.Reason == availability.ReasonPast {
				lastPast = s.Hour
			}
		}
		for h := 0; h <= lastPast; h++ {
			assert.Equal(t, availability.ReasonPast, slots[h].Reason, "hour %d", h)
		}
	})

	// Property: return side never offers an hour at or before the same-day pickup.
	t.Run("return hours after same-day pickup only", func(t *testing.T) {
		now := ts("2024-06-01T00:00")
		pickupDate := day("2024-06-20")
		pickupHour := 10
		sel := availability.Selection{PickupDate: &pickupDate, PickupHour: &pickupHour}

		slots := availability.AvailableHours(pickupDate, availability.SideReturn, sel, nil, now)
		for h := 0; h <= pickupHour; h++ {
			assert.False(t, slots[h].Available, "hour %d", h)
			assert.Equal(t, availability.ReasonMustBeAfterPickup, slots[h].Reason, "hour %d", h)
		}
		for h := pickupHour + 1; h < 24; h++ {
			assert.True(t, slots[h].Available, "hour %d", h)
		}

		// The rule only binds the return side on the pickup day itself.
		nextDay := availability.AvailableHours(day("2024-06-21"), availability.SideReturn, sel, nil, now)
		assert.True(t, nextDay[0].Available)
		pickupSide := availability.AvailableHours(pickupDate, availability.SidePickup, sel, nil, now)
		assert.True(t, pickupSide[9].Available)
	})
}

func TestHasAvailableHour(t *testing.T) {
	now := ts("2024-06-10T12:00")

	fullDay := []availability.ReservedInterval{
		interval(t, "2024-06-11T00:00", "2024-06-12T00:00"),
	}
	slots := availability.AvailableHours(day("2024-06-11"), availability.SidePickup, availability.Selection{}, fullDay, now)
	assert.False(t, availability.HasAvailableHour(slots))

	free := availability.AvailableHours(day("2024-06-12"), availability.SidePickup, availability.Selection{}, fullDay, now)
	assert.True(t, availability.HasAvailableHour(free))
}
