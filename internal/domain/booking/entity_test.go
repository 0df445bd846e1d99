//go:build unit

package booking_test

import (
	"testing"
	"time"

	"driveshare/internal/domain/booking"
	"driveshare/internal/domain/vehicle"
	"driveshare/internal/pkg/clock"

	"github.com/google/uuid"
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

func approvedVehicle(t *testing.T, rateCents int64) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(uuid.New(), "Honda Jazz", "abc-123", rateCents)
	require.NoError(t, err)
	require.NoError(t, v.Approve())
	return v
}

func TestNewRentalPeriod(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		errIs      error
	}{
		{name: "valid window", start: ts("2024-06-10T09:00"), end: ts("2024-06-12T18:00")},
		{name: "single hour", start: ts("2024-06-10T09:00"), end: ts("2024-06-10T10:00")},
		{name: "inverted", start: ts("2024-06-10T18:00"), end: ts("2024-06-10T09:00"), errIs: booking.ErrInvalidPeriod},
		{name: "zero length", start: ts("2024-06-10T09:00"), end: ts("2024-06-10T09:00"), errIs: booking.ErrInvalidPeriod},
		{name: "not hour aligned", start: ts("2024-06-10T09:30"), end: ts("2024-06-10T18:00"), errIs: booking.ErrHourGranularity},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := booking.NewRentalPeriod(c.start, c.end)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.start, p.Start())
			assert.Equal(t, c.end, p.End())
		})
	}
}

func TestRentalPeriodDays(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		want       int
	}{
		{"few hours count as one day", "2024-06-10T09:00", "2024-06-10T18:00", 1},
		{"exactly one day", "2024-06-10T09:00", "2024-06-11T09:00", 1},
		{"one day and an hour", "2024-06-10T09:00", "2024-06-11T10:00", 2},
		{"two full days", "2024-06-10T09:00", "2024-06-12T09:00", 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := booking.NewRentalPeriod(ts(c.start), ts(c.end))
			require.NoError(t, err)
			assert.Equal(t, c.want, p.Days())
		})
	}
}

func TestBookingCancel(t *testing.T) {
	period, err := booking.NewRentalPeriod(ts("2024-06-10T09:00"), ts("2024-06-12T18:00"))
	require.NoError(t, err)
	price, err := booking.NewMoney(10000)
	require.NoError(t, err)

	t.Run("cancel before pickup", func(t *testing.T) {
		b := booking.NewBooking(uuid.New(), uuid.New(), period, price, booking.NewNote(""))
		require.NoError(t, b.Cancel(ts("2024-06-09T09:00")))
		assert.Equal(t, booking.StatusCanceled, b.Status())
		assert.False(t, b.IsActive())
	})

	t.Run("cancel twice", func(t *testing.T) {
		b := booking.NewBooking(uuid.New(), uuid.New(), period, price, booking.NewNote(""))
		require.NoError(t, b.Cancel(ts("2024-06-09T09:00")))
		require.ErrorIs(t, b.Cancel(ts("2024-06-09T10:00")), booking.ErrAlreadyCanceled)
	})

	t.Run("cancel after pickup", func(t *testing.T) {
		b := booking.NewBooking(uuid.New(), uuid.New(), period, price, booking.NewNote(""))
		require.ErrorIs(t, b.Cancel(ts("2024-06-10T09:00")), booking.ErrAlreadyStarted)
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("completed booking not cancelable", func(t *testing.T) {
		b := booking.Reconstruct(
			uuid.New(), uuid.New(), uuid.New(),
			period, booking.StatusCompleted, price, booking.NewNote(""),
			ts("2024-06-01T00:00"), ts("2024-06-01T00:00"),
		)
		require.ErrorIs(t, b.Cancel(ts("2024-06-09T09:00")), booking.ErrNotCancelable)
	})
}

func TestBookingConfirm(t *testing.T) {
	period, err := booking.NewRentalPeriod(ts("2024-06-10T09:00"), ts("2024-06-12T18:00"))
	require.NoError(t, err)
	price, err := booking.NewMoney(10000)
	require.NoError(t, err)

	t.Run("pending hold becomes firm", func(t *testing.T) {
		b := booking.NewBooking(uuid.New(), uuid.New(), period, price, booking.NewNote(""))
		require.Equal(t, booking.StatusPending, b.Status())

		require.NoError(t, b.Confirm(ts("2024-06-09T09:00")))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.True(t, b.IsActive())
	})

	t.Run("confirm twice", func(t *testing.T) {
		b := booking.NewBooking(uuid.New(), uuid.New(), period, price, booking.NewNote(""))
		require.NoError(t, b.Confirm(ts("2024-06-09T09:00")))
		require.ErrorIs(t, b.Confirm(ts("2024-06-09T10:00")), booking.ErrNotPending)
	})

	t.Run("confirm after pickup", func(t *testing.T) {
		b := booking.NewBooking(uuid.New(), uuid.New(), period, price, booking.NewNote(""))
		require.ErrorIs(t, b.Confirm(ts("2024-06-10T09:00")), booking.ErrAlreadyStarted)
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("canceled hold not confirmable", func(t *testing.T) {
		b := booking.NewBooking(uuid.New(), uuid.New(), period, price, booking.NewNote(""))
		require.NoError(t, b.Cancel(ts("2024-06-09T09:00")))
		require.ErrorIs(t, b.Confirm(ts("2024-06-09T10:00")), booking.ErrNotPending)
	})
}

func TestFactoryCreateBooking(t *testing.T) {
	mockClock := clock.NewMockClock(ts("2024-06-01T00:00"))
	factory := booking.NewFactory(mockClock, booking.NewDailyRateCalculator())

	period, err := booking.NewRentalPeriod(ts("2024-06-10T09:00"), ts("2024-06-12T18:00"))
	require.NoError(t, err)

	t.Run("prices per started day", func(t *testing.T) {
		v := approvedVehicle(t, 4500)
		b, err := factory.CreateBooking(v, uuid.New(), period, booking.NewNote("weekend trip"))
		require.NoError(t, err)

		// 2 days 9 hours -> 3 charged days.
		assert.Equal(t, int64(3*4500), b.Price().Cents())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, v.ID(), b.VehicleID())
	})

	t.Run("unmoderated vehicle rejected", func(t *testing.T) {
		v, err := vehicle.NewVehicle(uuid.New(), "Honda Jazz", "abc-123", 4500)
		require.NoError(t, err)

		_, err = factory.CreateBooking(v, uuid.New(), period, booking.NewNote(""))
		require.ErrorIs(t, err, booking.ErrVehicleNotBookable)
	})

	t.Run("past pickup rejected", func(t *testing.T) {
		late := clock.NewMockClock(ts("2024-06-11T00:00"))
		f := booking.NewFactory(late, booking.NewDailyRateCalculator())

		_, err := f.CreateBooking(approvedVehicle(t, 4500), uuid.New(), period, booking.NewNote(""))
		require.ErrorIs(t, err, booking.ErrPeriodInPast)
	})
}
