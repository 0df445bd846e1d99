package queries

import (
	"context"
	"fmt"
	"time"

	"driveshare/internal/domain/availability"
	"driveshare/internal/pkg/clock"
	"driveshare/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrIntervalFetchFailed = errs.New("failed to load reserved intervals")

// IntervalSource supplies the reserved-interval snapshot for a vehicle. The
// wired implementation is the Redis-cached read store; commands use the
// uncached store directly for the authoritative re-check.
type IntervalSource interface {
	ActiveIntervals(ctx context.Context, vehicleID uuid.UUID) ([]availability.ReservedInterval, error)
}

// ReservedIntervalView is the wire shape of one occupied window.
type ReservedIntervalView struct {
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
	PickupTime    string    `json:"pickupTime"` // HH:MM
	ReturnTime    string    `json:"returnTime"` // HH:MM
}

// DayAvailability is the hour grid of one calendar date for one side of a
// selection. Empty flags a day with no selectable hour at all.
type DayAvailability struct {
	Date  string
	Side  availability.Side
	Slots []availability.HourSlot
	Empty bool
}

type AvailabilityQueries interface {
	ReservedIntervals(ctx context.Context, vehicleID uuid.UUID) ([]ReservedIntervalView, error)
	DayHours(ctx context.Context, vehicleID uuid.UUID, date time.Time, side availability.Side, sel availability.Selection) (*DayAvailability, error)
	ApplyDate(ctx context.Context, vehicleID uuid.UUID, side availability.Side, date time.Time, sel availability.Selection) (availability.Selection, error)
	ApplyHour(ctx context.Context, vehicleID uuid.UUID, side availability.Side, hour int, sel availability.Selection) (availability.Selection, error)
	Confirm(ctx context.Context, vehicleID uuid.UUID, sel availability.Selection) (availability.ConfirmedSelection, error)
}

type availabilityQueriesImpl struct {
	intervals IntervalSource
	clock     clock.Clock
}

func NewAvailabilityQueries(intervals IntervalSource, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{intervals: intervals, clock: clk}
}

func (q *availabilityQueriesImpl) ReservedIntervals(ctx context.Context, vehicleID uuid.UUID) ([]ReservedIntervalView, error) {
	intervals, err := q.intervals.ActiveIntervals(ctx, vehicleID)
	if err != nil {
		return nil, errs.Mark(err, ErrIntervalFetchFailed)
	}

	views := make([]ReservedIntervalView, len(intervals))
	for i, iv := range intervals {
		views[i] = ReservedIntervalView{
			StartDateTime: iv.Start,
			EndDateTime:   iv.End,
			PickupTime:    fmt.Sprintf("%02d:00", iv.PickupHour),
			ReturnTime:    fmt.Sprintf("%02d:00", iv.ReturnHour),
		}
	}
	return views, nil
}

func (q *availabilityQueriesImpl) DayHours(ctx context.Context, vehicleID uuid.UUID, date time.Time, side availability.Side, sel availability.Selection) (*DayAvailability, error) {
	intervals, err := q.intervals.ActiveIntervals(ctx, vehicleID)
	if err != nil {
		return nil, errs.Mark(err, ErrIntervalFetchFailed)
	}

	slots := availability.AvailableHours(date, side, sel, intervals, q.clock.Now())
	return &DayAvailability{
		Date:  availability.DateOf(date).Format("2006-01-02"),
		Side:  side,
		Slots: slots,
		Empty: !availability.HasAvailableHour(slots),
	}, nil
}

// ApplyDate runs the date-selection step. A date that passes the ordering and
// conflict checks but has no selectable hour left is rejected outright so the
// caller never offers a dead day.
func (q *availabilityQueriesImpl) ApplyDate(ctx context.Context, vehicleID uuid.UUID, side availability.Side, date time.Time, sel availability.Selection) (availability.Selection, error) {
	intervals, err := q.intervals.ActiveIntervals(ctx, vehicleID)
	if err != nil {
		return sel, errs.Mark(err, ErrIntervalFetchFailed)
	}

	now := q.clock.Now()
	out, err := availability.ApplyDate(sel, side, date, intervals, now)
	if err != nil {
		return sel, err
	}

	slots := availability.AvailableHours(date, side, out, intervals, now)
	if !availability.HasAvailableHour(slots) {
		return sel, availability.ErrNoAvailableHours
	}

	return out, nil
}

func (q *availabilityQueriesImpl) ApplyHour(ctx context.Context, vehicleID uuid.UUID, side availability.Side, hour int, sel availability.Selection) (availability.Selection, error) {
	intervals, err := q.intervals.ActiveIntervals(ctx, vehicleID)
	if err != nil {
		return sel, errs.Mark(err, ErrIntervalFetchFailed)
	}
	return availability.ApplyHour(sel, side, hour, intervals, q.clock.Now())
}

func (q *availabilityQueriesImpl) Confirm(ctx context.Context, vehicleID uuid.UUID, sel availability.Selection) (availability.ConfirmedSelection, error) {
	intervals, err := q.intervals.ActiveIntervals(ctx, vehicleID)
	if err != nil {
		return availability.ConfirmedSelection{}, errs.Mark(err, ErrIntervalFetchFailed)
	}
	return availability.Confirm(sel, intervals)
}
