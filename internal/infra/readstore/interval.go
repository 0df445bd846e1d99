package readstore

import (
	"context"
	"time"

	"driveshare/internal/domain/availability"
	"driveshare/internal/infra"
	"driveshare/internal/infra/db"

	"github.com/google/uuid"
)

type IntervalReadStore struct {
	db db.DBTX
}

func NewIntervalReadStore(db db.DBTX) *IntervalReadStore {
	return &IntervalReadStore{db: db}
}

const activeIntervalsSQL = `
SELECT start_at, end_at
FROM bookings
WHERE vehicle_id = $1 AND status IN ('pending', 'confirmed', 'ongoing')
ORDER BY start_at`

// ActiveIntervals returns the occupied windows of a vehicle, ordered by
// start. Completed and canceled bookings do not block the calendar.
func (r *IntervalReadStore) ActiveIntervals(ctx context.Context, vehicleID uuid.UUID) ([]availability.ReservedInterval, error) {
	rows, err := r.db.Query(ctx, activeIntervalsSQL, vehicleID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load reserved intervals", err)
	}
	defer rows.Close()

	intervals := make([]availability.ReservedInterval, 0)
	for rows.Next() {
		var startAt, endAt time.Time
		if err := rows.Scan(&startAt, &endAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reserved interval", err)
		}
		iv, err := availability.IntervalFromInstants(startAt.UTC(), endAt.UTC())
		if err != nil {
			return nil, infra.WrapRepoErr("stored booking has invalid interval", err, infra.KindDBFailure)
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reserved intervals", err)
	}

	return intervals, nil
}
