package repository

import (
	"context"
	"time"

	"driveshare/internal/domain/booking"
	"driveshare/internal/infra"
	"driveshare/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const createBookingSQL = `
INSERT INTO bookings (id, vehicle_id, renter_id, start_at, end_at, status, price_cents, note)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var note *string
	if !b.Note().IsEmpty() {
		v := b.Note().String()
		note = &v
	}

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createBookingSQL,
		b.ID(),
		b.VehicleID(),
		b.RenterID(),
		b.Period().Start(),
		b.Period().End(),
		b.Status().String(),
		b.Price().Cents(),
		note,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}

	return id, nil
}

const findBookingByIDSQL = `
SELECT id, vehicle_id, renter_id, start_at, end_at, status, price_cents, note, created_at, updated_at
FROM bookings
WHERE id = $1`

const findBookingByIDForUpdateSQL = findBookingByIDSQL + `
FOR UPDATE`

// FindByIDForUpdate locks the row so a cancel cannot race a status job.
func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	row := dbtx.QueryRow(ctx, findBookingByIDForUpdateSQL, id)

	var (
		bookingID  uuid.UUID
		vehicleID  uuid.UUID
		renterID   uuid.UUID
		startAt    time.Time
		endAt      time.Time
		status     string
		priceCents int64
		note       *string
		createdAt  time.Time
		updatedAt  time.Time
	)
	if err := row.Scan(&bookingID, &vehicleID, &renterID, &startAt, &endAt, &status, &priceCents, &note, &createdAt, &updatedAt); err != nil {
		return nil, infra.WrapRepoErr("failed to lock booking by ID", err)
	}

	return reconstructBooking(bookingID, vehicleID, renterID, startAt, endAt, status, priceCents, note, createdAt, updatedAt)
}

const updateBookingStatusSQL = `
UPDATE bookings
SET status = $2, updated_at = now()
WHERE id = $1`

func (r *BookingRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status booking.Status) error {
	tag, err := dbtx.Exec(ctx, updateBookingStatusSQL, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

const markOngoingSQL = `
UPDATE bookings
SET status = 'ongoing', updated_at = now()
WHERE status = 'confirmed' AND start_at <= $1 AND end_at > $1`

// MarkOngoing moves confirmed bookings whose rental window has started.
func (r *BookingRepository) MarkOngoing(ctx context.Context, dbtx db.DBTX, now time.Time) (int64, error) {
	tag, err := dbtx.Exec(ctx, markOngoingSQL, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark bookings ongoing", err)
	}
	return tag.RowsAffected(), nil
}

const completeExpiredSQL = `
UPDATE bookings
SET status = 'completed', updated_at = now()
WHERE status IN ('confirmed', 'ongoing') AND end_at <= $1`

// CompleteExpired closes bookings whose rental window has fully passed,
// which frees their slots in the availability views.
func (r *BookingRepository) CompleteExpired(ctx context.Context, dbtx db.DBTX, now time.Time) (int64, error) {
	tag, err := dbtx.Exec(ctx, completeExpiredSQL, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to complete expired bookings", err)
	}
	return tag.RowsAffected(), nil
}

const deleteStalePendingSQL = `
DELETE FROM bookings
WHERE status = 'pending' AND created_at < $1`

// DeleteStalePending removes pending bookings abandoned before confirmation
// so they stop holding slots hostage.
func (r *BookingRepository) DeleteStalePending(ctx context.Context, dbtx db.DBTX, cutoff time.Time) (int64, error) {
	tag, err := dbtx.Exec(ctx, deleteStalePendingSQL, cutoff)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete stale pending bookings", err)
	}
	return tag.RowsAffected(), nil
}

func reconstructBooking(
	id, vehicleID, renterID uuid.UUID,
	startAt, endAt time.Time,
	status string,
	priceCents int64,
	note *string,
	createdAt, updatedAt time.Time,
) (*booking.Booking, error) {
	period, err := booking.NewRentalPeriod(startAt, endAt)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid period", err, infra.KindDBFailure)
	}
	price, err := booking.NewMoney(priceCents)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid price", err, infra.KindDBFailure)
	}

	noteValue := ""
	if note != nil {
		noteValue = *note
	}

	return booking.Reconstruct(
		id, vehicleID, renterID,
		period,
		booking.Status(status),
		price,
		booking.NewNote(noteValue),
		createdAt, updatedAt,
	), nil
}
