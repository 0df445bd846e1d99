package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCanceled = errors.New("booking is already canceled")
	ErrAlreadyStarted  = errors.New("booking has already started")
	ErrNotCancelable   = errors.New("booking can no longer be canceled")
	ErrNotPending      = errors.New("booking is not awaiting confirmation")
)

type Booking struct {
	id        uuid.UUID
	vehicleID uuid.UUID
	renterID  uuid.UUID
	period    RentalPeriod
	status    Status
	price     Money
	note      Note
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a pending hold on the rental window. The hold already
// occupies the window in the availability views; it becomes a firm booking
// through Confirm, and abandoned holds are purged by the maintenance job.
func NewBooking(vehicleID, renterID uuid.UUID, period RentalPeriod, price Money, note Note) *Booking {
	return &Booking{
		id:        uuid.New(),
		vehicleID: vehicleID,
		renterID:  renterID,
		period:    period,
		status:    StatusPending,
		price:     price,
		note:      note,
	}
}

func Reconstruct(
	id, vehicleID, renterID uuid.UUID,
	period RentalPeriod,
	status Status,
	price Money,
	note Note,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		vehicleID: vehicleID,
		renterID:  renterID,
		period:    period,
		status:    status,
		price:     price,
		note:      note,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Confirm turns a pending hold into a firm booking. Only pending bookings
// whose rental window has not started yet can be confirmed.
func (b *Booking) Confirm(now time.Time) error {
	if b.status != StatusPending {
		return ErrNotPending
	}
	if !now.Before(b.period.Start()) {
		return ErrAlreadyStarted
	}
	b.status = StatusConfirmed
	return nil
}

// Cancel transitions the booking to canceled. Only bookings whose rental
// window has not started yet can be canceled by the renter.
func (b *Booking) Cancel(now time.Time) error {
	if b.status == StatusCanceled {
		return ErrAlreadyCanceled
	}
	if !b.status.IsActive() {
		return ErrNotCancelable
	}
	if !now.Before(b.period.Start()) {
		return ErrAlreadyStarted
	}
	b.status = StatusCanceled
	return nil
}

// HasExpired reports whether the rental window lies fully in the past.
func (b *Booking) HasExpired(now time.Time) bool {
	return now.After(b.period.End())
}

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) VehicleID() uuid.UUID { return b.vehicleID }
func (b *Booking) RenterID() uuid.UUID  { return b.renterID }
func (b *Booking) Period() RentalPeriod { return b.period }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) Price() Money         { return b.price }
func (b *Booking) Note() Note           { return b.note }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
