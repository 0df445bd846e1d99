package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read-side views. These are shaped for the wire, not for the domain: dates
// and hand-over times are already split the way the API reports them.

type BookingView struct {
	ID          uuid.UUID
	VehicleID   uuid.UUID
	VehicleName string
	RenterID    uuid.UUID
	RenterEmail string
	StartAt     time.Time
	EndAt       time.Time
	Status      string
	PriceCents  int64
	Note        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type BookingListItem struct {
	ID          uuid.UUID
	VehicleID   uuid.UUID
	VehicleName string
	StartAt     time.Time
	EndAt       time.Time
	Status      string
	PriceCents  int64
	CreatedAt   time.Time
}

type VehicleView struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Name           string
	Plate          string
	DailyRateCents int64
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type UserView struct {
	ID        uuid.UUID
	Email     string
	Role      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
