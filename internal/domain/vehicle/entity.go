package vehicle

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("vehicle name cannot be empty")
	ErrNameTooLong      = errors.New("vehicle name is too long (max 255 characters)")
	ErrEmptyPlate       = errors.New("license plate cannot be empty")
	ErrNegativeRate     = errors.New("daily rate cannot be negative")
	ErrNotPending       = errors.New("vehicle is not pending moderation")
	ErrAlreadyModerated = errors.New("vehicle has already been moderated")
)

const MaxNameLength = 255

type Vehicle struct {
	id             uuid.UUID
	ownerID        uuid.UUID
	name           string
	plate          string
	dailyRateCents int64
	status         Status
	createdAt      time.Time
	updatedAt      time.Time
}

// NewVehicle registers a listing; it enters moderation as pending and only
// becomes bookable once an admin approves it.
func NewVehicle(ownerID uuid.UUID, name, plate string, dailyRateCents int64) (*Vehicle, error) {
	name = strings.TrimSpace(name)
	plate = strings.ToUpper(strings.TrimSpace(plate))

	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return nil, ErrNameTooLong
	}
	if plate == "" {
		return nil, ErrEmptyPlate
	}
	if dailyRateCents < 0 {
		return nil, ErrNegativeRate
	}

	return &Vehicle{
		id:             uuid.New(),
		ownerID:        ownerID,
		name:           name,
		plate:          plate,
		dailyRateCents: dailyRateCents,
		status:         StatusPending,
	}, nil
}

func Reconstruct(
	id, ownerID uuid.UUID,
	name, plate string,
	dailyRateCents int64,
	status Status,
	createdAt, updatedAt time.Time,
) *Vehicle {
	return &Vehicle{
		id:             id,
		ownerID:        ownerID,
		name:           name,
		plate:          plate,
		dailyRateCents: dailyRateCents,
		status:         status,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (v *Vehicle) Approve() error {
	if v.status != StatusPending {
		return ErrAlreadyModerated
	}
	v.status = StatusApproved
	return nil
}

func (v *Vehicle) Reject() error {
	if v.status != StatusPending {
		return ErrAlreadyModerated
	}
	v.status = StatusRejected
	return nil
}

func (v *Vehicle) IsBookable() bool {
	return v.status == StatusApproved
}

func (v *Vehicle) ID() uuid.UUID         { return v.id }
func (v *Vehicle) OwnerID() uuid.UUID    { return v.ownerID }
func (v *Vehicle) Name() string          { return v.name }
func (v *Vehicle) Plate() string         { return v.plate }
func (v *Vehicle) DailyRateCents() int64 { return v.dailyRateCents }
func (v *Vehicle) Status() Status        { return v.status }
func (v *Vehicle) CreatedAt() time.Time  { return v.createdAt }
func (v *Vehicle) UpdatedAt() time.Time  { return v.updatedAt }
