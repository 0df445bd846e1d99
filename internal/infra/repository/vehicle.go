package repository

import (
	"context"
	"time"

	"driveshare/internal/domain/vehicle"
	"driveshare/internal/infra"
	"driveshare/internal/infra/db"

	"github.com/google/uuid"
)

type VehicleRepository struct{}

func NewVehicleRepository() *VehicleRepository {
	return &VehicleRepository{}
}

const createVehicleSQL = `
INSERT INTO vehicles (id, owner_id, name, plate, daily_rate_cents, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

func (r *VehicleRepository) Create(ctx context.Context, dbtx db.DBTX, v *vehicle.Vehicle) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createVehicleSQL,
		v.ID(),
		v.OwnerID(),
		v.Name(),
		v.Plate(),
		v.DailyRateCents(),
		v.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create vehicle", err)
	}

	return id, nil
}

const findVehicleByIDSQL = `
SELECT id, owner_id, name, plate, daily_rate_cents, status, created_at, updated_at
FROM vehicles
WHERE id = $1`

func (r *VehicleRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*vehicle.Vehicle, error) {
	row := dbtx.QueryRow(ctx, findVehicleByIDSQL, id)

	var (
		vehicleID      uuid.UUID
		ownerID        uuid.UUID
		name           string
		plate          string
		dailyRateCents int64
		status         string
		createdAt      time.Time
		updatedAt      time.Time
	)
	if err := row.Scan(&vehicleID, &ownerID, &name, &plate, &dailyRateCents, &status, &createdAt, &updatedAt); err != nil {
		return nil, infra.WrapRepoErr("failed to find vehicle by ID", err)
	}

	return vehicle.Reconstruct(vehicleID, ownerID, name, plate, dailyRateCents, vehicle.Status(status), createdAt, updatedAt), nil
}

const updateVehicleStatusSQL = `
UPDATE vehicles
SET status = $2, updated_at = now()
WHERE id = $1`

func (r *VehicleRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status vehicle.Status) error {
	tag, err := dbtx.Exec(ctx, updateVehicleStatusSQL, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update vehicle status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}
	return nil
}
