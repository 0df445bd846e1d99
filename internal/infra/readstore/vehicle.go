package readstore

import (
	"context"

	"driveshare/internal/infra"
	"driveshare/internal/infra/db"
	"driveshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type VehicleReadStore struct {
	db db.DBTX
}

func NewVehicleReadStore(db db.DBTX) *VehicleReadStore {
	return &VehicleReadStore{db: db}
}

const findVehicleViewSQL = `
SELECT id, owner_id, name, plate, daily_rate_cents, status, created_at, updated_at
FROM vehicles
WHERE id = $1`

func (r *VehicleReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.VehicleView, error) {
	var view queries.VehicleView
	err := r.db.QueryRow(ctx, findVehicleViewSQL, id).Scan(
		&view.ID, &view.OwnerID, &view.Name, &view.Plate,
		&view.DailyRateCents, &view.Status, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find vehicle view", err)
	}
	return &view, nil
}

const listVehiclesByStatusSQL = `
SELECT id, owner_id, name, plate, daily_rate_cents, status, created_at, updated_at
FROM vehicles
WHERE status = $1
ORDER BY created_at DESC
LIMIT $2`

func (r *VehicleReadStore) ListByStatus(ctx context.Context, status string, limit int32) ([]*queries.VehicleView, error) {
	rows, err := r.db.Query(ctx, listVehiclesByStatusSQL, status, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vehicles by status", err)
	}
	defer rows.Close()
	return scanVehicleViews(rows)
}

const listVehiclesByOwnerSQL = `
SELECT id, owner_id, name, plate, daily_rate_cents, status, created_at, updated_at
FROM vehicles
WHERE owner_id = $1
ORDER BY created_at DESC
LIMIT $2`

func (r *VehicleReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int32) ([]*queries.VehicleView, error) {
	rows, err := r.db.Query(ctx, listVehiclesByOwnerSQL, ownerID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vehicles by owner", err)
	}
	defer rows.Close()
	return scanVehicleViews(rows)
}

func scanVehicleViews(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*queries.VehicleView, error) {
	views := make([]*queries.VehicleView, 0)
	for rows.Next() {
		var view queries.VehicleView
		if err := rows.Scan(
			&view.ID, &view.OwnerID, &view.Name, &view.Plate,
			&view.DailyRateCents, &view.Status, &view.CreatedAt, &view.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan vehicle view", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate vehicles", err)
	}
	return views, nil
}
