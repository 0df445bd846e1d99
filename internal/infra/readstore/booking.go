package readstore

import (
	"context"

	"driveshare/internal/infra"
	"driveshare/internal/infra/db"
	"driveshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const findBookingViewSQL = `
SELECT b.id, b.vehicle_id, v.name, b.renter_id, u.email,
       b.start_at, b.end_at, b.status, b.price_cents, b.note,
       b.created_at, b.updated_at
FROM bookings b
JOIN vehicles v ON v.id = b.vehicle_id
JOIN users u ON u.id = b.renter_id
WHERE b.id = $1`

func (r *BookingReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var view queries.BookingView
	err := r.db.QueryRow(ctx, findBookingViewSQL, id).Scan(
		&view.ID, &view.VehicleID, &view.VehicleName, &view.RenterID, &view.RenterEmail,
		&view.StartAt, &view.EndAt, &view.Status, &view.PriceCents, &view.Note,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	return &view, nil
}

const listBookingsByRenterSQL = `
SELECT b.id, b.vehicle_id, v.name, b.start_at, b.end_at, b.status, b.price_cents, b.created_at
FROM bookings b
JOIN vehicles v ON v.id = b.vehicle_id
WHERE b.renter_id = $1
ORDER BY b.start_at DESC
LIMIT $2`

func (r *BookingReadStore) ListByRenter(ctx context.Context, renterID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, listBookingsByRenterSQL, renterID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by renter", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID, &item.VehicleID, &item.VehicleName,
			&item.StartAt, &item.EndAt, &item.Status, &item.PriceCents, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}

	return items, nil
}

const listBookingsByVehicleOwnerSQL = `
SELECT b.id, b.vehicle_id, v.name, b.start_at, b.end_at, b.status, b.price_cents, b.created_at
FROM bookings b
JOIN vehicles v ON v.id = b.vehicle_id
WHERE v.owner_id = $1
ORDER BY b.start_at DESC
LIMIT $2`

// ListByVehicleOwner lists bookings across every vehicle of one owner, the
// owner-dashboard view of upcoming handovers.
func (r *BookingReadStore) ListByVehicleOwner(ctx context.Context, ownerID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, listBookingsByVehicleOwnerSQL, ownerID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by owner", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID, &item.VehicleID, &item.VehicleName,
			&item.StartAt, &item.EndAt, &item.Status, &item.PriceCents, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}

	return items, nil
}
