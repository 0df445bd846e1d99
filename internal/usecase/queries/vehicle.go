package queries

import (
	"context"

	"driveshare/internal/domain/vehicle"
	"driveshare/internal/infra"
	"driveshare/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrVehicleNotFound = errs.New("vehicle not found")

type VehicleReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	ListByStatus(ctx context.Context, status string, limit int32) ([]*VehicleView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int32) ([]*VehicleView, error)
}

type VehicleQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	ListApproved(ctx context.Context, limit int) ([]*VehicleView, error)
	ListPending(ctx context.Context, limit int) ([]*VehicleView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*VehicleView, error)
}

type vehicleQueriesImpl struct {
	store VehicleReadStore
}

func NewVehicleQueries(store VehicleReadStore) VehicleQueries {
	return &vehicleQueriesImpl{store: store}
}

func (q *vehicleQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error) {
	view, err := q.store.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return view, nil
}

// ListApproved is the public catalog; only moderated listings appear.
func (q *vehicleQueriesImpl) ListApproved(ctx context.Context, limit int) ([]*VehicleView, error) {
	return q.store.ListByStatus(ctx, vehicle.StatusApproved.String(), clampLimit(limit))
}

// ListPending is the admin moderation queue.
func (q *vehicleQueriesImpl) ListPending(ctx context.Context, limit int) ([]*VehicleView, error) {
	return q.store.ListByStatus(ctx, vehicle.StatusPending.String(), clampLimit(limit))
}

func (q *vehicleQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*VehicleView, error) {
	return q.store.ListByOwner(ctx, ownerID, clampLimit(limit))
}

func clampLimit(limit int) int32 {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return int32(limit)
}
