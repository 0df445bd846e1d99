package queries

import (
	"context"

	"driveshare/internal/domain/user"
	"driveshare/internal/infra"
	"driveshare/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrAccessDenied    = errs.New("access denied")
)

const defaultListLimit = 50

type BookingReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByRenter(ctx context.Context, renterID uuid.UUID, limit int32) ([]*BookingListItem, error)
	ListByVehicleOwner(ctx context.Context, ownerID uuid.UUID, limit int32) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error)
	ListMine(ctx context.Context, actorID uuid.UUID, actorRole user.Role, limit int) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

// GetByID scopes access: renters see their own bookings, admins see any.
// Owners are not granted per-booking detail here; their dashboard view is
// the list endpoint.
func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if actorRole != user.RoleAdmin && view.RenterID != actorID {
		return nil, ErrAccessDenied
	}

	return view, nil
}

// ListMine returns the bookings relevant to the actor: a renter's own
// bookings, or the bookings against an owner's vehicles.
func (q *bookingQueriesImpl) ListMine(ctx context.Context, actorID uuid.UUID, actorRole user.Role, limit int) ([]*BookingListItem, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	if actorRole == user.RoleOwner {
		return q.store.ListByVehicleOwner(ctx, actorID, int32(limit))
	}
	return q.store.ListByRenter(ctx, actorID, int32(limit))
}
