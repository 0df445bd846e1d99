package commands

import (
	"context"

	"driveshare/internal/domain/availability"
	"driveshare/internal/domain/booking"
	"driveshare/internal/domain/user"
	"driveshare/internal/domain/vehicle"
	reqdto "driveshare/internal/handler/dto/request"
	"driveshare/internal/infra"
	"driveshare/internal/infra/db"
	"driveshare/internal/pkg/clock"
	"driveshare/internal/pkg/errs"
	"driveshare/internal/pkg/metrics"
	"driveshare/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrVehicleNotFound         = errs.New("vehicle not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrBookingConflict         = errs.New("booking conflicts with an existing reservation")
	ErrSelectionRejected       = errs.New("selection rejected")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrAccessDenied            = errs.New("access denied")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type BookingRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status booking.Status) error
}

type VehicleReader interface {
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*vehicle.Vehicle, error)
}

// IntervalReader must be the uncached read store: booking creation re-checks
// against the database, never against the Redis snapshot.
type IntervalReader interface {
	ActiveIntervals(ctx context.Context, vehicleID uuid.UUID) ([]availability.ReservedInterval, error)
}

// SnapshotInvalidator drops the cached availability snapshot of a vehicle
// once its booking set changes.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, vehicleID uuid.UUID)
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, renterID uuid.UUID, req reqdto.CreateBookingRequest) (*queries.BookingView, error)
	ConfirmBooking(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID uuid.UUID) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID uuid.UUID) error
}

type bookingCommandsImpl struct {
	tx          *db.TxManager
	bookingRepo BookingRepository
	vehicleRepo VehicleReader
	intervals   IntervalReader
	bookingView queries.BookingReadStore
	snapshots   SnapshotInvalidator
	factory     *booking.Factory
	clock       clock.Clock
}

func NewBookingCommands(
	tx *db.TxManager,
	bookingRepo BookingRepository,
	vehicleRepo VehicleReader,
	intervals IntervalReader,
	bookingView queries.BookingReadStore,
	snapshots SnapshotInvalidator,
	factory *booking.Factory,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		tx:          tx,
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		intervals:   intervals,
		bookingView: bookingView,
		snapshots:   snapshots,
		factory:     factory,
		clock:       clk,
	}
}

// CreateBooking accepts the normalized selection the availability flow
// produced and re-validates it server-side: the engine's Confirm runs again
// on a fresh snapshot, and the bookings exclusion constraint is the final
// arbiter against a concurrent renter winning the same window. The booking
// is persisted as a pending hold; ConfirmBooking makes it firm.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, renterID uuid.UUID, req reqdto.CreateBookingRequest) (*queries.BookingView, error) {
	sel, err := req.ToSelection()
	if err != nil {
		return nil, errs.Mark(err, ErrSelectionRejected)
	}

	intervals, err := c.intervals.ActiveIntervals(ctx, req.VehicleID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if _, err := availability.Confirm(sel, intervals); err != nil {
		return nil, errs.Mark(err, ErrSelectionRejected)
	}

	start, _ := sel.PickupInstant()
	end, _ := sel.ReturnInstant()
	period, err := booking.NewRentalPeriod(start, end)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var bookingID uuid.UUID
	err = c.tx.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		v, err := c.vehicleRepo.FindByID(ctx, tx, req.VehicleID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrVehicleNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entity, err := c.factory.CreateBooking(v, renterID, period, booking.NewNote(req.Note))
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		id, err := c.bookingRepo.Create(ctx, tx, entity)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrBookingConflict
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		bookingID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.snapshots.Invalidate(ctx, req.VehicleID)
	metrics.IncBookingCreated(booking.StatusPending.String())

	view, err := c.bookingView.FindViewByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// ConfirmBooking makes a pending hold firm. The hold already occupies the
// window, so the snapshot does not change and no conflict check is needed.
func (c *bookingCommandsImpl) ConfirmBooking(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID uuid.UUID) (*queries.BookingView, error) {
	err := c.tx.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		b, err := c.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if actorRole != user.RoleAdmin && b.RenterID() != actorID {
			return ErrAccessDenied
		}

		if err := b.Confirm(c.clock.Now()); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := c.bookingRepo.UpdateStatus(ctx, tx, bookingID, b.Status()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncBookingConfirmed()

	view, err := c.bookingView.FindViewByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID uuid.UUID) error {
	var vehicleID uuid.UUID
	err := c.tx.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		b, err := c.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if actorRole != user.RoleAdmin && b.RenterID() != actorID {
			return ErrAccessDenied
		}

		if err := b.Cancel(c.clock.Now()); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := c.bookingRepo.UpdateStatus(ctx, tx, bookingID, b.Status()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		vehicleID = b.VehicleID()
		return nil
	})
	if err != nil {
		return err
	}

	c.snapshots.Invalidate(ctx, vehicleID)
	metrics.IncBookingCanceled()
	return nil
}
