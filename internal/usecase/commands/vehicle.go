package commands

import (
	"context"

	"driveshare/internal/domain/vehicle"
	reqdto "driveshare/internal/handler/dto/request"
	"driveshare/internal/infra"
	"driveshare/internal/infra/db"
	"driveshare/internal/pkg/errs"
	"driveshare/internal/pkg/metrics"
	"driveshare/internal/usecase/queries"

	"github.com/google/uuid"
)

var ErrDuplicatePlate = errs.New("a vehicle with this plate is already registered")

type VehicleRepository interface {
	VehicleReader
	Create(ctx context.Context, dbtx db.DBTX, v *vehicle.Vehicle) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status vehicle.Status) error
}

type VehicleCommands interface {
	RegisterVehicle(ctx context.Context, ownerID uuid.UUID, req reqdto.RegisterVehicleRequest) (*queries.VehicleView, error)
	Approve(ctx context.Context, vehicleID uuid.UUID) (*queries.VehicleView, error)
	Reject(ctx context.Context, vehicleID uuid.UUID) (*queries.VehicleView, error)
}

type vehicleCommandsImpl struct {
	tx          *db.TxManager
	vehicleRepo VehicleRepository
	vehicleView queries.VehicleReadStore
}

func NewVehicleCommands(tx *db.TxManager, vehicleRepo VehicleRepository, vehicleView queries.VehicleReadStore) VehicleCommands {
	return &vehicleCommandsImpl{tx: tx, vehicleRepo: vehicleRepo, vehicleView: vehicleView}
}

func (c *vehicleCommandsImpl) RegisterVehicle(ctx context.Context, ownerID uuid.UUID, req reqdto.RegisterVehicleRequest) (*queries.VehicleView, error) {
	entity, err := vehicle.NewVehicle(ownerID, req.Name, req.Plate, req.DailyRateCents)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var id uuid.UUID
	err = c.tx.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		created, err := c.vehicleRepo.Create(ctx, tx, entity)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicatePlate
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		id = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.vehicleView.FindViewByID(ctx, id)
}

func (c *vehicleCommandsImpl) Approve(ctx context.Context, vehicleID uuid.UUID) (*queries.VehicleView, error) {
	return c.moderate(ctx, vehicleID, (*vehicle.Vehicle).Approve, "approve")
}

func (c *vehicleCommandsImpl) Reject(ctx context.Context, vehicleID uuid.UUID) (*queries.VehicleView, error) {
	return c.moderate(ctx, vehicleID, (*vehicle.Vehicle).Reject, "reject")
}

func (c *vehicleCommandsImpl) moderate(ctx context.Context, vehicleID uuid.UUID, decide func(*vehicle.Vehicle) error, decision string) (*queries.VehicleView, error) {
	err := c.tx.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		v, err := c.vehicleRepo.FindByID(ctx, tx, vehicleID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrVehicleNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := decide(v); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		return c.vehicleRepo.UpdateStatus(ctx, tx, vehicleID, v.Status())
	})
	if err != nil {
		return nil, err
	}

	metrics.IncModerationDecision(decision)
	return c.vehicleView.FindViewByID(ctx, vehicleID)
}
