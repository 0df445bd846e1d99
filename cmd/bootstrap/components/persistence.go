package components

import (
	"driveshare/internal/infra/cache"
	"driveshare/internal/infra/readstore"
	"driveshare/internal/infra/repository"
	"driveshare/internal/jobs"
	"driveshare/internal/pkg/config"
	"driveshare/internal/usecase/commands"
	"driveshare/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	readstoreModule,
	repositoryModule,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		readstore.NewIntervalReadStore,
		fx.Annotate(
			NewIntervalSnapshotCache,
			fx.As(new(queries.IntervalSource)),
			fx.As(new(commands.SnapshotInvalidator)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewVehicleReadStore,
			fx.As(new(queries.VehicleReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(commands.UserReadStore)),
		),
		// The uncached store feeds booking creation's authoritative re-check.
		fx.Annotate(
			func(store *readstore.IntervalReadStore) commands.IntervalReader { return store },
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
			fx.As(new(jobs.BookingMaintenance)),
		),
		fx.Annotate(
			repository.NewVehicleRepository,
			fx.As(new(commands.VehicleRepository)),
			fx.As(new(commands.VehicleReader)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
	),
)

func NewIntervalSnapshotCache(rdb *redis.Client, store *readstore.IntervalReadStore, cfg config.Config) *cache.CachedIntervalSource {
	return cache.NewCachedIntervalSource(rdb, store, cfg.Redis.SnapshotTTL)
}
