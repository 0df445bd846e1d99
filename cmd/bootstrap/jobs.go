package bootstrap

import (
	"context"
	"log/slog"

	"driveshare/internal/infra/db"
	"driveshare/internal/jobs"
	"driveshare/internal/pkg/clock"
	"driveshare/internal/pkg/config"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		NewScheduler,
	),
	fx.Invoke(registerScheduler),
)

func NewScheduler(cfg config.Config, tx *db.TxManager, bookings jobs.BookingMaintenance, clk clock.Clock, logger *slog.Logger) *jobs.Scheduler {
	return jobs.NewScheduler(cfg.Jobs, tx, bookings, clk, logger)
}

func registerScheduler(lc fx.Lifecycle, scheduler *jobs.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return scheduler.Start()
		},
		OnStop: func(ctx context.Context) error {
			return scheduler.Stop(ctx)
		},
	})
}
