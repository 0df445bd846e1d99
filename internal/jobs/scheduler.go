// Package jobs runs the scheduled maintenance that keeps booking state in
// step with wall-clock time: confirmed bookings become ongoing, expired
// bookings complete (freeing their calendar slots), and abandoned pending
// bookings are purged. The scheduler holds an explicit stop handle so the
// process can shut it down cleanly.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"driveshare/internal/infra/db"
	"driveshare/internal/pkg/clock"
	"driveshare/internal/pkg/config"
	"driveshare/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// BookingMaintenance is the write-side surface the jobs drive.
type BookingMaintenance interface {
	MarkOngoing(ctx context.Context, dbtx db.DBTX, now time.Time) (int64, error)
	CompleteExpired(ctx context.Context, dbtx db.DBTX, now time.Time) (int64, error)
	DeleteStalePending(ctx context.Context, dbtx db.DBTX, cutoff time.Time) (int64, error)
}

type Scheduler struct {
	cron     *cron.Cron
	cfg      config.JobsConfig
	tx       *db.TxManager
	bookings BookingMaintenance
	clock    clock.Clock
	logger   *slog.Logger
}

func NewScheduler(cfg config.JobsConfig, tx *db.TxManager, bookings BookingMaintenance, clk clock.Clock, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		cfg:      cfg,
		tx:       tx,
		bookings: bookings,
		clock:    clk,
		logger:   logger,
	}
}

// Start registers the configured jobs and launches the cron loop. An empty
// cron spec disables that job.
func (s *Scheduler) Start() error {
	if spec := s.cfg.CompleteExpiredSpec; spec != "" {
		if _, err := s.cron.AddFunc(spec, s.runStatusSweep); err != nil {
			return errs.Wrap(err, "invalid complete-expired cron spec")
		}
	}
	if spec := s.cfg.PurgePendingSpec; spec != "" {
		if _, err := s.cron.AddFunc(spec, s.runPendingPurge); err != nil {
			return errs.Wrap(err, "invalid purge-pending cron spec")
		}
	}

	s.cron.Start()
	s.logger.Info("job scheduler started",
		"complete_expired_spec", s.cfg.CompleteExpiredSpec,
		"purge_pending_spec", s.cfg.PurgePendingSpec)
	return nil
}

// Stop halts scheduling and waits for any running job to finish.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		s.logger.Info("job scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runStatusSweep advances booking statuses past their time boundaries. Both
// transitions run in one transaction so a booking never skips from confirmed
// to completed across two sweeps racing each other.
func (s *Scheduler) runStatusSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := s.clock.Now()
	var started, completed int64
	err := s.tx.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		if started, err = s.bookings.MarkOngoing(ctx, tx, now); err != nil {
			return err
		}
		completed, err = s.bookings.CompleteExpired(ctx, tx, now)
		return err
	})
	if err != nil {
		s.logger.Error("booking status sweep failed", "error", err.Error())
		return
	}

	if started > 0 || completed > 0 {
		s.logger.Info("booking status sweep", "marked_ongoing", started, "completed", completed)
	}
}

func (s *Scheduler) runPendingPurge() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := s.clock.Now().Add(-s.cfg.PendingMaxAge)
	var purged int64
	err := s.tx.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		purged, err = s.bookings.DeleteStalePending(ctx, tx, cutoff)
		return err
	})
	if err != nil {
		s.logger.Error("pending booking purge failed", "error", err.Error())
		return
	}

	if purged > 0 {
		s.logger.Info("purged stale pending bookings", "count", purged, "cutoff", cutoff)
	}
}
