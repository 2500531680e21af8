package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CourierReclaimJob frees couriers stuck on assignments older than the
// configured timeout. Runs every minute; a stuck courier is back in the
// available pool within a minute of crossing the threshold.
type CourierReclaimJob struct {
	handler commands.SweepAssignmentsCommandHandler
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCourierReclaimJob creates a new job for reclaiming stuck couriers.
func NewCourierReclaimJob(
	handler commands.SweepAssignmentsCommandHandler,
	timeout time.Duration,
	logger *slog.Logger,
) *CourierReclaimJob {
	return &CourierReclaimJob{
		handler: handler,
		timeout: timeout,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "courier_reclaim_job"),
	}
}

// Start begins the courier reclaim job to run every minute.
func (j *CourierReclaimJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewSweepAssignmentsCommand(j.timeout)
		if err != nil {
			j.logger.ErrorContext(ctx, "Courier reclaim job misconfigured", "error", err)
			return
		}

		released, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Courier reclaim job failed", "error", err)
			return
		}

		if released > 0 {
			j.logger.InfoContext(ctx, "Stuck couriers released", "count", released)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Courier reclaim job started (running every minute)")
	return nil
}

// Stop stops the courier reclaim job.
func (j *CourierReclaimJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Courier reclaim job stopped")
}
