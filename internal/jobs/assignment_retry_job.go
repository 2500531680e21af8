package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AssignmentRetryJob re-runs courier dispatch for orders that are ready but
// unassigned. Runs every 15 seconds so a busy fleet drains the queue shortly
// after a courier frees up.
type AssignmentRetryJob struct {
	handler commands.RetryAssignmentsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAssignmentRetryJob creates a new job for retrying courier assignments.
func NewAssignmentRetryJob(handler commands.RetryAssignmentsCommandHandler, logger *slog.Logger) *AssignmentRetryJob {
	return &AssignmentRetryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "assignment_retry_job"),
	}
}

// Start begins the assignment retry job to run every 15 seconds.
func (j *AssignmentRetryJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewRetryAssignmentsCommand()

		assigned, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Assignment retry job failed", "error", err)
			return
		}

		if assigned > 0 {
			j.logger.InfoContext(ctx, "Queued orders assigned to couriers", "count", assigned)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment retry job started (running every 15 seconds)")
	return nil
}

// Stop stops the assignment retry job.
func (j *AssignmentRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Assignment retry job stopped")
}
