package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	assignmentRetryJob *AssignmentRetryJob
	courierReclaimJob  *CourierReclaimJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	retryAssignmentsHandler commands.RetryAssignmentsCommandHandler,
	sweepAssignmentsHandler commands.SweepAssignmentsCommandHandler,
	reclaimTimeout time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		assignmentRetryJob: NewAssignmentRetryJob(retryAssignmentsHandler, logger),
		courierReclaimJob:  NewCourierReclaimJob(sweepAssignmentsHandler, reclaimTimeout, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.assignmentRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start assignment retry job: %w", err)
	}

	if err := jm.courierReclaimJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.assignmentRetryJob.Stop()
		return fmt.Errorf("failed to start courier reclaim job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.courierReclaimJob.Stop()
	jm.assignmentRetryJob.Stop()
}
