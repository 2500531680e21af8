// Package jobs provides scheduled background tasks for the fulfillment
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to back up the per-order tracking loop with periodic safety nets.
//
// # Available Jobs
//
// 1. AssignmentRetryJob - Periodically re-attempts dispatch for orders that
// became ready while the whole fleet was busy.
// 2. CourierReclaimJob - Periodically frees couriers whose assignment has
// been stuck past the configured timeout.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(retryHandler, sweepHandler, reclaimTimeout, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Both jobs log failures and wait for the next tick; a single bad pass
// never stops the schedule.
// - Failed job starts will stop any already running jobs.
package jobs
