// Package jobs provides scheduled background tasks for the rental system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the rental service.
//
// # Available Jobs
//
// 1. OverdueSweepJob - Periodically flags shipped orders whose rental period has ended as overdue
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(sweepHandler, cronSpec, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep uses a seconds-granularity cron expression, "0 */5 * * * *" by
// default, so shipped orders become overdue within minutes of their end time
// passing. The expression is configurable through SWEEP_CRON.
//
// # Error Handling
//
// - Sweep failures are logged and retried on the next tick
// - A failed job start aborts StartAll with a wrapped error
package jobs
