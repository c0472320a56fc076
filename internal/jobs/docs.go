// Package jobs provides scheduled background tasks for the delivery broker.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the brokering core.
//
// # Available Jobs
//
// 1. OutboxDispatchJob - Runs every second to drain the transactional outbox to Kafka
// 2. CacheRebuildJob - Runs every minute to reload the in-route cache from the database
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchOutboxHandler, rebuildCacheHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed dispatch pass rolls back its published-marks and is retried on the next tick
// - A failed cache rebuild leaves the previous cache contents in place
// - Failed job starts will stop any already running jobs
package jobs
