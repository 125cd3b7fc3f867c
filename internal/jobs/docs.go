// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to drive the periodic operations the dispatch service needs.
//
// # Available Jobs
//
// 1. SimulationJob - Runs every second to advance the virtual clock by one
// simulator interval and drive courier behaviour through the command handlers
// 2. InactivitySweepJob - Runs every minute to deactivate couriers whose
// shift has exceeded the configured inactivity range
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(engine, sweepHandler, logger)
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
// The simulation job uses the cron expression "* * * * * *" and runs every
// wall-clock second; each run moves the virtual clock by the configured
// simulator interval, so wall cadence and simulated time are independent.
// The inactivity sweep runs once per wall-clock minute.
//
// # Error Handling
//
// - The simulation engine drops overlapping ticks instead of queueing them
// - Job run failures are logged and do not stop the schedule
// - Failed job starts stop any already running jobs
package jobs
