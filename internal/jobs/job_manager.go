package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/sim"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	simulationJob      *SimulationJob
	inactivitySweepJob *InactivitySweepJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	engine *sim.Engine,
	sweepHandler commands.SweepInactiveCouriersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		simulationJob:      NewSimulationJob(engine, logger),
		inactivitySweepJob: NewInactivitySweepJob(sweepHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.simulationJob.Start(); err != nil {
		return fmt.Errorf("failed to start simulation job: %w", err)
	}

	if err := jm.inactivitySweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.simulationJob.Stop()
		return fmt.Errorf("failed to start inactivity sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.inactivitySweepJob.Stop()
	jm.simulationJob.Stop()
}
