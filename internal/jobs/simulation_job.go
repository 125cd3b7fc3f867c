package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"dispatch/internal/sim"
)

// SimulationJob drives the simulation engine on a fixed wall-clock cadence.
// Each run advances the virtual clock by one simulator interval and lets the
// engine act on every active courier.
type SimulationJob struct {
	engine *sim.Engine
	cron   *cron.Cron
	logger *slog.Logger
}

// NewSimulationJob creates a job that ticks the engine every second.
func NewSimulationJob(engine *sim.Engine, logger *slog.Logger) *SimulationJob {
	return &SimulationJob{
		engine: engine,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "simulation_job"),
	}
}

// Start begins the simulation job to run every second.
func (j *SimulationJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		if err := j.engine.Tick(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Simulation tick failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Simulation job started (running every second)")
	return nil
}

// Stop stops the simulation job.
func (j *SimulationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Simulation job stopped")
}
