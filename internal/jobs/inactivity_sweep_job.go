package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"dispatch/internal/core/application/usecases/commands"
)

// InactivitySweepJob periodically ends the shift of couriers who have been
// working longer than the configured inactivity range.
type InactivitySweepJob struct {
	handler commands.SweepInactiveCouriersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewInactivitySweepJob creates a job that sweeps inactive couriers once a
// minute. Uses SweepInactiveCouriersCommandHandler so the sweep goes through
// the same path as any other courier state change.
func NewInactivitySweepJob(
	handler commands.SweepInactiveCouriersCommandHandler, logger *slog.Logger,
) *InactivitySweepJob {
	return &InactivitySweepJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "inactivity_sweep_job"),
	}
}

// Start begins the sweep job to run every minute.
func (j *InactivitySweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewSweepInactiveCouriersCommand()

		swept, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Inactivity sweep failed", "error", err)
			return
		}
		if len(swept) > 0 {
			j.logger.InfoContext(ctx, "Couriers deactivated after long shift", "courier_ids", swept)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Inactivity sweep job started (running every minute)")
	return nil
}

// Stop stops the inactivity sweep job.
func (j *InactivitySweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Inactivity sweep job stopped")
}
