package jobs

import (
	"context"
	"log/slog"

	"rental/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSweepCronSpec runs the overdue sweep every five minutes.
const DefaultSweepCronSpec = "0 */5 * * * *"

// OverdueSweepJob periodically flags shipped orders whose rental period has
// ended as overdue, so they keep occupying their SKU until handled.
type OverdueSweepJob struct {
	handler  commands.SweepOverdueOrdersCommandHandler
	cron     *cron.Cron
	cronSpec string
	logger   *slog.Logger
}

// NewOverdueSweepJob creates the sweep job. An empty cronSpec falls back to
// DefaultSweepCronSpec.
func NewOverdueSweepJob(
	handler commands.SweepOverdueOrdersCommandHandler,
	cronSpec string,
	logger *slog.Logger,
) *OverdueSweepJob {
	if cronSpec == "" {
		cronSpec = DefaultSweepCronSpec
	}

	return &OverdueSweepJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		cronSpec: cronSpec,
		logger:   logger.With("component", "overdue_sweep_job"),
	}
}

// Start schedules the sweep on its cron expression.
func (j *OverdueSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.cronSpec, func() {
		ctx := context.Background()
		cmd := commands.NewSweepOverdueOrdersCommand()

		flagged, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Overdue sweep job failed", "error", handleErr)
			return
		}

		if flagged > 0 {
			j.logger.InfoContext(ctx, "Marked shipped orders as overdue", "count", flagged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue sweep job started", "cron", j.cronSpec)
	return nil
}

// Stop stops the overdue sweep job.
func (j *OverdueSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue sweep job stopped")
}
