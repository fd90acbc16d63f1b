package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"ordering/internal/core/application/usecases/commands"
)

// CancelUnconfirmedHandler runs the auto-cancel policy once.
type CancelUnconfirmedHandler interface {
	Handle(ctx context.Context, cmd commands.CancelUnconfirmedOrdersCommand) (int, error)
}

// AutoCancelJob cancels PLACED orders nobody accepted within the timeout.
type AutoCancelJob struct {
	handler  CancelUnconfirmedHandler
	timeout  time.Duration
	batch    int
	schedule string
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAutoCancelJob creates the job. The schedule is a six-field cron
// expression (seconds first), e.g. "*/30 * * * * *".
func NewAutoCancelJob(
	handler CancelUnconfirmedHandler,
	timeout time.Duration,
	batch int,
	schedule string,
	logger *slog.Logger,
) *AutoCancelJob {
	return &AutoCancelJob{
		handler:  handler,
		timeout:  timeout,
		batch:    batch,
		schedule: schedule,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "auto_cancel_job"),
	}
}

func (j *AutoCancelJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-cancel job started",
		"schedule", j.schedule, "timeout", j.timeout.String())
	return nil
}

// RunOnce cancels one batch of orders placed before now minus the timeout.
func (j *AutoCancelJob) RunOnce(ctx context.Context) int {
	cmd, err := commands.NewCancelUnconfirmedOrdersCommand(j.now().Add(-j.timeout), j.batch)
	if err != nil {
		j.logger.ErrorContext(ctx, "Auto-cancel job misconfigured", "error", err)
		return 0
	}

	cancelled, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Auto-cancel job failed", "cancelled", cancelled, "error", err)
	}
	if cancelled > 0 {
		j.logger.InfoContext(ctx, "Unconfirmed orders cancelled", "count", cancelled)
	}
	return cancelled
}

// Stop waits for a running batch to finish.
func (j *AutoCancelJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Auto-cancel job stopped")
}
