package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type StartDueEvaluationsHandler interface {
	Handle(ctx context.Context, command commands.StartDueEvaluationsCommand) (int, error)
}

// SourcingDeadlineJob moves Open sourcing events into Evaluation once their
// response deadline has passed.
type SourcingDeadlineJob struct {
	handler  StartDueEvaluationsHandler
	limit    int
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewSourcingDeadlineJob(
	handler StartDueEvaluationsHandler,
	limit int,
	schedule string,
	logger *slog.Logger,
) *SourcingDeadlineJob {
	return &SourcingDeadlineJob{
		handler:  handler,
		limit:    limit,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "sourcing_deadline_job"),
	}
}

func (j *SourcingDeadlineJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Sourcing deadline job started", "schedule", j.schedule)
	return nil
}

func (j *SourcingDeadlineJob) Run(ctx context.Context) {
	cmd, err := commands.NewStartDueEvaluationsCommand(j.limit)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid evaluation batch size", "error", err)
		return
	}

	started, err := j.handler.Handle(ctx, cmd)
	if started > 0 {
		j.logger.InfoContext(ctx, "Sourcing evaluations started", "count", started)
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Starting due evaluations failed", "error", err)
	}
}

func (j *SourcingDeadlineJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Sourcing deadline job stopped")
}
