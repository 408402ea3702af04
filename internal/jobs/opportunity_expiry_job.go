package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type ExpireOverdueOpportunitiesHandler interface {
	Handle(ctx context.Context, command commands.ExpireOverdueOpportunitiesCommand) (int, error)
}

// OpportunityExpiryJob expires Published opportunities whose deadline has
// passed.
type OpportunityExpiryJob struct {
	handler  ExpireOverdueOpportunitiesHandler
	limit    int
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewOpportunityExpiryJob(
	handler ExpireOverdueOpportunitiesHandler,
	limit int,
	schedule string,
	logger *slog.Logger,
) *OpportunityExpiryJob {
	return &OpportunityExpiryJob{
		handler:  handler,
		limit:    limit,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "opportunity_expiry_job"),
	}
}

func (j *OpportunityExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Opportunity expiry job started", "schedule", j.schedule)
	return nil
}

// Run expires one batch. Opportunities that failed stay Published and are
// retried on the next run.
func (j *OpportunityExpiryJob) Run(ctx context.Context) {
	cmd, err := commands.NewExpireOverdueOpportunitiesCommand(j.limit)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid expiry batch size", "error", err)
		return
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if expired > 0 {
		j.logger.InfoContext(ctx, "Overdue opportunities expired", "count", expired)
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Opportunity expiry failed", "error", err)
	}
}

func (j *OpportunityExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Opportunity expiry job stopped")
}
