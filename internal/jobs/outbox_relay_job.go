package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type DispatchOutboxHandler interface {
	Handle(ctx context.Context, command commands.DispatchOutboxCommand) (int, error)
}

// OutboxRelayJob moves pending outbox messages to the event publisher on a
// schedule. A run that fails leaves the messages pending for the next one.
type OutboxRelayJob struct {
	handler   DispatchOutboxHandler
	batchSize int
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates a relay job. schedule is a six-field cron
// expression (with seconds).
func NewOutboxRelayJob(handler DispatchOutboxHandler, batchSize int, schedule string, logger *slog.Logger) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:   handler,
		batchSize: batchSize,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

// Start schedules the job.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Run relays one batch.
func (j *OutboxRelayJob) Run(ctx context.Context) {
	cmd, err := commands.NewDispatchOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid outbox batch size", "error", err)
		return
	}

	dispatched, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err)
		return
	}
	if dispatched > 0 {
		j.logger.InfoContext(ctx, "Outbox messages dispatched", "count", dispatched)
	}
}

// Stop stops the scheduler and waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
