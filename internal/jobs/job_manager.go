package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds the cron expressions (with seconds) and batch sizes of
// the jobs.
type Schedules struct {
	OutboxRelay     string
	OutboxBatchSize int
	Expiry          string
	ExpiryBatchSize int
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob       *OutboxRelayJob
	opportunityExpiryJob *OpportunityExpiryJob
	sourcingDeadlineJob  *SourcingDeadlineJob
}

// NewJobManager creates a new job manager with all required jobs.
// The sourcing deadline job runs on the expiry schedule.
func NewJobManager(
	dispatchOutboxHandler DispatchOutboxHandler,
	expireOpportunitiesHandler ExpireOverdueOpportunitiesHandler,
	startEvaluationsHandler StartDueEvaluationsHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxRelayJob: NewOutboxRelayJob(
			dispatchOutboxHandler, schedules.OutboxBatchSize, schedules.OutboxRelay, logger),
		opportunityExpiryJob: NewOpportunityExpiryJob(
			expireOpportunitiesHandler, schedules.ExpiryBatchSize, schedules.Expiry, logger),
		sourcingDeadlineJob: NewSourcingDeadlineJob(
			startEvaluationsHandler, schedules.ExpiryBatchSize, schedules.Expiry, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if err := jm.opportunityExpiryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start opportunity expiry job: %w", err)
	}

	if err := jm.sourcingDeadlineJob.Start(); err != nil {
		jm.opportunityExpiryJob.Stop()
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start sourcing deadline job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully. The outbox relay stops last
// so events recorded by a final expiry run can still be relayed later.
func (jm *JobManager) StopAll() {
	jm.sourcingDeadlineJob.Stop()
	jm.opportunityExpiryJob.Stop()
	jm.outboxRelayJob.Stop()
}
