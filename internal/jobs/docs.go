// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs use github.com/robfig/cron/v3 with six-field expressions (seconds
// first) and never overlap with themselves.
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes pending outbox messages and marks them dispatched
// 2. OpportunityExpiryJob - expires Published opportunities past their deadline
// 3. SourcingDeadlineJob - starts evaluation of Open sourcing events past their deadline
//
// # Usage
//
//	jobManager := jobs.NewJobManager(dispatch, expire, startEvaluations, jobs.Schedules{
//		OutboxRelay:     "*/2 * * * * *",
//		OutboxBatchSize: 100,
//		Expiry:          "0 * * * * *",
//		ExpiryBatchSize: 100,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and left for the next run. Every job is safe to
// repeat: dispatched messages are marked only after publishing, and batch
// commands reload each aggregate before changing it.
package jobs
