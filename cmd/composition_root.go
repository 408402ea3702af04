package cmd

import (
	"context"
	"log/slog"

	"marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/sourcing"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	policies   *sourcing.PolicyTable
	publisher  ports.EventPublisher
	clock      kernel.Clock
}

func NewCompositionRoot(gormDB *gorm.DB, policies *sourcing.PolicyTable, publisher ports.EventPublisher) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		policies:   policies,
		publisher:  publisher,
		clock:      kernel.RealClock{},
	}
}

func (c *CompositionRoot) opportunityUoWFactory() commands.OpportunityUoWFactory {
	return FuncOpportunityUoWFactory(func() commands.OpportunityUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) proposalUoWFactory() commands.ProposalUoWFactory {
	return FuncProposalUoWFactory(func() commands.ProposalUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) sourcingUoWFactory() commands.SourcingUoWFactory {
	return FuncSourcingUoWFactory(func() commands.SourcingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOpportunityCommandHandler() commands.CreateOpportunityCommandHandler {
	return commands.NewCreateOpportunityCommandHandler(c.opportunityUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateChangeOpportunityStatusCommandHandler() commands.ChangeOpportunityStatusCommandHandler {
	return commands.NewChangeOpportunityStatusCommandHandler(c.opportunityUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateExpireOverdueOpportunitiesCommandHandler() commands.ExpireOverdueOpportunitiesCommandHandler {
	return commands.NewExpireOverdueOpportunitiesCommandHandler(c.opportunityUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCreateProposalCommandHandler() commands.CreateProposalCommandHandler {
	return commands.NewCreateProposalCommandHandler(c.proposalUoWFactory(), services.NewProposalDesk(), c.clock)
}

func (c *CompositionRoot) CreateReviseProposalCommandHandler() commands.ReviseProposalCommandHandler {
	return commands.NewReviseProposalCommandHandler(c.proposalUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateChangeProposalStatusCommandHandler() commands.ChangeProposalStatusCommandHandler {
	return commands.NewChangeProposalStatusCommandHandler(c.proposalUoWFactory(), services.NewProposalDesk(), c.clock)
}

func (c *CompositionRoot) CreateAcceptProposalCommandHandler() commands.AcceptProposalCommandHandler {
	return commands.NewAcceptProposalCommandHandler(c.proposalUoWFactory(), services.NewProposalDesk(), c.clock)
}

func (c *CompositionRoot) CreateCreateSourcingEventCommandHandler() commands.CreateSourcingEventCommandHandler {
	return commands.NewCreateSourcingEventCommandHandler(c.sourcingUoWFactory(), c.policies, c.clock)
}

func (c *CompositionRoot) CreateChangeSourcingEventStatusCommandHandler() commands.ChangeSourcingEventStatusCommandHandler {
	return commands.NewChangeSourcingEventStatusCommandHandler(c.sourcingUoWFactory(), c.policies, c.clock)
}

func (c *CompositionRoot) CreateAwardSourcingEventCommandHandler() commands.AwardSourcingEventCommandHandler {
	return commands.NewAwardSourcingEventCommandHandler(
		c.sourcingUoWFactory(), c.policies, services.NewBidEvaluator(), c.clock)
}

func (c *CompositionRoot) CreateStartDueEvaluationsCommandHandler() commands.StartDueEvaluationsCommandHandler {
	return commands.NewStartDueEvaluationsCommandHandler(c.sourcingUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDispatchOutboxCommandHandler() commands.DispatchOutboxCommandHandler {
	return commands.NewDispatchOutboxCommandHandler(c.outboxUoWFactory(), c.publisher, c.clock)
}

// CreateHTTPHandlers wires every use case the REST adapter exposes.
func (c *CompositionRoot) CreateHTTPHandlers() http.Handlers {
	return http.Handlers{
		CreateOpportunity:          c.CreateCreateOpportunityCommandHandler(),
		ChangeOpportunityStatus:    c.CreateChangeOpportunityStatusCommandHandler(),
		CreateProposal:             c.CreateCreateProposalCommandHandler(),
		ReviseProposal:             c.CreateReviseProposalCommandHandler(),
		ChangeProposalStatus:       c.CreateChangeProposalStatusCommandHandler(),
		AcceptProposal:             c.CreateAcceptProposalCommandHandler(),
		CreateSourcingEvent:        c.CreateCreateSourcingEventCommandHandler(),
		ChangeSourcingEventStatus:  c.CreateChangeSourcingEventStatusCommandHandler(),
		AwardSourcingEvent:         c.CreateAwardSourcingEventCommandHandler(),
		GetOpportunity:             queries.NewGetOpportunityQueryHandler(c.gormDB),
		ListOpenOpportunities:      queries.NewListOpenOpportunitiesQueryHandler(c.gormDB),
		ListProposalsByOpportunity: queries.NewListProposalsByOpportunityQueryHandler(c.gormDB),
		GetSourcingEvent:           queries.NewGetSourcingEventQueryHandler(c.gormDB),
		HealthCheck:                c.ping,
	}
}

// CreateJobManager wires the outbox relay, expiry and deadline jobs.
func (c *CompositionRoot) CreateJobManager(cfg Config, logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateDispatchOutboxCommandHandler(),
		c.CreateExpireOverdueOpportunitiesCommandHandler(),
		c.CreateStartDueEvaluationsCommandHandler(),
		jobs.Schedules{
			OutboxRelay:     cfg.OutboxSchedule,
			OutboxBatchSize: cfg.OutboxBatchSize,
			Expiry:          cfg.ExpirySchedule,
			ExpiryBatchSize: cfg.ExpiryBatchSize,
		},
		logger,
	)
}

func (c *CompositionRoot) ping(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type FuncOpportunityUoWFactory func() commands.OpportunityUoW

func (f FuncOpportunityUoWFactory) Create() commands.OpportunityUoW {
	return f()
}

type FuncProposalUoWFactory func() commands.ProposalUoW

func (f FuncProposalUoWFactory) Create() commands.ProposalUoW {
	return f()
}

type FuncSourcingUoWFactory func() commands.SourcingUoW

func (f FuncSourcingUoWFactory) Create() commands.SourcingUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
