package commands_test

import (
	"context"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/opportunity"
	"marketplace/internal/core/domain/model/proposal"
	"marketplace/internal/core/domain/model/sourcing"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOpportunityRepository struct{ mock.Mock }

func (m *MockOpportunityRepository) Add(ctx context.Context, o *opportunity.Opportunity) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOpportunityRepository) Update(ctx context.Context, o *opportunity.Opportunity) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOpportunityRepository) Get(ctx context.Context, id kernel.UUID) (*opportunity.Opportunity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*opportunity.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) GetAllOverdue(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*opportunity.Opportunity, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*opportunity.Opportunity), args.Error(1)
}

type MockProposalRepository struct{ mock.Mock }

func (m *MockProposalRepository) Add(ctx context.Context, p *proposal.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProposalRepository) Update(ctx context.Context, p *proposal.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProposalRepository) Get(ctx context.Context, id kernel.UUID) (*proposal.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*proposal.Proposal), args.Error(1)
}

func (m *MockProposalRepository) GetAllByOpportunity(
	ctx context.Context,
	opportunityID kernel.UUID,
) ([]*proposal.Proposal, error) {
	args := m.Called(ctx, opportunityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*proposal.Proposal), args.Error(1)
}

type MockSourcingEventRepository struct{ mock.Mock }

func (m *MockSourcingEventRepository) Add(ctx context.Context, e *sourcing.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockSourcingEventRepository) Update(ctx context.Context, e *sourcing.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockSourcingEventRepository) Get(ctx context.Context, id kernel.UUID) (*sourcing.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sourcing.Event), args.Error(1)
}

func (m *MockSourcingEventRepository) GetAllDueForEvaluation(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*sourcing.Event, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sourcing.Event), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Append(ctx context.Context, events ...lifecycle.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkDispatched(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, messages []ports.OutboxMessage) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

// MockUoW implements every narrowed unit of work. Recorded events are kept
// in Recorded so tests can assert on them without expectations.
type MockUoW struct {
	mock.Mock

	Recorded []lifecycle.DomainEvent
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) RecordEvents(events ...lifecycle.DomainEvent) {
	m.Recorded = append(m.Recorded, events...)
}

func (m *MockUoW) OpportunityRepository() ports.OpportunityRepository {
	args := m.Called()
	return args.Get(0).(ports.OpportunityRepository)
}

func (m *MockUoW) ProposalRepository() ports.ProposalRepository {
	args := m.Called()
	return args.Get(0).(ports.ProposalRepository)
}

func (m *MockUoW) SourcingEventRepository() ports.SourcingEventRepository {
	args := m.Called()
	return args.Get(0).(ports.SourcingEventRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

func (m *MockUoW) recordedTypes() []string {
	types := make([]string, 0, len(m.Recorded))
	for _, e := range m.Recorded {
		types = append(types, e.Type())
	}
	return types
}

type MockOpportunityUoWFactory struct{ mock.Mock }

func (m *MockOpportunityUoWFactory) Create() commands.OpportunityUoW {
	args := m.Called()
	return args.Get(0).(commands.OpportunityUoW)
}

type MockProposalUoWFactory struct{ mock.Mock }

func (m *MockProposalUoWFactory) Create() commands.ProposalUoW {
	args := m.Called()
	return args.Get(0).(commands.ProposalUoW)
}

type MockSourcingUoWFactory struct{ mock.Mock }

func (m *MockSourcingUoWFactory) Create() commands.SourcingUoW {
	args := m.Called()
	return args.Get(0).(commands.SourcingUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func testClock() kernel.FixedClock {
	return kernel.FixedClock{At: testNow}
}

func mustMoney(amount int64) kernel.Money {
	m, err := kernel.NewMoney(amount, "EUR")
	if err != nil {
		panic(err)
	}
	return m
}

func newDraftOpportunity() *opportunity.Opportunity {
	opp, err := opportunity.NewOpportunity(
		kernel.NewUUID(), kernel.NewUUID(),
		"Office fit-out", "Desks and chairs for 40 people",
		mustMoney(1_000_000), testNow.Add(14*24*time.Hour), testNow.Add(-time.Hour),
	)
	if err != nil {
		panic(err)
	}
	return opp
}

func newPublishedOpportunity() *opportunity.Opportunity {
	opp, _, err := newDraftOpportunity().Publish(testNow.Add(-time.Hour))
	if err != nil {
		panic(err)
	}
	return opp.AcknowledgeEvents()
}

func newDraftProposal(opportunityID kernel.UUID) *proposal.Proposal {
	p, err := proposal.NewProposal(
		kernel.NewUUID(), opportunityID, kernel.NewUUID(),
		mustMoney(900_000), 20, "We have done this before", testNow.Add(-time.Hour),
	)
	if err != nil {
		panic(err)
	}
	return p
}

func newSubmittedProposal(opportunityID kernel.UUID) *proposal.Proposal {
	p, _, err := newDraftProposal(opportunityID).Submit(testNow.Add(-time.Hour))
	if err != nil {
		panic(err)
	}
	return p.AcknowledgeEvents()
}
