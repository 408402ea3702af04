// Package postgres provides the GORM implementation of the Unit of Work used
// by the command handlers, together with the schema migration of every
// marketplace table.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// after Begin run inside that transaction. Domain events recorded with
// RecordEvents are appended to the outbox by Commit, in the same transaction,
// so an aggregate change and its events are stored together or not at all.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	opp, err := uow.OpportunityRepository().Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	published, events, err := opp.Publish(clock.Now())
//	if err != nil {
//	    return err
//	}
//	if err := uow.OpportunityRepository().Update(ctx, published); err != nil {
//	    return err
//	}
//	uow.RecordEvents(events...)
//
//	return uow.Commit(ctx)
//
// Concurrency:
//   - each UnitOfWork instance owns its transaction; goroutines must not share one
//   - lost updates are prevented by the version column, not by row locks, so
//     callers retry on errs.ErrVersionConflict
package postgres

import (
	"context"

	"marketplace/internal/adapters/out/postgres/opportunityrepo"
	"marketplace/internal/adapters/out/postgres/outboxrepo"
	"marketplace/internal/adapters/out/postgres/proposalrepo"
	"marketplace/internal/adapters/out/postgres/sourcingrepo"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the adapters use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&opportunityrepo.OpportunityDTO{},
		&proposalrepo.ProposalDTO{},
		&sourcingrepo.SourcingEventDTO{},
		&outboxrepo.MessageDTO{},
	)
}

// GormUnitOfWorkFactory creates a fresh UnitOfWork for every business
// operation.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a unit of work with no transaction and no recorded events.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction and the domain events
// it produces.
type GormUnitOfWork struct {
	db     *gorm.DB
	tx     *gorm.DB
	events []lifecycle.DomainEvent
}

// Begin starts the transaction. Calling it again while a transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	uow.events = nil

	return nil
}

// Commit appends the recorded events to the outbox and commits. When the
// append fails the transaction is rolled back and nothing is stored.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if len(uow.events) > 0 {
		if err := outboxrepo.NewGormOutboxRepository(uow.tx).Append(ctx, uow.events...); err != nil {
			_ = uow.Rollback(ctx)
			return err
		}
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.events = nil
	return err
}

// Rollback discards the transaction and the recorded events. Without an open
// transaction, for example after Commit, it does nothing.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	uow.events = nil
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// RecordEvents queues events for the outbox written on Commit.
func (uow *GormUnitOfWork) RecordEvents(events ...lifecycle.DomainEvent) {
	uow.events = append(uow.events, events...)
}

func (uow *GormUnitOfWork) OpportunityRepository() ports.OpportunityRepository {
	return opportunityrepo.NewGormOpportunityRepository(uow.conn())
}

func (uow *GormUnitOfWork) ProposalRepository() ports.ProposalRepository {
	return proposalrepo.NewGormProposalRepository(uow.conn())
}

func (uow *GormUnitOfWork) SourcingEventRepository() ports.SourcingEventRepository {
	return sourcingrepo.NewGormSourcingEventRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// conn returns the open transaction, or the plain connection outside one.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
