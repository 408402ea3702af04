package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/opportunity"
)

// ExpireOverdueOpportunitiesCommandHandler expires each overdue opportunity
// in its own transaction, so one failure does not hold back the rest.
type ExpireOverdueOpportunitiesCommandHandler struct {
	uowFactory OpportunityUoWFactory
	clock      kernel.Clock
	retries    uint64
}

func NewExpireOverdueOpportunitiesCommandHandler(
	uowFactory OpportunityUoWFactory,
	clock kernel.Clock,
) ExpireOverdueOpportunitiesCommandHandler {
	return ExpireOverdueOpportunitiesCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		retries:    DefaultConflictRetries,
	}
}

// Handle returns how many opportunities were expired. Per-item failures are
// joined into the returned error after every candidate was tried.
func (h ExpireOverdueOpportunitiesCommandHandler) Handle(
	ctx context.Context,
	command ExpireOverdueOpportunitiesCommand,
) (expired int, err error) {
	ctx, span := startSpan(ctx, "ExpireOverdueOpportunities")
	defer func() { endSpan(span, err) }()

	if err = command.Validate(); err != nil {
		return 0, err
	}

	candidates, err := h.findOverdue(ctx, command.Limit())
	if err != nil {
		return 0, err
	}

	var failures []error
	for _, candidate := range candidates {
		ok, err := h.expire(ctx, candidate.ID())
		if err != nil {
			failures = append(failures, err)
			continue
		}
		if ok {
			expired++
		}
	}

	return expired, errors.Join(failures...)
}

func (h ExpireOverdueOpportunitiesCommandHandler) findOverdue(
	ctx context.Context,
	limit int,
) ([]*opportunity.Opportunity, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OpportunityRepository().GetAllOverdue(ctx, h.clock.Now(), limit)
}

// expire reports false when the opportunity stopped being overdue since it
// was listed, for example because its owner moved it to review.
func (h ExpireOverdueOpportunitiesCommandHandler) expire(ctx context.Context, id kernel.UUID) (bool, error) {
	changed := false
	err := retryOnConflict(ctx, h.retries, func() error {
		changed = false

		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		opp, err := uow.OpportunityRepository().Get(ctx, id)
		if err != nil {
			return err
		}
		now := h.clock.Now()
		if !opp.IsOverdue(now) {
			return nil
		}

		expired, events, err := opp.Expire(now)
		if err != nil {
			return err
		}
		if err := uow.OpportunityRepository().Update(ctx, expired); err != nil {
			return err
		}
		uow.RecordEvents(events...)

		if err := uow.Commit(ctx); err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}
