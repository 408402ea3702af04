package services

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/opportunity"
	"marketplace/internal/core/domain/model/proposal"
	"marketplace/internal/pkg/errs"
)

// Rule names reported by ProposalDesk.
const (
	RuleOpportunityAcceptsProposals = "opportunity-accepts-proposals"
	RuleProposalMatchesOpportunity  = "proposal-matches-opportunity"
)

// rejectionReason is recorded on proposals that lose to the accepted one.
const rejectionReason = "another proposal was accepted"

// ProposalDesk coordinates proposals with the opportunity they answer.
//
// Business rules:
//   - a proposal can only be submitted while the opportunity accepts proposals
//   - accepting a proposal awards the opportunity to it in the same step
//   - every other active proposal of that opportunity is rejected
type ProposalDesk struct{}

func NewProposalDesk() ProposalDesk {
	return ProposalDesk{}
}

// Submit checks that opp is open for proposals at now and submits draft.
//
// Returns a ValidationFailedError when the opportunity does not accept
// proposals or the draft belongs to another opportunity.
func (d ProposalDesk) Submit(
	opp *opportunity.Opportunity,
	draft *proposal.Proposal,
	now time.Time,
) (*proposal.Proposal, []lifecycle.DomainEvent, error) {
	if err := d.checkPair(opp, draft); err != nil {
		return nil, nil, err
	}
	if !opp.AcceptsProposals(now) {
		return nil, nil, errs.NewValidationFailedError(RuleOpportunityAcceptsProposals,
			fmt.Sprintf("opportunity %s is %s and does not accept proposals", opp.ID(), opp.Status()))
	}

	return draft.Submit(now)
}

// Acceptance is the outcome of ProposalDesk.Accept. Events lists every
// event produced, in the order the changes happened.
type Acceptance struct {
	Opportunity *opportunity.Opportunity
	Accepted    *proposal.Proposal
	Rejected    []*proposal.Proposal
	Events      []lifecycle.DomainEvent
}

// Accept accepts winner, awards opp to it and rejects every other active
// proposal in competitors. A Published opportunity is moved to review first.
//
// Nothing is returned unless every step succeeds.
//
// Example:
//
//	result, err := desk.Accept(opp, winner, others, clock.Now())
//	if err != nil {
//	    return err
//	}
//	uow.RecordEvents(result.Events...)
func (d ProposalDesk) Accept(
	opp *opportunity.Opportunity,
	winner *proposal.Proposal,
	competitors []*proposal.Proposal,
	now time.Time,
) (Acceptance, error) {
	if err := d.checkPair(opp, winner); err != nil {
		return Acceptance{}, err
	}

	var events []lifecycle.DomainEvent

	if opp.Status() == opportunity.Published {
		reviewed, reviewEvents, err := opp.StartReview(now)
		if err != nil {
			return Acceptance{}, err
		}
		opp = reviewed
		events = append(events, reviewEvents...)
	}

	accepted, acceptEvents, err := winner.Accept(now)
	if err != nil {
		return Acceptance{}, err
	}
	events = append(events, acceptEvents...)

	awarded, awardEvents, err := opp.Award(winner.ID(), now)
	if err != nil {
		return Acceptance{}, err
	}
	events = append(events, awardEvents...)

	var rejected []*proposal.Proposal
	for _, p := range competitors {
		if p.IsEqual(winner) || !p.Status().IsActive() {
			continue
		}
		if !p.OpportunityID().IsEqual(opp.ID()) {
			return Acceptance{}, mismatch(opp, p)
		}

		loser, rejectEvents, err := p.Reject(rejectionReason, now)
		if err != nil {
			return Acceptance{}, err
		}
		rejected = append(rejected, loser)
		events = append(events, rejectEvents...)
	}

	return Acceptance{
		Opportunity: awarded,
		Accepted:    accepted,
		Rejected:    rejected,
		Events:      events,
	}, nil
}

func (d ProposalDesk) checkPair(opp *opportunity.Opportunity, p *proposal.Proposal) error {
	if err := opp.Validate(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if !p.OpportunityID().IsEqual(opp.ID()) {
		return mismatch(opp, p)
	}
	return nil
}

func mismatch(opp *opportunity.Opportunity, p *proposal.Proposal) error {
	return errs.NewValidationFailedError(RuleProposalMatchesOpportunity,
		fmt.Sprintf("proposal %s answers opportunity %s, not %s", p.ID(), p.OpportunityID(), opp.ID()))
}
