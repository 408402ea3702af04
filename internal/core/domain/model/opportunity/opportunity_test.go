package opportunity_test

import (
	"strings"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/opportunity"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newDraft(t *testing.T) *opportunity.Opportunity {
	t.Helper()

	budget, err := kernel.NewMoney(500_000, "EUR")
	require.NoError(t, err)

	opp, err := opportunity.NewOpportunity(kernel.NewUUID(), kernel.NewUUID(),
		"Kitchen renovation", "Replace cabinets and countertop", budget, now.AddDate(0, 0, 30), now)
	require.NoError(t, err)

	return opp
}

func published(t *testing.T) *opportunity.Opportunity {
	t.Helper()

	opp, _, err := newDraft(t).Publish(now)
	require.NoError(t, err)

	return opp.AcknowledgeEvents()
}

func underReview(t *testing.T) *opportunity.Opportunity {
	t.Helper()

	opp, _, err := published(t).StartReview(now.Add(time.Hour))
	require.NoError(t, err)

	return opp.AcknowledgeEvents()
}

func TestNewOpportunity(t *testing.T) {
	t.Run("should create a draft", func(t *testing.T) {
		opp := newDraft(t)

		assert.Equal(t, opportunity.Draft, opp.Status())
		assert.NoError(t, opp.Validate())
		assert.Empty(t, opp.DomainEvents())
		assert.Equal(t, int64(0), opp.Version())
		assert.Equal(t, now, opp.CreatedAt())
		assert.Equal(t, now, opp.UpdatedAt())
		_, awarded := opp.AwardedProposalID()
		assert.False(t, awarded)
	})

	t.Run("should report every invalid parameter", func(t *testing.T) {
		opp, err := opportunity.NewOpportunity(kernel.UUID{}, kernel.UUID{}, "", "", kernel.Money{}, time.Time{}, now)

		assert.Nil(t, opp)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		for _, param := range []string{"id", "ownerId", "budget", "deadline"} {
			assert.Contains(t, err.Error(), param)
		}
	})

	t.Run("should reject overly long titles", func(t *testing.T) {
		budget, _ := kernel.NewMoney(1, "EUR")
		long := make([]byte, 201)
		for i := range long {
			long[i] = 'a'
		}

		_, err := opportunity.NewOpportunity(kernel.NewUUID(), kernel.NewUUID(), string(long), "", budget, now, now)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should count title length in characters", func(t *testing.T) {
		budget, _ := kernel.NewMoney(1, "EUR")
		title := strings.Repeat("ü", 200)

		opp, err := opportunity.NewOpportunity(kernel.NewUUID(), kernel.NewUUID(), title, "", budget, now, now)
		require.NoError(t, err)
		assert.Equal(t, title, opp.Title())

		_, err = opportunity.NewOpportunity(kernel.NewUUID(), kernel.NewUUID(), title+"ü", "", budget, now, now)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var opp opportunity.Opportunity

		assert.ErrorIs(t, opp.Validate(), opportunity.ErrOpportunityIsNotConstructed)
		_, _, err := opp.Publish(now)
		assert.ErrorIs(t, err, opportunity.ErrOpportunityIsNotConstructed)
	})
}

func TestOpportunity_Publish(t *testing.T) {
	t.Run("publishes once and emits one event", func(t *testing.T) {
		draft := newDraft(t)
		later := now.Add(time.Minute)

		pub, events, err := draft.Publish(later)

		require.NoError(t, err)
		assert.Equal(t, opportunity.Published, pub.Status())
		assert.Equal(t, later, pub.UpdatedAt())
		require.Len(t, events, 1)
		assert.Equal(t, opportunity.EventPublished, events[0].Type())
		assert.Equal(t, opportunity.AggregateType, events[0].AggregateType())
		assert.Equal(t, draft.ID(), events[0].AggregateID())
		assert.Equal(t, later, events[0].OccurredAt())
		assert.Equal(t, "Draft", events[0].Payload()["from"])
		assert.Equal(t, "Published", events[0].Payload()["to"])
		assert.Equal(t, events, pub.DomainEvents())

		assert.Equal(t, opportunity.Draft, draft.Status(), "receiver must not change")
		assert.Empty(t, draft.DomainEvents())

		again, events, err := pub.Publish(later)
		assert.Nil(t, again)
		assert.Nil(t, events)
		var transitionErr *errs.InvalidStateTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "Published", transitionErr.Current)
		assert.Equal(t, "Published", transitionErr.Target)
	})

	tests := []struct {
		name     string
		title    string
		desc     string
		amount   int64
		deadline time.Time
		rule     string
	}{
		{name: "missing title", title: " ", desc: "d", amount: 1, deadline: now.Add(time.Hour), rule: "title-required"},
		{name: "missing description", title: "t", desc: "", amount: 1, deadline: now.Add(time.Hour), rule: "description-required"},
		{name: "zero budget", title: "t", desc: "d", amount: 0, deadline: now.Add(time.Hour), rule: "budget-positive"},
		{name: "past deadline", title: "t", desc: "d", amount: 1, deadline: now, rule: "deadline-in-future"},
		{name: "first failing rule wins", title: "", desc: "", amount: 0, deadline: now, rule: "title-required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget, err := kernel.NewMoney(tt.amount, "EUR")
			require.NoError(t, err)
			draft, err := opportunity.NewOpportunity(kernel.NewUUID(), kernel.NewUUID(), tt.title, tt.desc, budget, tt.deadline, now)
			require.NoError(t, err)

			pub, events, err := draft.Publish(now)

			assert.Nil(t, pub)
			assert.Nil(t, events)
			var validationErr *errs.ValidationFailedError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.rule, validationErr.Rule)
			assert.Equal(t, opportunity.Draft, draft.Status())
		})
	}
}

func TestOpportunity_ReviewCycle(t *testing.T) {
	review := underReview(t)
	assert.Equal(t, opportunity.UnderReview, review.Status())

	reopened, events, err := review.ReopenForProposals(now.Add(2 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, opportunity.Published, reopened.Status())
	require.Len(t, events, 1)
	assert.Equal(t, opportunity.EventReopened, events[0].Type())
}

func TestOpportunity_Award(t *testing.T) {
	t.Run("awards a proposal under review", func(t *testing.T) {
		proposalID := kernel.NewUUID()

		awarded, events, err := underReview(t).Award(proposalID, now.Add(2*time.Hour))

		require.NoError(t, err)
		assert.Equal(t, opportunity.Awarded, awarded.Status())
		id, ok := awarded.AwardedProposalID()
		assert.True(t, ok)
		assert.Equal(t, proposalID, id)
		require.Len(t, events, 1)
		assert.Equal(t, proposalID.String(), events[0].Payload()["proposalId"])
	})

	t.Run("requires a proposal", func(t *testing.T) {
		_, _, err := underReview(t).Award(kernel.UUID{}, now)

		assert.ErrorIs(t, err, errs.ErrValidationFailed)
	})

	t.Run("transition is checked before rules", func(t *testing.T) {
		_, _, err := published(t).Award(kernel.UUID{}, now)

		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("completes after award", func(t *testing.T) {
		awarded, _, err := underReview(t).Award(kernel.NewUUID(), now)
		require.NoError(t, err)

		done, events, err := awarded.Complete(now.Add(24 * time.Hour))

		require.NoError(t, err)
		assert.Equal(t, opportunity.Completed, done.Status())
		assert.Equal(t, opportunity.EventCompleted, events[0].Type())
	})
}

func TestOpportunity_Cancel(t *testing.T) {
	cancelled, events, err := published(t).Cancel("  budget cut ", now)

	require.NoError(t, err)
	assert.Equal(t, opportunity.Cancelled, cancelled.Status())
	assert.Equal(t, "budget cut", cancelled.CancellationReason())
	assert.Equal(t, "budget cut", events[0].Payload()["reason"])

	_, _, err = published(t).Cancel(" ", now)
	var validationErr *errs.ValidationFailedError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "reason-required", validationErr.Rule)
}

func TestOpportunity_Expire(t *testing.T) {
	pub := published(t)

	_, _, err := pub.Expire(pub.Deadline().Add(-time.Second))
	assert.ErrorIs(t, err, errs.ErrValidationFailed)
	assert.False(t, pub.IsOverdue(pub.Deadline().Add(-time.Second)))

	assert.True(t, pub.IsOverdue(pub.Deadline()))
	expired, events, err := pub.Expire(pub.Deadline())
	require.NoError(t, err)
	assert.Equal(t, opportunity.Expired, expired.Status())
	assert.Equal(t, opportunity.EventExpired, events[0].Type())

	_, _, err = newDraft(t).Expire(now.AddDate(1, 0, 0))
	assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
}

func TestOpportunity_TerminalRejectsEveryOperation(t *testing.T) {
	closed, _, err := published(t).Close(now)
	require.NoError(t, err)
	expired, _, err := published(t).Expire(now.AddDate(1, 0, 0))
	require.NoError(t, err)
	cancelled, _, err := published(t).Cancel("no longer needed", now)
	require.NoError(t, err)
	awarded, _, err := underReview(t).Award(kernel.NewUUID(), now)
	require.NoError(t, err)
	completed, _, err := awarded.Complete(now)
	require.NoError(t, err)

	operations := map[string]func(o *opportunity.Opportunity) error{
		"publish":      func(o *opportunity.Opportunity) error { _, _, err := o.Publish(now); return err },
		"start review": func(o *opportunity.Opportunity) error { _, _, err := o.StartReview(now); return err },
		"reopen":       func(o *opportunity.Opportunity) error { _, _, err := o.ReopenForProposals(now); return err },
		"award":        func(o *opportunity.Opportunity) error { _, _, err := o.Award(kernel.NewUUID(), now); return err },
		"complete":     func(o *opportunity.Opportunity) error { _, _, err := o.Complete(now); return err },
		"close":        func(o *opportunity.Opportunity) error { _, _, err := o.Close(now); return err },
		"cancel":       func(o *opportunity.Opportunity) error { _, _, err := o.Cancel("x", now); return err },
		"expire":       func(o *opportunity.Opportunity) error { _, _, err := o.Expire(now.AddDate(2, 0, 0)); return err },
	}

	for _, terminal := range []*opportunity.Opportunity{closed, expired, cancelled, completed} {
		require.True(t, terminal.Status().IsTerminal())
		for name, op := range operations {
			assert.ErrorIs(t, op(terminal), errs.ErrInvalidStateTransition, "%s on %s", name, terminal.Status())
		}
	}
}

func TestOpportunity_IdempotentRejection(t *testing.T) {
	closed, _, err := published(t).Close(now)
	require.NoError(t, err)
	closed = closed.AcknowledgeEvents()
	before := closed.Snapshot()

	_, _, first := closed.Cancel("late", now)
	_, _, second := closed.Cancel("late", now)

	assert.Equal(t, first, second)
	assert.Equal(t, before, closed.Snapshot())
	assert.Empty(t, closed.DomainEvents())
}

func TestOpportunity_EventsDoNotAccumulate(t *testing.T) {
	pub, _, err := newDraft(t).Publish(now)
	require.NoError(t, err)

	review, events, err := pub.StartReview(now)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, opportunity.EventReviewStarted, events[0].Type())
	assert.Len(t, review.DomainEvents(), 1)
}

func TestOpportunity_AcceptsProposals(t *testing.T) {
	pub := published(t)

	assert.True(t, pub.AcceptsProposals(now))
	assert.False(t, pub.AcceptsProposals(pub.Deadline()))
	assert.False(t, newDraft(t).AcceptsProposals(now))
}
