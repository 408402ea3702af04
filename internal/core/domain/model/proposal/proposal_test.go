package proposal_test

import (
	"encoding/json"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/proposal"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

func money(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount, "EUR")
	require.NoError(t, err)
	return m
}

func newDraft(t *testing.T) *proposal.Proposal {
	t.Helper()

	p, err := proposal.NewProposal(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		money(t, 420_000), 21, "We have done ten kitchens this year.", now)
	require.NoError(t, err)

	return p
}

func submitted(t *testing.T) *proposal.Proposal {
	t.Helper()

	p, _, err := newDraft(t).Submit(now)
	require.NoError(t, err)

	return p.AcknowledgeEvents()
}

func TestProposal_Transitions(t *testing.T) {
	expected := map[proposal.Status][]proposal.Status{
		proposal.Draft:       {proposal.Submitted, proposal.Withdrawn},
		proposal.Submitted:   {proposal.UnderReview, proposal.Accepted, proposal.Rejected, proposal.Withdrawn},
		proposal.UnderReview: {proposal.Accepted, proposal.Rejected, proposal.Withdrawn},
	}

	for _, s := range proposal.Statuses() {
		assert.ElementsMatch(t, expected[s], s.AllowedTransitions(), s.String())
		assert.Equal(t, len(expected[s]) == 0, s.IsTerminal(), s.String())
	}
	assert.True(t, proposal.Draft.IsEditable())
	assert.False(t, proposal.Submitted.IsEditable())
	assert.True(t, proposal.UnderReview.IsActive())
	assert.Equal(t, "Under review", proposal.UnderReview.DisplayName())
	assert.ErrorIs(t, proposal.Unknown.Validate(), errs.ErrValueIsInvalid)
}

func TestNewProposal(t *testing.T) {
	t.Run("creates a draft", func(t *testing.T) {
		p := newDraft(t)

		assert.Equal(t, proposal.Draft, p.Status())
		assert.Empty(t, p.DomainEvents())
		assert.True(t, p.SubmittedAt().IsZero())
	})

	t.Run("rejects missing references", func(t *testing.T) {
		_, err := proposal.NewProposal(kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, kernel.Money{}, -1, "", now)

		require.Error(t, err)
		for _, param := range []string{"id", "opportunityId", "companyId", "price", "deliveryDays"} {
			assert.Contains(t, err.Error(), param)
		}
	})
}

func TestProposal_Submit(t *testing.T) {
	t.Run("submits a complete draft", func(t *testing.T) {
		draft := newDraft(t)

		p, events, err := draft.Submit(now)

		require.NoError(t, err)
		assert.Equal(t, proposal.Submitted, p.Status())
		assert.Equal(t, now, p.SubmittedAt())
		require.Len(t, events, 1)
		assert.Equal(t, proposal.EventSubmitted, events[0].Type())
		assert.Equal(t, draft.OpportunityID().String(), events[0].Payload()["opportunityId"])
		assert.Equal(t, int64(420_000), events[0].Payload()["price"])
	})

	tests := []struct {
		name  string
		price int64
		days  int
		cover string
		rule  string
	}{
		{name: "zero price", price: 0, days: 5, cover: "c", rule: "price-positive"},
		{name: "zero days", price: 1, days: 0, cover: "c", rule: "delivery-days-positive"},
		{name: "blank cover letter", price: 1, days: 5, cover: "  ", rule: "cover-letter-required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft, err := proposal.NewProposal(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
				money(t, tt.price), tt.days, tt.cover, now)
			require.NoError(t, err)

			_, _, err = draft.Submit(now)

			var validationErr *errs.ValidationFailedError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.rule, validationErr.Rule)
		})
	}
}

func TestProposal_AcceptedCannotBeWithdrawn(t *testing.T) {
	accepted, _, err := submitted(t).Accept(now)
	require.NoError(t, err)
	accepted = accepted.AcknowledgeEvents()
	before := accepted.Snapshot()

	withdrawn, events, err := accepted.Withdraw("changed my mind", now)

	assert.Nil(t, withdrawn)
	assert.Nil(t, events)
	var transitionErr *errs.InvalidStateTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "Accepted", transitionErr.Current)
	assert.Equal(t, "Withdrawn", transitionErr.Target)
	assert.Equal(t, before, accepted.Snapshot())

	_, _, again := accepted.Withdraw("changed my mind", now)
	assert.Equal(t, err, again)
}

func TestProposal_RejectAndWithdrawKeepReason(t *testing.T) {
	review, _, err := submitted(t).StartReview(now)
	require.NoError(t, err)

	rejected, events, err := review.Reject(" too expensive ", now)
	require.NoError(t, err)
	assert.Equal(t, proposal.Rejected, rejected.Status())
	assert.Equal(t, "too expensive", rejected.Reason())
	assert.Equal(t, "too expensive", events[0].Payload()["reason"])

	withdrawn, _, err := newDraft(t).Withdraw("", now)
	require.NoError(t, err)
	assert.Equal(t, proposal.Withdrawn, withdrawn.Status())
}

func TestProposal_TerminalRejectsEveryOperation(t *testing.T) {
	accepted, _, err := submitted(t).Accept(now)
	require.NoError(t, err)
	rejected, _, err := submitted(t).Reject("no", now)
	require.NoError(t, err)
	withdrawn, _, err := submitted(t).Withdraw("no", now)
	require.NoError(t, err)

	for _, p := range []*proposal.Proposal{accepted, rejected, withdrawn} {
		_, _, err = p.Submit(now)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		_, _, err = p.StartReview(now)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		_, _, err = p.Accept(now)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		_, _, err = p.Reject("x", now)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		_, _, err = p.Withdraw("x", now)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		_, err = p.Revise(money(t, 1), 1, "x", now)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	}
}

func TestProposal_Revise(t *testing.T) {
	t.Run("revises a draft without events", func(t *testing.T) {
		draft := newDraft(t)
		later := now.Add(time.Hour)

		revised, err := draft.Revise(money(t, 399_000), 14, "Faster and cheaper", later)

		require.NoError(t, err)
		assert.Equal(t, int64(399_000), revised.Price().Amount())
		assert.Equal(t, 14, revised.DeliveryDays())
		assert.Equal(t, later, revised.UpdatedAt())
		assert.Empty(t, revised.DomainEvents())
		assert.Equal(t, 21, draft.DeliveryDays())
	})

	t.Run("submitted proposals are frozen", func(t *testing.T) {
		_, err := submitted(t).Revise(money(t, 1), 1, "x", now)

		var transitionErr *errs.InvalidStateTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "Submitted", transitionErr.Current)
		assert.Equal(t, "Submitted", transitionErr.Target)
	})
}

func TestRestore_RoundTrip(t *testing.T) {
	for _, original := range []*proposal.Proposal{newDraft(t), submitted(t)} {
		data, err := json.Marshal(original.Snapshot())
		require.NoError(t, err)

		var decoded proposal.Snapshot
		require.NoError(t, json.Unmarshal(data, &decoded))
		restored, err := proposal.Restore(decoded)

		require.NoError(t, err)
		assert.Equal(t, original, restored)
	}
}
