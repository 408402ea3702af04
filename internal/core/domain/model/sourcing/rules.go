package sourcing

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
)

// Subject carries the event, the policy of its type and the operation
// arguments into the rules.
type Subject struct {
	Event      *Event
	Policy     PolicyEntry
	Now        time.Time
	SupplierID kernel.UUID
	Reason     string
}

var (
	PolicyMatchesType = lifecycle.NewRule("policy-matches-type", func(s Subject) (bool, string) {
		return s.Policy.Validate() == nil && s.Policy.EventType() == s.Event.eventType,
			fmt.Sprintf("policy does not describe %s events", s.Event.eventType)
	})

	TitleRequired = lifecycle.NewRule("title-required", func(s Subject) (bool, string) {
		return strings.TrimSpace(s.Event.title) != "", "title must not be empty"
	})

	DurationWithinPolicy = lifecycle.NewRule("duration-within-policy", func(s Subject) (bool, string) {
		return s.Policy.AllowsDuration(s.Event.durationDays), fmt.Sprintf(
			"duration of %d days is outside %d..%d for %s",
			s.Event.durationDays, s.Policy.MinDurationDays(), s.Policy.MaxDurationDays(), s.Event.eventType)
	})

	VisibilityAllowed = lifecycle.NewRule("visibility-allowed", func(s Subject) (bool, string) {
		return s.Policy.AllowsVisibility(s.Event.visibility),
			fmt.Sprintf("%s events cannot be %s", s.Event.eventType, s.Event.visibility)
	})

	// InviteOnlyMinParticipants requires enough invitations for invite-only
	// events; public events are open to anyone.
	InviteOnlyMinParticipants = lifecycle.NewRule("invite-only-min-participants", func(s Subject) (bool, string) {
		if s.Event.visibility != InviteOnly {
			return true, ""
		}
		return len(s.Event.invitedSuppliers) >= s.Policy.MinParticipants(), fmt.Sprintf(
			"%d suppliers invited, %s requires at least %d",
			len(s.Event.invitedSuppliers), s.Event.eventType, s.Policy.MinParticipants())
	})

	ExtensionsRemaining = lifecycle.NewRule("extensions-remaining", func(s Subject) (bool, string) {
		return s.Event.extensions < s.Policy.MaxExtensions(),
			fmt.Sprintf("deadline was already extended %d of %d times", s.Event.extensions, s.Policy.MaxExtensions())
	})

	ExtensionWithinMaxDuration = lifecycle.NewRule("extension-within-max-duration", func(s Subject) (bool, string) {
		extended := s.Event.durationDays + (s.Event.extensions+1)*s.Policy.ExtensionDays()
		return extended <= s.Policy.MaxDurationDays(),
			fmt.Sprintf("extension would exceed %d days", s.Policy.MaxDurationDays())
	})

	MultipleRoundsAllowed = lifecycle.NewRule("multiple-rounds-allowed", func(s Subject) (bool, string) {
		return s.Policy.AllowsMultipleRounds(), fmt.Sprintf("%s events run a single round", s.Event.eventType)
	})

	RoundsRemaining = lifecycle.NewRule("rounds-remaining", func(s Subject) (bool, string) {
		return s.Event.round < s.Policy.MaxRounds(),
			fmt.Sprintf("round %d is the last of %d", s.Event.round, s.Policy.MaxRounds())
	})

	SupplierRequired = lifecycle.NewRule("supplier-required", func(s Subject) (bool, string) {
		return s.SupplierID.Validate() == nil, "a winning supplier must be given"
	})

	SupplierInvited = lifecycle.NewRule("supplier-invited", func(s Subject) (bool, string) {
		if s.Event.visibility != InviteOnly {
			return true, ""
		}
		return slices.Contains(s.Event.invitedSuppliers, s.SupplierID), "supplier was not invited to this event"
	})

	ReasonRequired = lifecycle.NewRule("reason-required", func(s Subject) (bool, string) {
		return strings.TrimSpace(s.Reason) != "", "a cancellation reason must be given"
	})
)

var (
	publishChain = lifecycle.NewChain(
		PolicyMatchesType,
		TitleRequired,
		DurationWithinPolicy,
		VisibilityAllowed,
		InviteOnlyMinParticipants,
	)
	extendChain    = lifecycle.NewChain(PolicyMatchesType, ExtensionsRemaining, ExtensionWithinMaxDuration)
	nextRoundChain = lifecycle.NewChain(PolicyMatchesType, MultipleRoundsAllowed, RoundsRemaining)
	awardChain     = lifecycle.NewChain(SupplierRequired, SupplierInvited)
	cancelChain    = lifecycle.NewChain(ReasonRequired)
)
