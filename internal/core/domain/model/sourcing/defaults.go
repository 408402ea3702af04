package sourcing

import "marketplace/internal/pkg/errs"

var (
	openOrInvited = []Visibility{Public, InviteOnly}
	publicOnly    = []Visibility{Public}
	invitedOnly   = []Visibility{InviteOnly}
)

// DefaultPolicySpecs returns the compiled-in parameters of every event type.
// A policy file may override them field by field.
func DefaultPolicySpecs() map[EventType]PolicySpec {
	return map[EventType]PolicySpec{
		RFI: {
			DefaultDurationDays: 14, MinDurationDays: 3, MaxDurationDays: 30,
			MinParticipants: 1, Tier: Basic,
			Weights:       MustEvaluationWeights(25, 40, 15, 20),
			Visibilities:  openOrInvited,
			MaxExtensions: 2, ExtensionDays: 7,
		},
		RFQ: {
			DefaultDurationDays: 7, MinDurationDays: 2, MaxDurationDays: 21,
			MinParticipants: 3, Tier: Standard,
			Weights:       MustEvaluationWeights(80, 10, 5, 5),
			Visibilities:  openOrInvited,
			MaxExtensions: 2, ExtensionDays: 3,
		},
		RFP: {
			RequiresDetailedProposal: true,
			DefaultDurationDays:      21, MinDurationDays: 7, MaxDurationDays: 60,
			MinParticipants: 3, Tier: Standard,
			Weights:       MustEvaluationWeights(40, 35, 15, 10),
			Visibilities:  openOrInvited,
			MaxExtensions: 2, ExtensionDays: 7,
		},
		ReverseAuction: {
			IsRealTime:          true,
			DefaultDurationDays: 1, MinDurationDays: 1, MaxDurationDays: 3,
			MinParticipants: 2, Tier: Verified,
			Weights:       MustEvaluationWeights(90, 5, 5, 0),
			Visibilities:  openOrInvited,
			MaxExtensions: 2, ExtensionDays: 1,
		},
		DutchAuction: {
			IsRealTime:          true,
			DefaultDurationDays: 1, MinDurationDays: 1, MaxDurationDays: 2,
			MinParticipants: 2, Tier: Verified,
			Weights:      MustEvaluationWeights(100, 0, 0, 0),
			Visibilities: publicOnly,
		},
		SealedBid: {
			SealedBids:          true,
			DefaultDurationDays: 10, MinDurationDays: 5, MaxDurationDays: 30,
			MinParticipants: 2, Tier: Standard,
			Weights:       MustEvaluationWeights(70, 15, 10, 5),
			Visibilities:  openOrInvited,
			MaxExtensions: 1, ExtensionDays: 5,
		},
		Negotiation: {
			AllowsMultipleRounds: true, RequiresDetailedProposal: true,
			DefaultDurationDays: 30, MinDurationDays: 7, MaxDurationDays: 90,
			MinParticipants: 2, Tier: Premium,
			Weights:       MustEvaluationWeights(50, 25, 15, 10),
			Visibilities:  invitedOnly,
			MaxExtensions: 3, ExtensionDays: 14,
			MaxRounds: 5,
		},
		Tender: {
			AllowsMultipleRounds: true, RequiresDetailedProposal: true, SealedBids: true,
			DefaultDurationDays: 45, MinDurationDays: 14, MaxDurationDays: 120,
			MinParticipants: 3, Tier: Premium,
			Weights:       MustEvaluationWeights(40, 30, 15, 15),
			Visibilities:  openOrInvited,
			MaxExtensions: 1, ExtensionDays: 14,
			MaxRounds: 3,
		},
	}
}

// BuildPolicyTable validates specs and builds a table that covers every
// event type.
func BuildPolicyTable(specs map[EventType]PolicySpec) (*PolicyTable, error) {
	entries := make([]PolicyEntry, 0, len(specs))
	for _, t := range EventTypes() {
		spec, ok := specs[t]
		if !ok {
			continue
		}
		entry, err := NewPolicyEntry(t, spec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	for t := range specs {
		if err := t.Validate(); err != nil {
			return nil, errs.NewConfigurationErrorWithCause("policy table", err)
		}
	}

	return NewPolicyTable(entries, RequireAllTypes())
}

var defaultPolicyTable = mustBuildDefault()

func mustBuildDefault() *PolicyTable {
	table, err := BuildPolicyTable(DefaultPolicySpecs())
	if err != nil {
		panic(err)
	}
	return table
}

// DefaultPolicyTable returns the compiled-in table. It is shared and read-only.
func DefaultPolicyTable() *PolicyTable {
	return defaultPolicyTable
}
