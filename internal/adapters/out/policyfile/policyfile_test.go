package policyfile_test

import (
	"testing"

	"marketplace/internal/adapters/out/policyfile"
	"marketplace/internal/core/domain/model/sourcing"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_OverridesOnlyListedFields(t *testing.T) {
	table, err := policyfile.Load("testdata/policies.yaml")
	require.NoError(t, err)

	rfq, err := table.Lookup(sourcing.RFQ)
	require.NoError(t, err)
	assert.Equal(t, 10, rfq.DefaultDurationDays())
	assert.Equal(t, 2, rfq.MinParticipants())
	assert.Equal(t, 21, rfq.MaxDurationDays())
	assert.Equal(t, 70, rfq.EvaluationWeights().Price())
	assert.Equal(t, 20, rfq.EvaluationWeights().Quality())
	assert.Equal(t, 5, rfq.EvaluationWeights().Delivery())

	tender, err := table.Lookup(sourcing.Tender)
	require.NoError(t, err)
	assert.Equal(t, []sourcing.Visibility{sourcing.InviteOnly}, tender.Visibilities())
	assert.Equal(t, sourcing.Verified, tender.QualificationTier())
	assert.Equal(t, 2, tender.MaxExtensions())
	assert.Equal(t, 3, tender.MaxRounds())

	rfi, err := table.Lookup(sourcing.RFI)
	require.NoError(t, err)
	defaults, err := sourcing.DefaultPolicyTable().Lookup(sourcing.RFI)
	require.NoError(t, err)
	assert.Equal(t, defaults.DefaultDurationDays(), rfi.DefaultDurationDays())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := policyfile.Load("testdata/missing.yaml")

	require.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestParse_EmptyDocumentKeepsDefaults(t *testing.T) {
	table, err := policyfile.Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, sourcing.EventTypes(), table.Types())
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown event type", "policies:\n  Barter:\n    min_participants: 1\n"},
		{"unknown key", "policies:\n  RFQ:\n    min_bidders: 1\n"},
		{"weights not summing to 100", "policies:\n  RFQ:\n    weights: {price: 90}\n"},
		{"weights overflowing to 100", "policies:\n  RFQ:\n    weights: {price: 9223372036854775807, quality: 9223372036854775807, delivery: 102, service: 0}\n"},
		{"unknown visibility", "policies:\n  RFQ:\n    visibilities: [Secret]\n"},
		{"unknown tier", "policies:\n  RFQ:\n    tier: Gold\n"},
		{"default outside range", "policies:\n  RFQ:\n    default_duration_days: 40\n"},
		{"single round type with rounds", "policies:\n  RFQ:\n    max_rounds: 3\n"},
		{"malformed yaml", "policies: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := policyfile.Parse([]byte(tt.doc))

			require.ErrorIs(t, err, errs.ErrConfiguration)
		})
	}
}
