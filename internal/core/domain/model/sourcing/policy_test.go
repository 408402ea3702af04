package sourcing_test

import (
	"math"
	"testing"

	"marketplace/internal/core/domain/model/sourcing"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvaluationWeights(t *testing.T) {
	t.Run("accepts weights summing to 100", func(t *testing.T) {
		w, err := sourcing.NewEvaluationWeights(80, 10, 5, 5)

		require.NoError(t, err)
		assert.Equal(t, 100, w.Total())
		assert.Equal(t, 80, w.Price())
		assert.Equal(t, 10, w.Quality())
		assert.Equal(t, 5, w.Delivery())
		assert.Equal(t, 5, w.Service())
		assert.NoError(t, w.Validate())
	})

	t.Run("rejects weights summing to 101", func(t *testing.T) {
		_, err := sourcing.NewEvaluationWeights(80, 10, 5, 6)

		assert.ErrorIs(t, err, errs.ErrConfiguration)
	})

	t.Run("rejects any sum other than 100", func(t *testing.T) {
		for p := 0; p <= 110; p += 11 {
			for q := 0; q <= 110; q += 13 {
				for d := -10; d <= 50; d += 15 {
					s := 100 - p - q - d + 1
					_, err := sourcing.NewEvaluationWeights(p, q, d, s)
					assert.ErrorIs(t, err, errs.ErrConfiguration, "%d/%d/%d/%d", p, q, d, s)
				}
			}
		}
	})

	t.Run("rejects negative weights even when the sum is 100", func(t *testing.T) {
		_, err := sourcing.NewEvaluationWeights(110, -10, 0, 0)

		require.ErrorIs(t, err, errs.ErrConfiguration)
		assert.Contains(t, err.Error(), "quality weight")
	})

	t.Run("rejects weights above 100 whose int sum wraps to 100", func(t *testing.T) {
		_, err := sourcing.NewEvaluationWeights(math.MaxInt, math.MaxInt, 102, 0)

		require.ErrorIs(t, err, errs.ErrConfiguration)
		assert.Contains(t, err.Error(), "price weight")
		assert.Contains(t, err.Error(), "delivery weight")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var w sourcing.EvaluationWeights

		assert.ErrorIs(t, w.Validate(), errs.ErrConfiguration)
	})
}

func validSpec() sourcing.PolicySpec {
	return sourcing.PolicySpec{
		DefaultDurationDays: 7, MinDurationDays: 2, MaxDurationDays: 21,
		MinParticipants: 3, Tier: sourcing.Standard,
		Weights:       sourcing.MustEvaluationWeights(80, 10, 5, 5),
		Visibilities:  []sourcing.Visibility{sourcing.Public},
		MaxExtensions: 2, ExtensionDays: 3,
	}
}

func TestNewPolicyEntry(t *testing.T) {
	t.Run("valid entry", func(t *testing.T) {
		entry, err := sourcing.NewPolicyEntry(sourcing.RFQ, validSpec())

		require.NoError(t, err)
		assert.Equal(t, sourcing.RFQ, entry.EventType())
		assert.Equal(t, 1, entry.MaxRounds())
		assert.True(t, entry.AllowsDuration(21))
		assert.False(t, entry.AllowsDuration(22))
		assert.True(t, entry.AllowsVisibility(sourcing.Public))
		assert.False(t, entry.AllowsVisibility(sourcing.InviteOnly))
	})

	tests := []struct {
		name   string
		mutate func(*sourcing.PolicySpec)
	}{
		{name: "negative duration", mutate: func(s *sourcing.PolicySpec) { s.MinDurationDays = -1 }},
		{name: "min above max", mutate: func(s *sourcing.PolicySpec) { s.MinDurationDays = 30 }},
		{name: "default outside bounds", mutate: func(s *sourcing.PolicySpec) { s.DefaultDurationDays = 40 }},
		{name: "no participants", mutate: func(s *sourcing.PolicySpec) { s.MinParticipants = 0 }},
		{name: "unknown tier", mutate: func(s *sourcing.PolicySpec) { s.Tier = sourcing.UnknownTier }},
		{name: "unconstructed weights", mutate: func(s *sourcing.PolicySpec) { s.Weights = sourcing.EvaluationWeights{} }},
		{name: "no visibility", mutate: func(s *sourcing.PolicySpec) { s.Visibilities = nil }},
		{name: "bad visibility", mutate: func(s *sourcing.PolicySpec) {
			s.Visibilities = []sourcing.Visibility{sourcing.UnknownVisibility}
		}},
		{name: "extensions without days", mutate: func(s *sourcing.PolicySpec) { s.ExtensionDays = 0 }},
		{name: "multi-round with one round", mutate: func(s *sourcing.PolicySpec) {
			s.AllowsMultipleRounds = true
			s.MaxRounds = 1
		}},
		{name: "single-round with many rounds", mutate: func(s *sourcing.PolicySpec) { s.MaxRounds = 3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := validSpec()
			tt.mutate(&spec)

			_, err := sourcing.NewPolicyEntry(sourcing.RFQ, spec)

			assert.ErrorIs(t, err, errs.ErrConfiguration)
		})
	}

	t.Run("unknown type", func(t *testing.T) {
		_, err := sourcing.NewPolicyEntry(sourcing.UnknownType, validSpec())

		assert.ErrorIs(t, err, errs.ErrConfiguration)
	})

	t.Run("entry does not alias the spec", func(t *testing.T) {
		spec := validSpec()
		entry, err := sourcing.NewPolicyEntry(sourcing.RFQ, spec)
		require.NoError(t, err)

		spec.Visibilities[0] = sourcing.InviteOnly
		entry.Visibilities()[0] = sourcing.InviteOnly

		assert.Equal(t, []sourcing.Visibility{sourcing.Public}, entry.Visibilities())
	})
}

func TestDefaultPolicyTable(t *testing.T) {
	table := sourcing.DefaultPolicyTable()

	assert.Equal(t, sourcing.EventTypes(), table.Types())
	for _, eventType := range sourcing.EventTypes() {
		entry, err := table.Lookup(eventType)
		require.NoError(t, err)
		assert.Equal(t, 100, entry.EvaluationWeights().Total(), eventType.String())
	}

	t.Run("real-time and negotiation types differ by data", func(t *testing.T) {
		auction, err := table.Lookup(sourcing.ReverseAuction)
		require.NoError(t, err)
		negotiation, err := table.Lookup(sourcing.Negotiation)
		require.NoError(t, err)

		assert.True(t, auction.IsRealTime())
		assert.False(t, auction.AllowsMultipleRounds())
		assert.True(t, negotiation.AllowsMultipleRounds())
		assert.Greater(t, negotiation.DefaultDurationDays(), auction.DefaultDurationDays())
	})

	t.Run("RFQ default weights", func(t *testing.T) {
		rfq, err := table.Lookup(sourcing.RFQ)
		require.NoError(t, err)

		w := rfq.EvaluationWeights()
		assert.Equal(t, []int{80, 10, 5, 5}, []int{w.Price(), w.Quality(), w.Delivery(), w.Service()})
		assert.Equal(t, sourcing.Standard, rfq.QualificationTier())
	})

	t.Run("unknown type is not found", func(t *testing.T) {
		_, err := table.Lookup(sourcing.UnknownType)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestNewPolicyTable(t *testing.T) {
	rfq, err := sourcing.NewPolicyEntry(sourcing.RFQ, validSpec())
	require.NoError(t, err)

	t.Run("partial table without RequireAllTypes", func(t *testing.T) {
		table, err := sourcing.NewPolicyTable([]sourcing.PolicyEntry{rfq})

		require.NoError(t, err)
		assert.Equal(t, []sourcing.EventType{sourcing.RFQ}, table.Types())
	})

	t.Run("missing types with RequireAllTypes", func(t *testing.T) {
		_, err := sourcing.NewPolicyTable([]sourcing.PolicyEntry{rfq}, sourcing.RequireAllTypes())

		require.ErrorIs(t, err, errs.ErrConfiguration)
		assert.Contains(t, err.Error(), "no policy for Tender")
	})

	t.Run("duplicates", func(t *testing.T) {
		_, err := sourcing.NewPolicyTable([]sourcing.PolicyEntry{rfq, rfq})

		assert.ErrorIs(t, err, errs.ErrConfiguration)
	})

	t.Run("unconstructed entry", func(t *testing.T) {
		_, err := sourcing.NewPolicyTable([]sourcing.PolicyEntry{{}})

		assert.ErrorIs(t, err, errs.ErrConfiguration)
	})
}

func TestBuildPolicyTable(t *testing.T) {
	t.Run("rejects an invalid override", func(t *testing.T) {
		specs := sourcing.DefaultPolicySpecs()
		spec := specs[sourcing.Tender]
		spec.MaxDurationDays = 10
		specs[sourcing.Tender] = spec

		_, err := sourcing.BuildPolicyTable(specs)

		require.ErrorIs(t, err, errs.ErrConfiguration)
		assert.Contains(t, err.Error(), "Tender")
	})

	t.Run("rejects a missing type", func(t *testing.T) {
		specs := sourcing.DefaultPolicySpecs()
		delete(specs, sourcing.RFI)

		_, err := sourcing.BuildPolicyTable(specs)

		assert.ErrorIs(t, err, errs.ErrConfiguration)
	})
}

func TestQualificationTier_Satisfies(t *testing.T) {
	assert.True(t, sourcing.Premium.Satisfies(sourcing.Verified))
	assert.True(t, sourcing.Standard.Satisfies(sourcing.Standard))
	assert.False(t, sourcing.Basic.Satisfies(sourcing.Standard))
	assert.False(t, sourcing.UnknownTier.Satisfies(sourcing.UnknownTier))
}

func TestParseEnums(t *testing.T) {
	for _, eventType := range sourcing.EventTypes() {
		parsed, err := sourcing.ParseEventType(eventType.String())
		require.NoError(t, err)
		assert.Equal(t, eventType, parsed)
	}
	_, err := sourcing.ParseEventType("Lottery")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	v, err := sourcing.ParseVisibility("InviteOnly")
	require.NoError(t, err)
	assert.Equal(t, sourcing.InviteOnly, v)

	tier, err := sourcing.ParseQualificationTier("Verified")
	require.NoError(t, err)
	assert.Equal(t, sourcing.Verified, tier)
}
