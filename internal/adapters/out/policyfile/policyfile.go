// Package policyfile overrides the compiled-in sourcing policies with values
// from a YAML file. Only the fields present in the file change; everything
// else keeps its default. The merged table is validated as a whole, so a
// file that makes any policy inconsistent is rejected.
//
// Example file:
//
//	policies:
//	  RFQ:
//	    default_duration_days: 10
//	    weights: {price: 70, quality: 20}
//	  Tender:
//	    visibilities: [InviteOnly]
package policyfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"marketplace/internal/core/domain/model/sourcing"
	"marketplace/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

type file struct {
	Policies map[string]policy `yaml:"policies"`
}

type policy struct {
	AllowsMultipleRounds     *bool    `yaml:"allows_multiple_rounds"`
	IsRealTime               *bool    `yaml:"is_real_time"`
	RequiresDetailedProposal *bool    `yaml:"requires_detailed_proposal"`
	SealedBids               *bool    `yaml:"sealed_bids"`
	DefaultDurationDays      *int     `yaml:"default_duration_days"`
	MinDurationDays          *int     `yaml:"min_duration_days"`
	MaxDurationDays          *int     `yaml:"max_duration_days"`
	MinParticipants          *int     `yaml:"min_participants"`
	Tier                     *string  `yaml:"tier"`
	Weights                  *weights `yaml:"weights"`
	Visibilities             []string `yaml:"visibilities"`
	MaxExtensions            *int     `yaml:"max_extensions"`
	ExtensionDays            *int     `yaml:"extension_days"`
	MaxRounds                *int     `yaml:"max_rounds"`
}

type weights struct {
	Price    *int `yaml:"price"`
	Quality  *int `yaml:"quality"`
	Delivery *int `yaml:"delivery"`
	Service  *int `yaml:"service"`
}

// Load reads path and returns the default table with the file applied.
func Load(path string) (*sourcing.PolicyTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.NewConfigurationErrorWithCause("policy file "+path, err)
	}
	return Parse(data)
}

// Parse applies a YAML document to the default specs. Unknown keys and
// unknown event type names are errors.
func Parse(data []byte) (*sourcing.PolicyTable, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.NewConfigurationErrorWithCause("policy file", err)
	}

	specs := sourcing.DefaultPolicySpecs()
	for name, override := range f.Policies {
		eventType, err := sourcing.ParseEventType(name)
		if err != nil {
			return nil, errs.NewConfigurationErrorWithCause("policy file", err)
		}

		spec, err := apply(specs[eventType], override)
		if err != nil {
			return nil, errs.NewConfigurationErrorWithCause("policy "+name, err)
		}
		specs[eventType] = spec
	}

	return sourcing.BuildPolicyTable(specs)
}

func apply(spec sourcing.PolicySpec, p policy) (sourcing.PolicySpec, error) {
	setBool(&spec.AllowsMultipleRounds, p.AllowsMultipleRounds)
	setBool(&spec.IsRealTime, p.IsRealTime)
	setBool(&spec.RequiresDetailedProposal, p.RequiresDetailedProposal)
	setBool(&spec.SealedBids, p.SealedBids)
	setInt(&spec.DefaultDurationDays, p.DefaultDurationDays)
	setInt(&spec.MinDurationDays, p.MinDurationDays)
	setInt(&spec.MaxDurationDays, p.MaxDurationDays)
	setInt(&spec.MinParticipants, p.MinParticipants)
	setInt(&spec.MaxExtensions, p.MaxExtensions)
	setInt(&spec.ExtensionDays, p.ExtensionDays)
	setInt(&spec.MaxRounds, p.MaxRounds)

	if p.Tier != nil {
		tier, err := sourcing.ParseQualificationTier(*p.Tier)
		if err != nil {
			return spec, err
		}
		spec.Tier = tier
	}

	if p.Weights != nil {
		price, quality, delivery, service := spec.Weights.Price(), spec.Weights.Quality(),
			spec.Weights.Delivery(), spec.Weights.Service()
		setInt(&price, p.Weights.Price)
		setInt(&quality, p.Weights.Quality)
		setInt(&delivery, p.Weights.Delivery)
		setInt(&service, p.Weights.Service)

		w, err := sourcing.NewEvaluationWeights(price, quality, delivery, service)
		if err != nil {
			return spec, fmt.Errorf("weights: %w", err)
		}
		spec.Weights = w
	}

	if p.Visibilities != nil {
		visibilities := make([]sourcing.Visibility, 0, len(p.Visibilities))
		for _, name := range p.Visibilities {
			v, err := sourcing.ParseVisibility(name)
			if err != nil {
				return spec, err
			}
			visibilities = append(visibilities, v)
		}
		spec.Visibilities = visibilities
	}

	return spec, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
