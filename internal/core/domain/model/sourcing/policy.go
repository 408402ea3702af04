package sourcing

import (
	"errors"
	"fmt"
	"slices"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// weightTotal is the sum every EvaluationWeights must reach.
const weightTotal = 100

// EvaluationWeights is the default distribution used to score responses.
// The four weights are non-negative and always sum to exactly 100.
type EvaluationWeights struct {
	price    int
	quality  int
	delivery int
	service  int
	guard    guard.ConstructorGuard
}

// NewEvaluationWeights fails with a ConfigurationError when a weight is
// negative or the sum is not 100.
//
// Example:
//
//	w, err := sourcing.NewEvaluationWeights(80, 10, 5, 5) // ok
//	_, err = sourcing.NewEvaluationWeights(80, 10, 5, 6)  // sum is 101
func NewEvaluationWeights(price, quality, delivery, service int) (EvaluationWeights, error) {
	var problems []error
	named := []struct {
		name  string
		value int
	}{{"price", price}, {"quality", quality}, {"delivery", delivery}, {"service", service}}
	for _, w := range named {
		if w.value < 0 || w.value > weightTotal {
			problems = append(problems, errs.NewValueIsOutOfRangeError(w.name+" weight", w.value, 0, weightTotal))
		}
	}
	// Summing only in-range weights keeps the total from overflowing.
	if len(problems) == 0 {
		if sum := price + quality + delivery + service; sum != weightTotal {
			problems = append(problems, fmt.Errorf("weights sum to %d, expected %d", sum, weightTotal))
		}
	}
	if len(problems) > 0 {
		return EvaluationWeights{}, errs.NewConfigurationErrorWithCause("evaluation weights", errors.Join(problems...))
	}

	return EvaluationWeights{
		price:    price,
		quality:  quality,
		delivery: delivery,
		service:  service,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// MustEvaluationWeights panics on invalid weights. It is meant for
// compiled-in defaults only.
func MustEvaluationWeights(price, quality, delivery, service int) EvaluationWeights {
	w, err := NewEvaluationWeights(price, quality, delivery, service)
	if err != nil {
		panic(err)
	}
	return w
}

func (w EvaluationWeights) Validate() error {
	return w.guard.Validate(errs.NewConfigurationError("evaluation weights were not constructed"))
}

func (w EvaluationWeights) Price() int { return w.price }
func (w EvaluationWeights) Quality() int { return w.quality }
func (w EvaluationWeights) Delivery() int { return w.delivery }
func (w EvaluationWeights) Service() int { return w.service }

func (w EvaluationWeights) Total() int {
	return w.price + w.quality + w.delivery + w.service
}

// PolicySpec is the raw, unvalidated form of a policy entry, as written in
// code or read from a policy file.
type PolicySpec struct {
	AllowsMultipleRounds     bool
	IsRealTime               bool
	RequiresDetailedProposal bool
	SealedBids               bool
	DefaultDurationDays      int
	MinDurationDays          int
	MaxDurationDays          int
	MinParticipants          int
	Tier                     QualificationTier
	Weights                  EvaluationWeights
	Visibilities             []Visibility
	MaxExtensions            int
	ExtensionDays            int
	MaxRounds                int
}

// PolicyEntry holds the immutable parameters of one event type.
type PolicyEntry struct {
	eventType EventType
	spec      PolicySpec
	guard     guard.ConstructorGuard
}

// NewPolicyEntry validates spec for eventType. Every problem is reported in
// a single ConfigurationError.
func NewPolicyEntry(eventType EventType, spec PolicySpec) (PolicyEntry, error) {
	var problems []error

	if err := eventType.Validate(); err != nil {
		problems = append(problems, err)
	}
	if spec.MinDurationDays < 0 || spec.MaxDurationDays < 0 || spec.DefaultDurationDays < 0 {
		problems = append(problems, errors.New("durations must not be negative"))
	}
	if spec.MinDurationDays > spec.MaxDurationDays {
		problems = append(problems, fmt.Errorf("min duration %d exceeds max duration %d",
			spec.MinDurationDays, spec.MaxDurationDays))
	}
	if spec.DefaultDurationDays < spec.MinDurationDays || spec.DefaultDurationDays > spec.MaxDurationDays {
		problems = append(problems, errs.NewValueIsOutOfRangeError("default duration",
			spec.DefaultDurationDays, spec.MinDurationDays, spec.MaxDurationDays))
	}
	if spec.MinParticipants < 1 {
		problems = append(problems, errors.New("at least one participant is required"))
	}
	if err := spec.Tier.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := spec.Weights.Validate(); err != nil {
		problems = append(problems, err)
	}
	if len(spec.Visibilities) == 0 {
		problems = append(problems, errors.New("at least one visibility is required"))
	}
	for _, v := range spec.Visibilities {
		if err := v.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	if spec.MaxExtensions < 0 || spec.ExtensionDays < 0 {
		problems = append(problems, errors.New("extension limits must not be negative"))
	}
	if spec.MaxExtensions > 0 && spec.ExtensionDays == 0 {
		problems = append(problems, errors.New("extensions are allowed but add no days"))
	}
	switch {
	case spec.AllowsMultipleRounds && spec.MaxRounds < 2:
		problems = append(problems, fmt.Errorf("multi-round type needs at least 2 rounds, got %d", spec.MaxRounds))
	case !spec.AllowsMultipleRounds && spec.MaxRounds > 1:
		problems = append(problems, fmt.Errorf("single-round type cannot allow %d rounds", spec.MaxRounds))
	}

	if len(problems) > 0 {
		return PolicyEntry{}, errs.NewConfigurationErrorWithCause(
			fmt.Sprintf("policy for %s", eventType), errors.Join(problems...))
	}

	spec.Visibilities = slices.Clone(spec.Visibilities)
	if spec.MaxRounds == 0 {
		spec.MaxRounds = 1
	}

	return PolicyEntry{eventType: eventType, spec: spec, guard: guard.NewConstructorGuard()}, nil
}

func (p PolicyEntry) Validate() error {
	return p.guard.Validate(errs.NewConfigurationError("policy entry was not constructed"))
}

func (p PolicyEntry) EventType() EventType { return p.eventType }
func (p PolicyEntry) AllowsMultipleRounds() bool { return p.spec.AllowsMultipleRounds }
func (p PolicyEntry) IsRealTime() bool { return p.spec.IsRealTime }
func (p PolicyEntry) RequiresDetailedProposal() bool { return p.spec.RequiresDetailedProposal }
func (p PolicyEntry) SealedBids() bool { return p.spec.SealedBids }
func (p PolicyEntry) DefaultDurationDays() int { return p.spec.DefaultDurationDays }
func (p PolicyEntry) MinDurationDays() int { return p.spec.MinDurationDays }
func (p PolicyEntry) MaxDurationDays() int { return p.spec.MaxDurationDays }
func (p PolicyEntry) MinParticipants() int { return p.spec.MinParticipants }
func (p PolicyEntry) QualificationTier() QualificationTier { return p.spec.Tier }
func (p PolicyEntry) EvaluationWeights() EvaluationWeights { return p.spec.Weights }
func (p PolicyEntry) MaxExtensions() int { return p.spec.MaxExtensions }
func (p PolicyEntry) ExtensionDays() int { return p.spec.ExtensionDays }
func (p PolicyEntry) MaxRounds() int { return p.spec.MaxRounds }

// Visibilities returns a copy of the allowed visibilities.
func (p PolicyEntry) Visibilities() []Visibility {
	return slices.Clone(p.spec.Visibilities)
}

func (p PolicyEntry) AllowsVisibility(v Visibility) bool {
	return slices.Contains(p.spec.Visibilities, v)
}

// AllowsDuration reports whether days is within [min, max].
func (p PolicyEntry) AllowsDuration(days int) bool {
	return days >= p.spec.MinDurationDays && days <= p.spec.MaxDurationDays
}

// Spec returns a copy of the raw parameters, e.g. to override a single field.
func (p PolicyEntry) Spec() PolicySpec {
	spec := p.spec
	spec.Visibilities = slices.Clone(p.spec.Visibilities)
	return spec
}

// PolicyTable maps every registered EventType to its PolicyEntry. It is
// immutable after construction and safe for concurrent reads.
type PolicyTable struct {
	entries map[EventType]PolicyEntry
}

type tableOptions struct {
	requireAll bool
}

// TableOption customizes NewPolicyTable.
type TableOption func(*tableOptions)

// RequireAllTypes makes NewPolicyTable fail when any EventType is missing.
func RequireAllTypes() TableOption {
	return func(o *tableOptions) { o.requireAll = true }
}

// NewPolicyTable indexes entries by type. Duplicate or unconstructed entries
// are configuration errors.
func NewPolicyTable(entries []PolicyEntry, opts ...TableOption) (*PolicyTable, error) {
	var o tableOptions
	for _, opt := range opts {
		opt(&o)
	}

	var problems []error
	index := make(map[EventType]PolicyEntry, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			problems = append(problems, err)
			continue
		}
		if _, dup := index[e.eventType]; dup {
			problems = append(problems, fmt.Errorf("%s is registered twice", e.eventType))
			continue
		}
		index[e.eventType] = e
	}
	if o.requireAll {
		for _, t := range EventTypes() {
			if _, ok := index[t]; !ok {
				problems = append(problems, fmt.Errorf("no policy for %s", t))
			}
		}
	}

	if len(problems) > 0 {
		return nil, errs.NewConfigurationErrorWithCause("policy table", errors.Join(problems...))
	}
	return &PolicyTable{entries: index}, nil
}

// Lookup returns the entry for t, or an ObjectNotFoundError.
func (pt *PolicyTable) Lookup(t EventType) (PolicyEntry, error) {
	e, ok := pt.entries[t]
	if !ok {
		return PolicyEntry{}, errs.NewObjectNotFoundError("policy", t.String())
	}
	return e, nil
}

// Types returns the registered types in declaration order.
func (pt *PolicyTable) Types() []EventType {
	var types []EventType
	for _, t := range EventTypes() {
		if _, ok := pt.entries[t]; ok {
			types = append(types, t)
		}
	}
	return types
}
