package lifecycle

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
)

// StateSpec describes one status of an aggregate type.
//
// A status with no Transitions is terminal. Self-transitions are only legal
// when the status lists itself.
type StateSpec[S comparable] struct {
	Status      S
	Name        string
	DisplayName string
	Priority    int
	Transitions []S
	Active      bool
	AcceptsWork bool
}

type state[S comparable] struct {
	spec    StateSpec[S]
	targets map[S]struct{}
}

// Table is the single source of truth for the statuses of one aggregate type.
type Table[S comparable] struct {
	aggregate string
	initial   S
	order     []S
	states    map[S]state[S]
	byName    map[string]S
}

// NewTable validates the specs and builds a table.
//
// It fails with a ConfigurationError when a status or name is registered
// twice, when a status lists the same transition twice, when a transition
// targets an unregistered status, or when the
// initial status is missing or terminal.
func NewTable[S comparable](aggregate string, initial S, specs ...StateSpec[S]) (*Table[S], error) {
	t := &Table[S]{
		aggregate: aggregate,
		initial:   initial,
		order:     make([]S, 0, len(specs)),
		states:    make(map[S]state[S], len(specs)),
		byName:    make(map[string]S, len(specs)),
	}

	var problems []error
	for _, spec := range specs {
		if spec.Name == "" {
			problems = append(problems, fmt.Errorf("status %v has no name", spec.Status))
			continue
		}
		if _, dup := t.states[spec.Status]; dup {
			problems = append(problems, fmt.Errorf("status %s is registered twice", spec.Name))
			continue
		}
		if _, dup := t.byName[spec.Name]; dup {
			problems = append(problems, fmt.Errorf("name %s is registered twice", spec.Name))
			continue
		}

		targets := make(map[S]struct{}, len(spec.Transitions))
		for _, target := range spec.Transitions {
			if _, dup := targets[target]; dup {
				problems = append(problems, fmt.Errorf("status %s lists transition %v twice", spec.Name, target))
			}
			targets[target] = struct{}{}
		}
		spec.Transitions = append([]S(nil), spec.Transitions...)

		t.states[spec.Status] = state[S]{spec: spec, targets: targets}
		t.byName[spec.Name] = spec.Status
		t.order = append(t.order, spec.Status)
	}

	for _, s := range t.order {
		for _, target := range t.states[s].spec.Transitions {
			if _, ok := t.states[target]; !ok {
				problems = append(problems,
					fmt.Errorf("status %s targets unregistered status %v", t.states[s].spec.Name, target))
			}
		}
	}

	if init, ok := t.states[initial]; !ok {
		problems = append(problems, errors.New("initial status is not registered"))
	} else if len(init.targets) == 0 {
		problems = append(problems, fmt.Errorf("initial status %s is terminal", init.spec.Name))
	}

	if len(problems) > 0 {
		return nil, errs.NewConfigurationErrorWithCause(aggregate+" status table", errors.Join(problems...))
	}

	return t, nil
}

// MustNewTable is NewTable for package-level tables. A malformed table is a
// programming error and stops the process at initialization.
func MustNewTable[S comparable](aggregate string, initial S, specs ...StateSpec[S]) *Table[S] {
	t, err := NewTable(aggregate, initial, specs...)
	if err != nil {
		panic(err)
	}
	return t
}

// Aggregate returns the aggregate type name used in errors.
func (t *Table[S]) Aggregate() string {
	return t.aggregate
}

// Initial returns the status new aggregates start in.
func (t *Table[S]) Initial() S {
	return t.initial
}

// Statuses returns every registered status in registration order.
func (t *Table[S]) Statuses() []S {
	return append([]S(nil), t.order...)
}

// Contains reports whether s is a registered status.
func (t *Table[S]) Contains(s S) bool {
	_, ok := t.states[s]
	return ok
}

// AllowedTransitions returns the statuses reachable from s in one step.
// Unknown statuses have none.
func (t *Table[S]) AllowedTransitions(s S) []S {
	st, ok := t.states[s]
	if !ok {
		return nil
	}
	return append([]S(nil), st.spec.Transitions...)
}

// CanTransitionTo reports whether to is in the allowed set of from.
func (t *Table[S]) CanTransitionTo(from, to S) bool {
	st, ok := t.states[from]
	if !ok {
		return false
	}
	_, ok = st.targets[to]
	return ok
}

// ValidateTransition returns an InvalidStateTransitionError when the table
// has no edge from -> to.
func (t *Table[S]) ValidateTransition(from, to S) error {
	if t.CanTransitionTo(from, to) {
		return nil
	}
	return errs.NewInvalidStateTransitionError(t.aggregate, t.Name(from), t.Name(to))
}

// IsTerminal reports whether s has no outgoing transitions.
// Unknown statuses are treated as terminal.
func (t *Table[S]) IsTerminal(s S) bool {
	st, ok := t.states[s]
	return !ok || len(st.targets) == 0
}

func (t *Table[S]) IsActive(s S) bool {
	st, ok := t.states[s]
	return ok && st.spec.Active
}

// AcceptsWork reports the domain-specific "open for new work" flag, e.g.
// whether an opportunity accepts proposals.
func (t *Table[S]) AcceptsWork(s S) bool {
	st, ok := t.states[s]
	return ok && st.spec.AcceptsWork
}

func (t *Table[S]) Priority(s S) int {
	return t.states[s].spec.Priority
}

// Name returns the canonical name of s, or "Unknown" for unregistered values.
func (t *Table[S]) Name(s S) string {
	st, ok := t.states[s]
	if !ok {
		return "Unknown"
	}
	return st.spec.Name
}

// DisplayName falls back to Name when no display name is set.
func (t *Table[S]) DisplayName(s S) string {
	st, ok := t.states[s]
	if !ok || st.spec.DisplayName == "" {
		return t.Name(s)
	}
	return st.spec.DisplayName
}

// Parse resolves a canonical name back to its status.
func (t *Table[S]) Parse(name string) (S, error) {
	s, ok := t.byName[name]
	if !ok {
		var zero S
		return zero, errs.NewValueIsInvalidErrorWithCause(t.aggregate+" status",
			fmt.Errorf("unknown status %q", name))
	}
	return s, nil
}
