package lifecycle

import "marketplace/internal/pkg/errs"

// Rule is a named, side-effect-free precondition over a subject.
type Rule[T any] interface {
	Name() string
	Evaluate(subject T) (bool, string)
}

type ruleFunc[T any] struct {
	name string
	fn   func(T) (bool, string)
}

func (r ruleFunc[T]) Name() string { return r.name }

func (r ruleFunc[T]) Evaluate(subject T) (bool, string) { return r.fn(subject) }

// NewRule adapts a predicate into a Rule. The predicate returns false and a
// human-readable message when the subject is rejected.
//
// Example:
//
//	titleRequired := lifecycle.NewRule("title-required", func(o *Opportunity) (bool, string) {
//	    return o.Title() != "", "title must not be empty"
//	})
func NewRule[T any](name string, fn func(T) (bool, string)) Rule[T] {
	return ruleFunc[T]{name: name, fn: fn}
}

// Chain evaluates its rules in registration order and stops at the first
// failure. The zero value is an empty chain that accepts everything.
type Chain[T any] struct {
	rules []Rule[T]
}

func NewChain[T any](rules ...Rule[T]) Chain[T] {
	return Chain[T]{rules: append([]Rule[T](nil), rules...)}
}

// Then returns a new chain with r appended; c is left untouched.
func (c Chain[T]) Then(r Rule[T]) Chain[T] {
	rules := make([]Rule[T], 0, len(c.rules)+1)
	rules = append(rules, c.rules...)
	return Chain[T]{rules: append(rules, r)}
}

// Validate returns a ValidationFailedError naming the first rule that
// rejects the subject, or nil.
func (c Chain[T]) Validate(subject T) error {
	for _, r := range c.rules {
		if ok, msg := r.Evaluate(subject); !ok {
			return errs.NewValidationFailedError(r.Name(), msg)
		}
	}
	return nil
}

func (c Chain[T]) Len() int {
	return len(c.rules)
}

// Names lists the rules in evaluation order.
func (c Chain[T]) Names() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name()
	}
	return names
}
