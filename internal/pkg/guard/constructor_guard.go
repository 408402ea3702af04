// Package guard detects values that bypassed their constructors.
//
// Aggregates, value objects, commands and queries embed a ConstructorGuard
// and check it in their Validate method. A zero-value struct carries an
// unset guard, so it is rejected before any business rule runs.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller did not
// supply its own error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built by its constructor.
//
// Example:
//
//	var ErrBudgetIsNotConstructed = errors.New("Budget must be created via NewBudget")
//
//	type Budget struct {
//	    amount int64
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewBudget(amount int64) (Budget, error) {
//	    if amount < 0 {
//	        return Budget{}, errors.New("amount cannot be negative")
//	    }
//	    return Budget{amount: amount, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (b Budget) Validate() error {
//	    return b.guard.Validate(ErrBudgetIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard is the zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
