package kernel

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when a Money value bypassed NewMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney")

// ErrCurrencyMismatch is returned when two amounts in different currencies are compared.
var ErrCurrencyMismatch = errors.New("currencies do not match")

// Money is an immutable, non-negative amount expressed in minor units
// (cents) together with an upper-case ISO 4217 currency code.
//
// Example:
//
//	budget, err := kernel.NewMoney(250_000, "EUR") // 2,500.00 EUR
//	if err != nil {
//	    return err
//	}
//	fmt.Println(budget) // 2500.00 EUR
type Money struct { //nolint:recvcheck //using for validation
	amount   int64
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney validates the amount (must not be negative) and the currency
// (three ASCII letters). The currency is normalized to upper case.
func NewMoney(amount int64, currency string) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(m.setAmount(amount), m.setCurrency(currency)); err != nil {
		return Money{}, err
	}

	return m, nil
}

// Validate returns ErrMoneyIsNotConstructed for the zero value.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the value in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the ISO 4217 code.
func (m Money) Currency() string {
	return m.currency
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsEqual compares amount and currency. Both values must be constructed.
func (m Money) IsEqual(other Money) (bool, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return m.amount == other.amount && m.currency == other.currency, nil
}

// Exceeds reports whether m is strictly greater than other.
// Amounts in different currencies cannot be compared.
func (m Money) Exceeds(other Money) (bool, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return false, err
	}
	if m.currency != other.currency {
		return false, ErrCurrencyMismatch
	}

	return m.amount > other.amount, nil
}

// String formats the amount with two decimals, e.g. "2500.00 EUR".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.amount/100, m.amount%100, m.currency)
}

func (m *Money) setAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is negative", amount))
	}

	m.amount = amount
	return nil
}

func (m *Money) setCurrency(currency string) error {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if len(code) != 3 {
		return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a 3-letter code", currency))
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a 3-letter code", currency))
		}
	}

	m.currency = code
	return nil
}
