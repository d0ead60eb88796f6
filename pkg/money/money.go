// Package money provides the fixed-point monetary value object used by the
// ledger.
//
// Invariants:
//   - Amount is always stored as an integer count of the currency's smallest
//     unit (e.g., bani for RON, cents for EUR/USD).
//   - The currency must be registered in the currency package.
//   - All arithmetic requires matching currencies.
package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/amirasaad/banking/pkg/currency"
	"github.com/shopspring/decimal"
)

var (
	// ErrCurrencyMismatch is returned when combining values of different
	// currencies.
	ErrCurrencyMismatch = errors.New("mismatched currencies")

	// ErrExcessPrecision is returned when an amount carries more decimal
	// places than its currency allows.
	ErrExcessPrecision = errors.New("amount has more decimal places than the currency allows")
)

// Money represents a monetary value in a specific currency.
type Money struct {
	amount   int64
	currency currency.Code
}

// New creates a Money value from a major-unit amount (e.g., 10.50 RON).
// Invariants enforced:
//   - The amount must be a finite number.
//   - The currency must be registered.
//   - The amount must not have more decimal places than the currency allows.
func New(amount float64, code currency.Code) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, fmt.Errorf("amount %v is not a finite number", amount)
	}
	return fromDecimal(decimal.NewFromFloat(amount), code)
}

// Parse creates a Money value from a major-unit decimal string like "510.00".
func Parse(s string, code currency.Code) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return fromDecimal(d, code)
}

// NewFromMinor creates a Money value directly from smallest-unit count.
func NewFromMinor(amount int64, code currency.Code) (Money, error) {
	if _, err := currency.Get(code); err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: code}, nil
}

// Zero returns a zero value in the given currency. Callers are expected to
// have validated the code already.
func Zero(code currency.Code) Money {
	return Money{amount: 0, currency: code}
}

func fromDecimal(d decimal.Decimal, code currency.Code) (Money, error) {
	meta, err := currency.Get(code)
	if err != nil {
		return Money{}, err
	}
	minor := d.Shift(int32(meta.Decimals))
	if !minor.IsInteger() {
		return Money{}, fmt.Errorf("%w: %s has at most %d", ErrExcessPrecision, code, meta.Decimals)
	}
	if !minor.BigInt().IsInt64() {
		return Money{}, fmt.Errorf("amount %s %s out of range", d, code)
	}
	return Money{amount: minor.IntPart(), currency: code}, nil
}

// Amount returns the amount in the smallest currency unit.
func (m Money) Amount() int64 {
	return m.amount
}

// AmountFloat returns the amount as a float64 in major units.
func (m Money) AmountFloat() float64 {
	f, _ := m.Decimal().Float64()
	return f
}

// Decimal returns the amount as an exact major-unit decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.amount, -int32(currency.MinorUnits(m.currency)))
}

// Currency returns the currency code of the Money value.
func (m Money) Currency() currency.Code {
	return m.currency
}

// Add returns the sum of two values.
// Invariants enforced:
//   - Currencies must match.
func (m Money) Add(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract returns the difference of two values. The result can be negative.
// Invariants enforced:
//   - Currencies must match.
func (m Money) Subtract(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// Negate returns the value with its sign flipped.
func (m Money) Negate() Money {
	return Money{amount: -m.amount, currency: m.currency}
}

// Abs returns the absolute value.
func (m Money) Abs() Money {
	if m.amount < 0 {
		return m.Negate()
	}
	return m
}

// MulRate multiplies the value by a decimal rate, rounding half away from
// zero at the currency's smallest unit. Used for interest accrual and
// currency conversion so repeated applications stay deterministic.
func (m Money) MulRate(rate decimal.Decimal) Money {
	product := decimal.New(m.amount, 0).Mul(rate).Round(0)
	return Money{amount: product.IntPart(), currency: m.currency}
}

// Equals reports whether two values have the same currency and amount.
func (m Money) Equals(other Money) bool {
	return m.IsSameCurrency(other) && m.amount == other.amount
}

// GreaterThan reports whether m > other.
// Invariants enforced:
//   - Currencies must match.
func (m Money) GreaterThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return m.amount > other.amount, nil
}

// LessThan reports whether m < other.
// Invariants enforced:
//   - Currencies must match.
func (m Money) LessThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return m.amount < other.amount, nil
}

// IsSameCurrency reports whether both values share a currency.
func (m Money) IsSameCurrency(other Money) bool {
	return m.currency == other.currency
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// Format renders the amount as a plain major-unit decimal string ("510.00"),
// without the currency code. Used for file encoding.
func (m Money) Format() string {
	return m.Decimal().StringFixed(int32(currency.MinorUnits(m.currency)))
}

// String returns a display representation like "510.00 RON".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Format(), m.currency)
}
