// Package exchange converts amounts between the bank's supported currencies.
//
// Rates come from a fixed directed table seeded in reciprocal pairs, so for
// every pair the product of the two directions is exactly 1. There is no
// live rate feed.
package exchange

import (
	"errors"
	"fmt"

	"github.com/amirasaad/banking/pkg/currency"
	"github.com/amirasaad/banking/pkg/domain"
	"github.com/amirasaad/banking/pkg/money"
	"github.com/shopspring/decimal"
)

// ErrUnsupportedPair is returned when no rate exists for a currency pair.
var ErrUnsupportedPair = errors.New("unsupported currency pair")

// Info holds details about a performed conversion.
type Info struct {
	OriginalAmount    float64
	OriginalCurrency  currency.Code
	ConvertedAmount   float64
	ConvertedCurrency currency.Code
	Rate              float64
}

// Converter converts amounts between currencies.
type Converter interface {
	// Convert converts an amount from one currency to another.
	Convert(amount float64, from, to currency.Code) (*Info, error)

	// GetRate returns the exchange rate between two currencies.
	GetRate(from, to currency.Code) (float64, error)

	// IsSupported checks whether a currency pair can be converted.
	IsSupported(from, to currency.Code) bool
}

// StaticConverter is a Converter backed by an in-memory directed rate table.
type StaticConverter struct {
	rates map[currency.Code]map[currency.Code]float64
}

// NewStaticConverter builds the bank's converter with its standard rates:
// EUR/RON 5.0, USD/RON 4.7 and EUR/USD 1.07, each paired with its exact
// reciprocal.
func NewStaticConverter() *StaticConverter {
	c := &StaticConverter{rates: make(map[currency.Code]map[currency.Code]float64)}
	c.AddPair(currency.EUR, currency.RON, 5.0)
	c.AddPair(currency.USD, currency.RON, 4.7)
	c.AddPair(currency.EUR, currency.USD, 1.07)
	return c
}

// AddPair registers rate for from->to and its reciprocal for to->from.
func (c *StaticConverter) AddPair(from, to currency.Code, rate float64) {
	c.add(from, to, rate)
	c.add(to, from, 1/rate)
}

func (c *StaticConverter) add(from, to currency.Code, rate float64) {
	if c.rates[from] == nil {
		c.rates[from] = make(map[currency.Code]float64)
	}
	c.rates[from][to] = rate
}

// Convert converts an amount between two supported currencies.
// Invariants enforced:
//   - The amount must not be negative.
//   - Both codes must be registered currencies.
//   - A rate must exist for the pair (identity pairs always convert).
func (c *StaticConverter) Convert(amount float64, from, to currency.Code) (*Info, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: cannot convert negative amount %v", domain.ErrInvalidAmount, amount)
	}
	rate, err := c.GetRate(from, to)
	if err != nil {
		return nil, err
	}
	return &Info{
		OriginalAmount:    amount,
		OriginalCurrency:  from,
		ConvertedAmount:   amount * rate,
		ConvertedCurrency: to,
		Rate:              rate,
	}, nil
}

// GetRate returns the rate for a pair, 1.0 for identity pairs.
func (c *StaticConverter) GetRate(from, to currency.Code) (float64, error) {
	if _, err := currency.Get(from); err != nil {
		return 0, err
	}
	if _, err := currency.Get(to); err != nil {
		return 0, err
	}
	if from == to {
		return 1.0, nil
	}
	rate, ok := c.rates[from][to]
	if !ok {
		return 0, fmt.Errorf("%w: %s->%s", ErrUnsupportedPair, from, to)
	}
	return rate, nil
}

// IsSupported checks whether a pair has a rate. Identity pairs of
// registered currencies are always supported.
func (c *StaticConverter) IsSupported(from, to currency.Code) bool {
	if !currency.IsSupported(from) || !currency.IsSupported(to) {
		return false
	}
	if from == to {
		return true
	}
	_, ok := c.rates[from][to]
	return ok
}

// ConvertMoney converts a fixed-point value into the target currency,
// rounding half away from zero at the target's smallest unit. The scale
// shift accounts for currencies with differing minor-unit decimals.
func ConvertMoney(c Converter, m money.Money, to currency.Code) (money.Money, error) {
	if m.IsNegative() {
		return money.Money{}, fmt.Errorf("%w: cannot convert negative amount %s", domain.ErrInvalidAmount, m)
	}
	rate, err := c.GetRate(m.Currency(), to)
	if err != nil {
		return money.Money{}, err
	}
	if m.Currency() == to {
		return m, nil
	}
	shift := int32(currency.MinorUnits(to) - currency.MinorUnits(m.Currency()))
	minor := decimal.New(m.Amount(), 0).
		Mul(decimal.NewFromFloat(rate)).
		Shift(shift).
		Round(0)
	return money.NewFromMinor(minor.IntPart(), to)
}
