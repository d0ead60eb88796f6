package money_test

import (
	"math"
	"testing"

	"github.com/amirasaad/banking/pkg/currency"
	"github.com/amirasaad/banking/pkg/money"
)

// FuzzNew checks construction invariants against random input.
func FuzzNew(f *testing.F) {
	f.Add(100.0, "RON")
	f.Add(-50.0, "EUR")
	f.Add(0.0, "USD")
	f.Add(1e12, "ZZZ")
	f.Add(10.505, "RON")
	f.Add(math.NaN(), "RON")
	f.Add(math.Inf(1), "USD")
	f.Fuzz(func(t *testing.T, amount float64, cc string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("New panicked: %v (amount=%v, currency=%q)", r, amount, cc)
			}
		}()
		m, err := money.New(amount, currency.Code(cc))
		if err != nil {
			return
		}
		if !m.Currency().IsValidFormat() {
			t.Errorf("constructed money has invalid currency %q", m.Currency())
		}
		if got := m.Negate().Negate(); !got.Equals(m) {
			t.Errorf("double negation changed the value: %v != %v", got, m)
		}
	})
}
