package account_test

import (
	"testing"

	"github.com/amirasaad/banking/pkg/currency"
	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/money"
)

// FuzzWithdraw checks the balance floor invariants against random amounts.
func FuzzWithdraw(f *testing.F) {
	f.Add(10.0)
	f.Add(0.0)
	f.Add(-5.0)
	f.Add(100.0)
	f.Add(100.01)
	f.Fuzz(func(t *testing.T, raw float64) {
		acc, err := account.New().
			WithID("A001").
			WithCustomerID("C001").
			WithCountry("RO").
			WithBalance(mustFuzzMoney(t, 100, currency.RON)).
			Build()
		if err != nil {
			t.Fatalf("building account: %v", err)
		}

		amount, err := money.New(raw, currency.RON)
		if err != nil {
			return
		}
		if err := acc.Withdraw(amount); err != nil {
			if !acc.Balance().Equals(mustFuzzMoney(t, 100, currency.RON)) {
				t.Errorf("failed withdrawal moved the balance to %s", acc.Balance())
			}
			return
		}
		if acc.Balance().IsNegative() {
			t.Errorf("debit balance went negative: %s (withdrew %v)", acc.Balance(), raw)
		}
	})
}

func mustFuzzMoney(t *testing.T, amount float64, code currency.Code) money.Money {
	t.Helper()
	m, err := money.New(amount, code)
	if err != nil {
		t.Fatalf("money.New(%v, %s): %v", amount, code, err)
	}
	return m
}
