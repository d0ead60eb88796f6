// Package account models the bank's account aggregate.
//
// An Account is one of three kinds sharing a single representation: debit
// (floor at zero), savings (floor at zero, earns monthly interest) and
// credit (may go negative down to its credit limit, accrues monthly penalty
// interest on debt). Balance changes go through Deposit, Withdraw and
// ApplyMonthlyUpdate; everything else is read-only access.
package account

import (
	"errors"
	"fmt"
	"time"

	"github.com/amirasaad/banking/pkg/currency"
	"github.com/amirasaad/banking/pkg/domain"
	"github.com/amirasaad/banking/pkg/money"
	"github.com/shopspring/decimal"
)

// ErrInvalidAccount is returned when construction invariants are violated.
var ErrInvalidAccount = errors.New("invalid account")

// DefaultCreditLimit is the credit limit, in major units, applied when a
// credit account is opened without an explicit one.
const DefaultCreditLimit = -5000.0

// Kind discriminates the account variants.
type Kind byte

// Account kinds.
const (
	Debit   Kind = 'D'
	Savings Kind = 'S'
	Credit  Kind = 'C'
)

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	return k == Debit || k == Savings || k == Credit
}

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case Debit:
		return "DEBIT"
	case Savings:
		return "SAVINGS"
	case Credit:
		return "CREDIT"
	default:
		return fmt.Sprintf("UNKNOWN(%c)", byte(k))
	}
}

// ParseKind converts a stored type tag ('D', 'S', 'C') back into a Kind.
func ParseKind(tag byte) (Kind, error) {
	k := Kind(tag)
	if !k.IsValid() {
		return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidAccount, string(tag))
	}
	return k, nil
}

// Account is the aggregate root for a single bank account. All fields are
// private; state changes are only possible through its methods, so the
// balance floor invariants hold at all times.
type Account struct {
	id           string
	customerID   string
	holder       string
	country      string
	kind         Kind
	iban         Iban
	balance      money.Money
	createdAt    time.Time
	interestRate float64
	creditLimit  money.Money
	transactions []*Transaction
}

// Builder provides a fluent API for constructing Account values, both for
// opening new accounts and for hydrating stored ones.
type Builder struct {
	id           string
	customerID   string
	holder       string
	country      string
	kind         Kind
	iban         Iban
	currency     currency.Code
	balance      money.Money
	balanceSet   bool
	createdAt    time.Time
	interestRate float64
	creditLimit  money.Money
	limitSet     bool
}

// New creates a Builder with a debit kind and the current time as the
// creation date.
func New() *Builder {
	return &Builder{kind: Debit, createdAt: time.Now()}
}

// WithID sets the account identifier (e.g. "A001"). Mandatory.
func (b *Builder) WithID(id string) *Builder {
	b.id = id
	return b
}

// WithCustomerID sets the owning customer's identifier. Mandatory.
func (b *Builder) WithCustomerID(customerID string) *Builder {
	b.customerID = customerID
	return b
}

// WithHolder sets the account holder's display name, used in transfer
// descriptions.
func (b *Builder) WithHolder(holder string) *Builder {
	b.holder = holder
	return b
}

// WithCountry sets the ISO 3166 alpha-2 country used when synthesizing an
// IBAN. Required unless an IBAN is supplied.
func (b *Builder) WithCountry(country string) *Builder {
	b.country = country
	return b
}

// WithKind sets the account kind.
func (b *Builder) WithKind(kind Kind) *Builder {
	b.kind = kind
	return b
}

// WithIban sets an explicit IBAN, skipping synthesis. Used for hydration.
func (b *Builder) WithIban(iban Iban) *Builder {
	b.iban = iban
	return b
}

// WithCurrency sets the account currency for a zero opening balance.
func (b *Builder) WithCurrency(code currency.Code) *Builder {
	b.currency = code
	return b
}

// WithBalance sets the opening balance and, implicitly, the currency.
func (b *Builder) WithBalance(balance money.Money) *Builder {
	b.balance = balance
	b.balanceSet = true
	return b
}

// WithCreatedAt sets the creation date. Used for hydration.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithInterestRate sets the monthly rate in percent (2.0 means 2%).
// Meaningful for savings and credit kinds.
func (b *Builder) WithInterestRate(rate float64) *Builder {
	b.interestRate = rate
	return b
}

// WithCreditLimit sets the most negative balance a credit account may
// reach. Must be strictly negative.
func (b *Builder) WithCreditLimit(limit money.Money) *Builder {
	b.creditLimit = limit
	b.limitSet = true
	return b
}

// Build validates all construction invariants and returns the account.
//
// Invariants enforced:
//   - Kind must be one of debit, savings, credit.
//   - ID and customer ID are mandatory.
//   - The currency must be registered.
//   - Debit and savings balances must not be negative.
//   - A credit limit must be strictly negative and the balance must not
//     start below it; a missing limit defaults to -5000 major units.
//   - Interest rates must not be negative.
//   - Without an explicit IBAN, a country is needed to synthesize one.
func (b *Builder) Build() (*Account, error) {
	if !b.kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidAccount, string(byte(b.kind)))
	}
	if b.id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidAccount)
	}
	if b.customerID == "" {
		return nil, fmt.Errorf("%w: customer id is required", ErrInvalidAccount)
	}

	code := b.currency
	if b.balanceSet {
		code = b.balance.Currency()
	}
	if _, err := currency.Get(code); err != nil {
		return nil, err
	}
	balance := b.balance
	if !b.balanceSet {
		balance = money.Zero(code)
	}

	if b.interestRate < 0 {
		return nil, fmt.Errorf("%w: interest rate must not be negative", ErrInvalidAccount)
	}

	a := &Account{
		id:           b.id,
		customerID:   b.customerID,
		holder:       b.holder,
		country:      b.country,
		kind:         b.kind,
		iban:         b.iban,
		balance:      balance,
		createdAt:    b.createdAt,
		interestRate: b.interestRate,
	}

	switch b.kind {
	case Debit, Savings:
		if balance.IsNegative() {
			return nil, fmt.Errorf("%w: %s balance must not be negative", ErrInvalidAccount, b.kind)
		}
	case Credit:
		limit := b.creditLimit
		if !b.limitSet {
			var err error
			limit, err = money.New(DefaultCreditLimit, code)
			if err != nil {
				return nil, err
			}
		}
		if !limit.IsNegative() {
			return nil, fmt.Errorf("%w: credit limit must be negative", ErrInvalidAccount)
		}
		below, err := balance.LessThan(limit)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAccount, err)
		}
		if below {
			return nil, fmt.Errorf("%w: balance below credit limit", ErrInvalidAccount)
		}
		a.creditLimit = limit
	}

	if a.iban == "" {
		iban, err := NewIban(b.country, b.id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAccount, err)
		}
		a.iban = iban
	}

	return a, nil
}

// ID returns the account identifier.
func (a *Account) ID() string { return a.id }

// CustomerID returns the owning customer's identifier.
func (a *Account) CustomerID() string { return a.customerID }

// Holder returns the account holder's display name.
func (a *Account) Holder() string { return a.holder }

// Country returns the account's country code.
func (a *Account) Country() string { return a.country }

// Kind returns the account kind.
func (a *Account) Kind() Kind { return a.kind }

// Iban returns the account's IBAN.
func (a *Account) Iban() Iban { return a.iban }

// Balance returns the current balance.
func (a *Account) Balance() money.Money { return a.balance }

// Currency returns the account currency.
func (a *Account) Currency() currency.Code { return a.balance.Currency() }

// CreatedAt returns the account creation date.
func (a *Account) CreatedAt() time.Time { return a.createdAt }

// InterestRate returns the monthly rate in percent. Zero for debit kinds.
func (a *Account) InterestRate() float64 { return a.interestRate }

// CreditLimit returns the credit limit. The zero value for non-credit kinds.
func (a *Account) CreditLimit() money.Money { return a.creditLimit }

// AvailableCredit returns how much a credit account can still draw:
// |limit| + balance. Zero for other kinds.
func (a *Account) AvailableCredit() money.Money {
	if a.kind != Credit {
		return money.Zero(a.Currency())
	}
	avail, _ := a.creditLimit.Abs().Add(a.balance)
	return avail
}

// Deposit adds a positive amount to the balance.
// Invariants enforced:
//   - The amount must be positive.
//   - The amount's currency must match the account's.
func (a *Account) Deposit(amount money.Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: deposit must be positive", domain.ErrInvalidAmount)
	}
	balance, err := a.balance.Add(amount)
	if err != nil {
		return err
	}
	a.balance = balance
	return nil
}

// Withdraw removes a positive amount from the balance, respecting the
// kind's floor: zero for debit and savings, the credit limit for credit.
func (a *Account) Withdraw(amount money.Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: withdrawal must be positive", domain.ErrInvalidAmount)
	}
	remaining, err := a.balance.Subtract(amount)
	if err != nil {
		return err
	}

	switch a.kind {
	case Credit:
		below, err := remaining.LessThan(a.creditLimit)
		if err != nil {
			return err
		}
		if below {
			return fmt.Errorf("%w: %s available is %s", domain.ErrCreditLimitExceeded, a.id, a.AvailableCredit())
		}
	default:
		if remaining.IsNegative() {
			return fmt.Errorf("%w: %s holds %s", domain.ErrInsufficientFunds, a.id, a.balance)
		}
	}

	a.balance = remaining
	return nil
}

// ApplyMonthlyUpdate applies one month of interest and returns the signed
// balance delta.
//
//   - Debit: no change.
//   - Savings: balance grows by balance * rate/100.
//   - Credit: while in debt, the debt grows by |balance| * rate/100.
//
// Deltas are rounded half away from zero at the currency's smallest unit.
func (a *Account) ApplyMonthlyUpdate() money.Money {
	rate := decimal.NewFromFloat(a.interestRate).Div(decimal.NewFromInt(100))

	switch a.kind {
	case Savings:
		interest := a.balance.MulRate(rate)
		a.balance, _ = a.balance.Add(interest)
		return interest
	case Credit:
		if !a.balance.IsNegative() {
			return money.Zero(a.Currency())
		}
		penalty := a.balance.Abs().MulRate(rate)
		a.balance, _ = a.balance.Subtract(penalty)
		return penalty.Negate()
	default:
		return money.Zero(a.Currency())
	}
}
