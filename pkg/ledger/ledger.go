// Package ledger implements the bank's multi-account operations: transfers,
// credit draw and repayment, savings funding and the monthly interest run.
//
// Operations validate everything and convert currency before any balance
// moves, and they always record the transaction pair together with the
// balance change, so a failed operation leaves every account untouched and
// a successful one leaves a complete paper trail.
package ledger

import (
	"errors"
	"fmt"

	"github.com/amirasaad/banking/pkg/domain"
	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/exchange"
	"github.com/amirasaad/banking/pkg/money"
)

var (
	// ErrCrossOwnership is returned when an internal operation spans two
	// customers.
	ErrCrossOwnership = errors.New("accounts belong to different customers")

	// ErrSourceType is returned when an operation is attempted from an
	// account kind that does not allow it.
	ErrSourceType = errors.New("operation not allowed for this account type")

	// ErrSameAccount is returned when source and destination are the same
	// account.
	ErrSameAccount = errors.New("cannot transfer to the same account")

	// ErrNoDebt is returned when repaying a credit account that is not in
	// debt.
	ErrNoDebt = errors.New("no active credit to repay")

	// ErrRepayExceedsDebt is returned when a repayment exceeds the
	// outstanding debt.
	ErrRepayExceedsDebt = errors.New("amount exceeds owed credit")
)

// DefaultDescription is attached to transfers sent without one.
const DefaultDescription = "No description"

// Operations performs multi-account flows. Accounts enforce their own
// balance floors; Operations adds ownership, kind and currency rules and
// the transaction records.
type Operations struct {
	converter exchange.Converter
}

// New creates the ledger operations around a currency converter.
func New(converter exchange.Converter) *Operations {
	return &Operations{converter: converter}
}

// Deposit adds funds to an account and records the DEPOSIT transaction.
func (o *Operations) Deposit(acc *account.Account, amount money.Money, description string) error {
	if acc == nil {
		return domain.ErrMissingAccount
	}
	if description == "" {
		description = "Money deposited successfully."
	}
	if err := acc.Deposit(amount); err != nil {
		return err
	}
	acc.RecordTransaction(account.TxDeposit, amount, description)
	return nil
}

// Withdraw removes funds from an account and records the WITHDRAW
// transaction with a negative amount.
func (o *Operations) Withdraw(acc *account.Account, amount money.Money, description string) error {
	if acc == nil {
		return domain.ErrMissingAccount
	}
	if description == "" {
		description = "Money withdrawn."
	}
	if err := acc.Withdraw(amount); err != nil {
		return err
	}
	acc.RecordTransaction(account.TxWithdraw, amount.Negate(), description)
	return nil
}

// TransferInternal moves funds between two accounts of the same customer.
// The source must be a debit account; the amount is given in the source
// currency and converted into the destination currency.
//
// Exactly two transactions are recorded: TRANSFER_SENT with the negative
// source amount and TRANSFER_RECEIVED with the positive converted amount.
func (o *Operations) TransferInternal(from, to *account.Account, amount money.Money, description string) error {
	if from == nil || to == nil {
		return domain.ErrMissingAccount
	}
	if from.CustomerID() != to.CustomerID() {
		return fmt.Errorf("%w: %s and %s", ErrCrossOwnership, from.ID(), to.ID())
	}
	return o.transfer(from, to, amount, description)
}

// TransferExternal moves funds to an IBAN-addressed destination account,
// possibly owned by another customer. The source must be a debit account.
func (o *Operations) TransferExternal(from, to *account.Account, amount money.Money, description string) error {
	if from == nil || to == nil {
		return domain.ErrMissingAccount
	}
	return o.transfer(from, to, amount, description)
}

// transfer is the shared settlement path: validate, convert, debit the
// source in its native currency, credit the destination with the converted
// amount, then record both legs.
func (o *Operations) transfer(from, to *account.Account, amount money.Money, description string) error {
	if from.ID() == to.ID() {
		return ErrSameAccount
	}
	if from.Kind() != account.Debit {
		return fmt.Errorf("%w: transfers must originate from a debit account, not %s", ErrSourceType, from.Kind())
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: transfer amount must be positive", domain.ErrInvalidAmount)
	}
	if amount.Currency() != from.Currency() {
		return fmt.Errorf("%w: amount is %s, account holds %s",
			money.ErrCurrencyMismatch, amount.Currency(), from.Currency())
	}

	converted, err := exchange.ConvertMoney(o.converter, amount, to.Currency())
	if err != nil {
		return err
	}
	if !converted.IsPositive() {
		return fmt.Errorf("%w: %s converts to nothing in %s", domain.ErrInvalidAmount, amount, to.Currency())
	}

	if err := from.Withdraw(amount); err != nil {
		return err
	}
	// Deposit of a positive same-currency amount cannot fail, so the two
	// movements stand or fall together.
	if err := to.Deposit(converted); err != nil {
		return err
	}

	if description == "" {
		description = DefaultDescription
	}
	from.RecordTransaction(account.TxTransferSent, amount.Negate(),
		fmt.Sprintf("To: %s / %s", to.Holder(), description))
	to.RecordTransaction(account.TxTransferReceived, converted,
		fmt.Sprintf("From: %s / %s", from.Holder(), description))
	return nil
}

// DrawCredit draws funds from a credit account into a same-currency debit
// account of the same customer. The credit account's limit caps the draw.
func (o *Operations) DrawCredit(credit, debit *account.Account, amount money.Money) error {
	if err := validateCreditPair(credit, debit); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: credit amount must be positive", domain.ErrInvalidAmount)
	}

	if err := credit.Withdraw(amount); err != nil {
		return err
	}
	if err := debit.Deposit(amount); err != nil {
		return err
	}

	debit.RecordTransaction(account.TxCreditIncoming, amount, "Funds received from Credit | Debit Account")
	credit.RecordTransaction(account.TxCreditTaken, amount.Negate(), "New Credit taken | Credit Account")
	return nil
}

// RepayCredit pays back outstanding credit debt from a same-currency debit
// account of the same customer.
//
// Invariants enforced:
//   - The credit account must be in debt.
//   - The amount must not exceed the outstanding debt.
//   - The debit account must cover the amount.
func (o *Operations) RepayCredit(credit, debit *account.Account, amount money.Money) error {
	if err := validateCreditPair(credit, debit); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: repayment must be positive", domain.ErrInvalidAmount)
	}
	if !credit.Balance().IsNegative() {
		return ErrNoDebt
	}
	debt := credit.Balance().Abs()
	exceeds, err := amount.GreaterThan(debt)
	if err != nil {
		return err
	}
	if exceeds {
		return fmt.Errorf("%w: owed %s", ErrRepayExceedsDebt, debt)
	}

	if err := debit.Withdraw(amount); err != nil {
		return err
	}
	if err := credit.Deposit(amount); err != nil {
		return err
	}

	debit.RecordTransaction(account.TxCreditRepay, amount.Negate(), "Credit Repayment | Debit Account")
	credit.RecordTransaction(account.TxDeposit, amount, "Money deposited | Credit Account")
	return nil
}

// FundSavings moves funds from a debit account into a same-currency
// savings account of the same customer.
func (o *Operations) FundSavings(debit, savings *account.Account, amount money.Money) error {
	if err := validateSavingsPair(debit, savings); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount)
	}

	if err := debit.Withdraw(amount); err != nil {
		return err
	}
	if err := savings.Deposit(amount); err != nil {
		return err
	}

	debit.RecordTransaction(account.TxWithdraw, amount.Negate(), "Money transferred to Savings Account | Debit Account")
	savings.RecordTransaction(account.TxDeposit, amount, "Money deposited from Debit Account | Savings Account")
	return nil
}

// RedeemSavings moves funds from a savings account back into a
// same-currency debit account of the same customer.
func (o *Operations) RedeemSavings(savings, debit *account.Account, amount money.Money) error {
	if err := validateSavingsPair(debit, savings); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount)
	}

	if err := savings.Withdraw(amount); err != nil {
		return err
	}
	if err := debit.Deposit(amount); err != nil {
		return err
	}

	debit.RecordTransaction(account.TxDeposit, amount, "Deposit from Savings account | Debit Account")
	savings.RecordTransaction(account.TxWithdraw, amount.Negate(), "Withdrawn from Savings to Debit | Savings Account")
	return nil
}

// ApplyMonthlyProcessing applies one month of interest to every account and
// records an INTEREST_APPLIED transaction on each account whose balance
// moved. Accounts are independent; the whole batch always completes.
// Returns the number of accounts affected.
func (o *Operations) ApplyMonthlyProcessing(accounts []*account.Account) int {
	affected := 0
	for _, acc := range accounts {
		delta := acc.ApplyMonthlyUpdate()
		if delta.IsZero() {
			continue
		}
		description := "Monthly savings interest applied."
		if acc.Kind() == account.Credit {
			description = "Monthly credit interest applied."
		}
		acc.RecordTransaction(account.TxInterestApplied, delta, description)
		affected++
	}
	return affected
}

func validateCreditPair(credit, debit *account.Account) error {
	if credit == nil || debit == nil {
		return domain.ErrMissingAccount
	}
	if credit.Kind() != account.Credit {
		return fmt.Errorf("%w: %s is not a credit account", ErrSourceType, credit.ID())
	}
	return validatePair(credit, debit)
}

func validateSavingsPair(debit, savings *account.Account) error {
	if debit == nil || savings == nil {
		return domain.ErrMissingAccount
	}
	if savings.Kind() != account.Savings {
		return fmt.Errorf("%w: %s is not a savings account", ErrSourceType, savings.ID())
	}
	return validatePair(savings, debit)
}

func validatePair(acc, debit *account.Account) error {
	if debit.Kind() != account.Debit {
		return fmt.Errorf("%w: %s is not a debit account", ErrSourceType, debit.ID())
	}
	if acc.CustomerID() != debit.CustomerID() {
		return fmt.Errorf("%w: %s and %s", ErrCrossOwnership, acc.ID(), debit.ID())
	}
	if acc.Currency() != debit.Currency() {
		return fmt.Errorf("%w: %s holds %s, %s holds %s",
			money.ErrCurrencyMismatch, acc.ID(), acc.Currency(), debit.ID(), debit.Currency())
	}
	return nil
}
