package bank

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirasaad/banking/pkg/domain"
	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/domain/user"
	"github.com/amirasaad/banking/pkg/exchange"
	"github.com/amirasaad/banking/pkg/money"
)

// Deposit adds funds to an account and persists the change.
func (s *Service) Deposit(ctx context.Context, accountID string, amount money.Money, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.account(accountID)
	if err != nil {
		return err
	}
	if err := s.ledger.Deposit(acc, amount, description); err != nil {
		return err
	}
	s.logger.Info("deposit", "account", accountID, "amount", amount.String())
	return s.persistAccounts(ctx)
}

// Withdraw removes funds from an account and persists the change.
func (s *Service) Withdraw(ctx context.Context, accountID string, amount money.Money, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.account(accountID)
	if err != nil {
		return err
	}
	if err := s.ledger.Withdraw(acc, amount, description); err != nil {
		return err
	}
	s.logger.Info("withdrawal", "account", accountID, "amount", amount.String())
	return s.persistAccounts(ctx)
}

// TransferInternal moves funds between two accounts of the same customer,
// converting currency when they differ.
func (s *Service) TransferInternal(ctx context.Context, fromID, toID string, amount money.Money, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, err := s.account(fromID)
	if err != nil {
		return err
	}
	to, err := s.account(toID)
	if err != nil {
		return err
	}
	if err := s.ledger.TransferInternal(from, to, amount, description); err != nil {
		return err
	}
	s.logger.Info("internal transfer",
		"from", fromID, "to", toID, "amount", amount.String())
	return s.persistAccounts(ctx)
}

// TransferExternal moves funds from one of the customer's debit accounts to
// the account addressed by the given IBAN, converting currency when needed.
func (s *Service) TransferExternal(ctx context.Context, fromID string, toIban account.Iban, amount money.Money, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, err := s.account(fromID)
	if err != nil {
		return err
	}
	to, ok := s.ibanIndex[toIban]
	if !ok {
		return fmt.Errorf("%w: IBAN %s", domain.ErrMissingAccount, toIban)
	}
	if err := s.ledger.TransferExternal(from, to, amount, description); err != nil {
		return err
	}
	s.logger.Info("external transfer",
		"from", fromID, "to", to.ID(), "amount", amount.String())
	return s.persistAccounts(ctx)
}

// DrawCredit draws funds from a credit account into a same-currency debit
// account of the same customer.
func (s *Service) DrawCredit(ctx context.Context, creditID, debitID string, amount money.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	credit, err := s.account(creditID)
	if err != nil {
		return err
	}
	debit, err := s.account(debitID)
	if err != nil {
		return err
	}
	if err := s.ledger.DrawCredit(credit, debit, amount); err != nil {
		return err
	}
	s.logger.Info("credit drawn", "credit", creditID, "debit", debitID, "amount", amount.String())
	return s.persistAccounts(ctx)
}

// RepayCredit pays back credit debt from a debit account.
func (s *Service) RepayCredit(ctx context.Context, creditID, debitID string, amount money.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	credit, err := s.account(creditID)
	if err != nil {
		return err
	}
	debit, err := s.account(debitID)
	if err != nil {
		return err
	}
	if err := s.ledger.RepayCredit(credit, debit, amount); err != nil {
		return err
	}
	s.logger.Info("credit repaid", "credit", creditID, "debit", debitID, "amount", amount.String())
	return s.persistAccounts(ctx)
}

// FundSavings moves funds from a debit account into a savings account.
func (s *Service) FundSavings(ctx context.Context, debitID, savingsID string, amount money.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	debit, err := s.account(debitID)
	if err != nil {
		return err
	}
	savings, err := s.account(savingsID)
	if err != nil {
		return err
	}
	if err := s.ledger.FundSavings(debit, savings, amount); err != nil {
		return err
	}
	s.logger.Info("savings funded", "debit", debitID, "savings", savingsID, "amount", amount.String())
	return s.persistAccounts(ctx)
}

// RedeemSavings moves funds from a savings account back into a debit
// account.
func (s *Service) RedeemSavings(ctx context.Context, savingsID, debitID string, amount money.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	savings, err := s.account(savingsID)
	if err != nil {
		return err
	}
	debit, err := s.account(debitID)
	if err != nil {
		return err
	}
	if err := s.ledger.RedeemSavings(savings, debit, amount); err != nil {
		return err
	}
	s.logger.Info("savings redeemed", "savings", savingsID, "debit", debitID, "amount", amount.String())
	return s.persistAccounts(ctx)
}

// RunMonthlyProcessing applies one month of interest across every account
// and persists the result. Returns the number of accounts affected.
func (s *Service) RunMonthlyProcessing(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	affected := s.ledger.ApplyMonthlyProcessing(s.accounts)
	s.logger.Info("monthly processing complete", "accounts", len(s.accounts), "affected", affected)
	if affected == 0 {
		return 0, nil
	}
	return affected, s.persistAccounts(ctx)
}

// Authenticate checks a username and password. It fails the same way
// whether the user is unknown or the password is wrong.
func (s *Service) Authenticate(username, password string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.userIndex[strings.TrimSpace(username)]
	if !ok {
		return nil, user.ErrInvalidCredentials
	}
	if !u.CheckPassword(password) {
		return nil, user.ErrInvalidCredentials
	}
	return u, nil
}

// Converter exposes the rate table for display.
func (s *Service) Converter() exchange.Converter {
	return s.converter
}
