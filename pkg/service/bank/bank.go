// Package bank is the orchestrating service: it owns the in-memory state
// (customers, accounts, users and their indexes), issues identifiers, runs
// ledger operations and persists through the repository store after every
// mutation.
//
// Entities reference each other by identifier only; the service resolves
// them through its indexes. All methods are safe for concurrent use by the
// CLI and the accrual scheduler.
package bank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/banking/pkg/currency"
	"github.com/amirasaad/banking/pkg/domain"
	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/domain/customer"
	"github.com/amirasaad/banking/pkg/domain/user"
	"github.com/amirasaad/banking/pkg/exchange"
	"github.com/amirasaad/banking/pkg/ledger"
	"github.com/amirasaad/banking/pkg/money"
	"github.com/amirasaad/banking/pkg/repository"
	"github.com/amirasaad/banking/pkg/sequence"
)

// ErrUsernameTaken is returned when registering a username that already
// exists.
var ErrUsernameTaken = errors.New("username already taken")

// New accounts open with the original product terms: savings earn 2% a
// month, credit charges 5% a month on outstanding debt.
const (
	defaultSavingsRate = 2.0
	defaultCreditRate  = 5.0
)

// Service coordinates customers, accounts, users, the ledger and the store.
type Service struct {
	mu sync.Mutex

	store     repository.Store
	ledger    *ledger.Operations
	converter exchange.Converter
	logger    *slog.Logger

	customerIDs *sequence.Generator
	accountIDs  *sequence.Generator

	customers []*customer.Customer
	accounts  []*account.Account
	users     []*user.User

	customerIndex map[string]*customer.Customer
	accountIndex  map[string]*account.Account
	ibanIndex     map[account.Iban]*account.Account
	userIndex     map[string]*user.User
}

// New creates an empty service. Call Load to restore persisted state.
func New(store repository.Store, converter exchange.Converter, logger *slog.Logger) *Service {
	return &Service{
		store:         store,
		ledger:        ledger.New(converter),
		converter:     converter,
		logger:        logger.With("component", "bank"),
		customerIDs:   sequence.New("C"),
		accountIDs:    sequence.New("A"),
		customerIndex: make(map[string]*customer.Customer),
		accountIndex:  make(map[string]*account.Account),
		ibanIndex:     make(map[account.Iban]*account.Account),
		userIndex:     make(map[string]*user.User),
	}
}

// Load restores all state from the store and reseeds the id generators so
// new identifiers continue after the highest persisted ones.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.store.LoadCustomers(ctx)
	if err != nil {
		return fmt.Errorf("load customers: %w", err)
	}
	owners := make(map[string]*customer.Customer, len(customers))
	for _, c := range customers {
		owners[c.ID] = c
	}

	accounts, err := s.store.LoadAccounts(ctx, owners)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	if err := s.store.LoadTransactions(ctx, accounts); err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	s.customers = customers
	s.accounts = accounts
	s.users = users
	s.customerIndex = owners
	s.accountIndex = make(map[string]*account.Account, len(accounts))
	s.ibanIndex = make(map[account.Iban]*account.Account, len(accounts))
	for _, a := range accounts {
		s.accountIndex[a.ID()] = a
		s.ibanIndex[a.Iban()] = a
	}
	s.userIndex = make(map[string]*user.User, len(users))
	for _, u := range users {
		s.userIndex[u.Username] = u
	}

	customerIDs := make([]string, 0, len(customers))
	for _, c := range customers {
		customerIDs = append(customerIDs, c.ID)
	}
	accountIDs := make([]string, 0, len(accounts))
	for _, a := range accounts {
		accountIDs = append(accountIDs, a.ID())
	}
	s.customerIDs.Reseed(customerIDs)
	s.accountIDs.Reseed(accountIDs)

	s.logger.Info("state loaded",
		"customers", len(customers),
		"accounts", len(accounts),
		"users", len(users),
	)
	return nil
}

// RegisterCustomer validates and stores a new customer, opens their first
// debit account with a zero balance in the given currency and creates
// their login. Nothing is committed unless every step validates.
func (s *Service) RegisterCustomer(ctx context.Context, profile customer.Profile, username, password string, code currency.Code) (*customer.Customer, *account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username = strings.TrimSpace(username)
	if _, taken := s.userIndex[username]; taken {
		return nil, nil, fmt.Errorf("%w: %s", ErrUsernameTaken, username)
	}

	// Build everything against peeked ids first; the generators only
	// advance once all validation has passed.
	customerID := s.customerIDs.Peek()
	c, err := customer.New(customerID, profile)
	if err != nil {
		return nil, nil, err
	}
	u, err := user.New(username, password, customerID)
	if err != nil {
		return nil, nil, err
	}
	acc, err := account.New().
		WithID(s.accountIDs.Peek()).
		WithCustomerID(customerID).
		WithHolder(c.FullName()).
		WithCountry(c.Country).
		WithKind(account.Debit).
		WithBalance(money.Zero(code)).
		WithCreatedAt(time.Now()).
		Build()
	if err != nil {
		return nil, nil, err
	}
	s.customerIDs.Next()
	s.accountIDs.Next()

	s.customers = append(s.customers, c)
	s.customerIndex[c.ID] = c
	s.addAccount(acc)
	s.users = append(s.users, u)
	s.userIndex[u.Username] = u

	if err := s.persistEverything(ctx); err != nil {
		return nil, nil, err
	}
	s.logger.Info("customer registered", "customer", c.ID, "account", acc.ID(), "username", u.Username)
	return c, acc, nil
}

// OpenAccount opens an additional account for an existing customer. Savings
// and credit accounts open with the standard product terms; credit accounts
// get the standard limit.
func (s *Service) OpenAccount(ctx context.Context, customerID string, kind account.Kind, code currency.Code) (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.customerIndex[customerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingCustomer, customerID)
	}

	b := account.New().
		WithID(s.accountIDs.Peek()).
		WithCustomerID(owner.ID).
		WithHolder(owner.FullName()).
		WithCountry(owner.Country).
		WithKind(kind).
		WithBalance(money.Zero(code)).
		WithCreatedAt(time.Now())
	switch kind {
	case account.Savings:
		b = b.WithInterestRate(defaultSavingsRate)
	case account.Credit:
		b = b.WithInterestRate(defaultCreditRate)
	}
	acc, err := b.Build()
	if err != nil {
		return nil, err
	}
	s.accountIDs.Next()

	s.addAccount(acc)
	if err := s.store.SaveAccounts(ctx, s.accounts); err != nil {
		return nil, fmt.Errorf("save accounts: %w", err)
	}
	s.logger.Info("account opened", "account", acc.ID(), "kind", kind.String(), "currency", code)
	return acc, nil
}

func (s *Service) addAccount(acc *account.Account) {
	s.accounts = append(s.accounts, acc)
	s.accountIndex[acc.ID()] = acc
	s.ibanIndex[acc.Iban()] = acc
}

// account resolves an account id under the service lock.
func (s *Service) account(id string) (*account.Account, error) {
	acc, ok := s.accountIndex[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingAccount, id)
	}
	return acc, nil
}

// persistAccounts writes accounts and the merged transaction history.
func (s *Service) persistAccounts(ctx context.Context) error {
	if err := s.store.SaveAccounts(ctx, s.accounts); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	if err := s.store.SaveTransactions(ctx, s.accounts); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	return nil
}

func (s *Service) persistEverything(ctx context.Context) error {
	if err := s.store.SaveCustomers(ctx, s.customers); err != nil {
		return fmt.Errorf("save customers: %w", err)
	}
	if err := s.persistAccounts(ctx); err != nil {
		return err
	}
	if err := s.store.SaveUsers(ctx, s.users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// CustomerByID returns the customer with the given id.
func (s *Service) CustomerByID(id string) (*customer.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customerIndex[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingCustomer, id)
	}
	return c, nil
}

// AccountByID returns the account with the given id.
func (s *Service) AccountByID(id string) (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account(id)
}

// AccountByIban returns the account addressed by the given IBAN.
func (s *Service) AccountByIban(iban account.Iban) (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.ibanIndex[iban]
	if !ok {
		return nil, fmt.Errorf("%w: IBAN %s", domain.ErrMissingAccount, iban)
	}
	return acc, nil
}

// AccountsOf returns the customer's accounts in creation order.
func (s *Service) AccountsOf(customerID string) []*account.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*account.Account
	for _, a := range s.accounts {
		if a.CustomerID() == customerID {
			out = append(out, a)
		}
	}
	return out
}

// Statement returns the account's transaction history in insertion order.
func (s *Service) Statement(accountID string) ([]account.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, err := s.account(accountID)
	if err != nil {
		return nil, err
	}
	return acc.Transactions(), nil
}

// Customers returns a snapshot of the roster in registration order.
func (s *Service) Customers() []*customer.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*customer.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// Accounts returns a snapshot of all accounts in creation order.
func (s *Service) Accounts() []*account.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*account.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}
