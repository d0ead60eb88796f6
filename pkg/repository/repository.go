// Package repository defines the persistence ports the bank loads and saves
// its state through. Implementations own the storage format; callers only
// see domain objects.
package repository

import (
	"context"

	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/domain/customer"
	"github.com/amirasaad/banking/pkg/domain/user"
)

// CustomerStore persists the customer roster.
type CustomerStore interface {
	// LoadCustomers returns every stored customer. A missing backing file
	// yields an empty slice, not an error.
	LoadCustomers(ctx context.Context) ([]*customer.Customer, error)

	// SaveCustomers replaces the stored roster with the given one.
	SaveCustomers(ctx context.Context, customers []*customer.Customer) error
}

// AccountStore persists accounts. Loading needs the customer roster to link
// ownership; accounts referencing unknown customers are dropped.
type AccountStore interface {
	// LoadAccounts returns every stored account owned by a known customer.
	LoadAccounts(ctx context.Context, owners map[string]*customer.Customer) ([]*account.Account, error)

	// SaveAccounts replaces the stored accounts with the given ones.
	SaveAccounts(ctx context.Context, accounts []*account.Account) error
}

// TransactionStore persists transaction history across all accounts.
type TransactionStore interface {
	// LoadTransactions attaches stored history records to their accounts.
	// Records referencing unknown accounts are dropped.
	LoadTransactions(ctx context.Context, accounts []*account.Account) error

	// SaveTransactions writes the merged history of all accounts, ordered
	// chronologically.
	SaveTransactions(ctx context.Context, accounts []*account.Account) error
}

// UserStore persists login credentials.
type UserStore interface {
	// LoadUsers returns every stored user.
	LoadUsers(ctx context.Context) ([]*user.User, error)

	// SaveUsers replaces the stored users with the given ones.
	SaveUsers(ctx context.Context, users []*user.User) error
}

// Store is the full persistence surface the bank service depends on.
type Store interface {
	CustomerStore
	AccountStore
	TransactionStore
	UserStore
}
