package textstore

import (
	"context"
	"strconv"
	"time"

	"github.com/amirasaad/banking/pkg/currency"
	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/domain/customer"
	"github.com/amirasaad/banking/pkg/money"
)

const (
	accountsHeader = "type|accountId|customerId|iban|balance|currency|creationDate|interestRate|creditLimit"
	accountFields  = 9

	dateLayout = "2006-01-02"
)

// LoadAccounts reads accounts.txt and rebuilds each account, linking it to
// its owner for the holder name and country. Accounts whose owner is not in
// the map are dropped, as are records the account invariants reject.
func (s *Store) LoadAccounts(ctx context.Context, owners map[string]*customer.Customer) ([]*account.Account, error) {
	records, err := s.readRecords(accountsFile, accountFields)
	if err != nil {
		return nil, err
	}

	var accounts []*account.Account
	for _, rec := range records {
		if len(rec[0]) != 1 {
			s.logger.Warn("skipping account, bad type tag", "tag", rec[0])
			continue
		}
		kind, err := account.ParseKind(rec[0][0])
		if err != nil {
			s.logger.Warn("skipping account, unknown type", "account", rec[1], "error", err)
			continue
		}
		owner, ok := owners[rec[2]]
		if !ok {
			s.logger.Warn("skipping account, missing customer", "account", rec[1], "customer", rec[2])
			continue
		}

		code := currency.Normalize(rec[5])
		balance, err := parseMoney(rec[4], code)
		if err != nil {
			s.logger.Warn("skipping account, bad balance", "account", rec[1], "error", err)
			continue
		}
		createdAt, err := time.Parse(dateLayout, rec[6])
		if err != nil {
			s.logger.Warn("skipping account, bad creation date", "account", rec[1], "error", err)
			continue
		}

		b := account.New().
			WithID(rec[1]).
			WithCustomerID(rec[2]).
			WithHolder(owner.FullName()).
			WithCountry(owner.Country).
			WithKind(kind).
			WithIban(account.Iban(rec[3])).
			WithBalance(balance).
			WithCreatedAt(createdAt)

		if rec[7] != placeholder {
			rate, err := strconv.ParseFloat(rec[7], 64)
			if err != nil {
				s.logger.Warn("skipping account, bad interest rate", "account", rec[1], "error", err)
				continue
			}
			b = b.WithInterestRate(rate)
		}
		if kind == account.Credit && rec[8] != placeholder {
			limit, err := parseMoney(rec[8], code)
			if err != nil {
				s.logger.Warn("skipping account, bad credit limit", "account", rec[1], "error", err)
				continue
			}
			b = b.WithCreditLimit(limit)
		}

		acc, err := b.Build()
		if err != nil {
			s.logger.Warn("skipping account record", "account", rec[1], "error", err)
			continue
		}
		accounts = append(accounts, acc)
	}
	s.logger.Info("accounts loaded", "count", len(accounts))
	return accounts, nil
}

// SaveAccounts overwrites accounts.txt. Fields that do not apply to a kind
// are stored as "-".
func (s *Store) SaveAccounts(ctx context.Context, accounts []*account.Account) error {
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		interest, limit := placeholder, placeholder
		switch a.Kind() {
		case account.Savings:
			interest = formatRate(a.InterestRate())
		case account.Credit:
			interest = formatRate(a.InterestRate())
			limit = a.CreditLimit().Format()
		}
		rows = append(rows, []string{
			string(rune(a.Kind())),
			a.ID(),
			a.CustomerID(),
			a.Iban().String(),
			a.Balance().Format(),
			string(a.Currency()),
			a.CreatedAt().Format(dateLayout),
			interest,
			limit,
		})
	}
	return s.writeRecords(accountsFile, accountsHeader, rows, 0o644)
}

func parseMoney(field string, code currency.Code) (money.Money, error) {
	f, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return money.Money{}, err
	}
	return money.New(f, code)
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}
