package textstore

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/money"
	"github.com/google/uuid"
)

const (
	transactionsHeader = "customerId|accountId|timestamp|kind|amount|description"
	transactionFields  = 6

	// timeLayout is zoneless; timestamps are stored in UTC. Fractional
	// seconds are optional so hand-edited files still parse.
	timeLayout = "2006-01-02T15:04:05.999999999"
)

// LoadTransactions reads transactions.txt and attaches each record to its
// account. Records referencing unknown accounts are dropped. Stored records
// carry no ID, so each gets a fresh one.
func (s *Store) LoadTransactions(ctx context.Context, accounts []*account.Account) error {
	records, err := s.readRecords(transactionsFile, transactionFields)
	if err != nil {
		return err
	}

	index := make(map[string]*account.Account, len(accounts))
	for _, a := range accounts {
		index[a.ID()] = a
	}

	loaded := 0
	for _, rec := range records {
		acc, ok := index[rec[1]]
		if !ok {
			s.logger.Warn("skipping transaction, unknown account", "account", rec[1])
			continue
		}
		ts, err := time.Parse(timeLayout, rec[2])
		if err != nil {
			s.logger.Warn("skipping transaction, bad timestamp", "account", rec[1], "error", err)
			continue
		}
		f, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			s.logger.Warn("skipping transaction, bad amount", "account", rec[1], "error", err)
			continue
		}
		amount, err := money.New(f, acc.Currency())
		if err != nil {
			s.logger.Warn("skipping transaction, bad amount", "account", rec[1], "error", err)
			continue
		}
		acc.RestoreTransaction(&account.Transaction{
			ID:          uuid.New(),
			CustomerID:  rec[0],
			AccountID:   rec[1],
			Time:        ts,
			Kind:        account.TxKind(rec[3]),
			Amount:      amount,
			Description: rec[5],
		})
		loaded++
	}
	s.logger.Info("transactions loaded", "count", loaded)
	return nil
}

// SaveTransactions overwrites transactions.txt with the merged history of
// all accounts in chronological order. Pipes inside descriptions become
// slashes so the record stays parseable.
func (s *Store) SaveTransactions(ctx context.Context, accounts []*account.Account) error {
	var all []account.Transaction
	for _, a := range accounts {
		all = append(all, a.Transactions()...)
	}
	slices.SortStableFunc(all, func(a, b account.Transaction) int {
		return a.Time.Compare(b.Time)
	})

	rows := make([][]string, 0, len(all))
	for _, tx := range all {
		rows = append(rows, []string{
			tx.CustomerID,
			tx.AccountID,
			tx.Time.UTC().Format(timeLayout),
			string(tx.Kind),
			tx.Amount.Format(),
			strings.ReplaceAll(tx.Description, "|", "/"),
		})
	}
	return s.writeRecords(transactionsFile, transactionsHeader, rows, 0o644)
}
