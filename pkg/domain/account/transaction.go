package account

import (
	"time"

	"github.com/amirasaad/banking/pkg/money"
	"github.com/google/uuid"
)

// TxKind tags a transaction record with the operation that produced it.
type TxKind string

// Transaction kinds. The tags are stable: they appear in statements and in
// the transaction file.
const (
	TxDeposit          TxKind = "DEPOSIT"
	TxWithdraw         TxKind = "WITHDRAW"
	TxTransferSent     TxKind = "TRANSFER_SENT"
	TxTransferReceived TxKind = "TRANSFER_RECEIVED"
	TxCreditTaken      TxKind = "CREDIT_TAKEN"
	TxCreditIncoming   TxKind = "CREDIT_INCOMING"
	TxCreditRepay      TxKind = "CREDIT_REPAY"
	TxInterestApplied  TxKind = "INTEREST_APPLIED"
)

// Transaction is an immutable record of a balance-affecting operation.
// Amount carries the signed delta as seen by the owning account: outgoing
// money is negative, incoming money positive.
type Transaction struct {
	ID          uuid.UUID
	CustomerID  string
	AccountID   string
	Time        time.Time
	Kind        TxKind
	Amount      money.Money
	Description string
}

// RecordTransaction appends a history record stamped with the current time
// and a fresh ID, and returns it.
func (a *Account) RecordTransaction(kind TxKind, amount money.Money, description string) *Transaction {
	tx := &Transaction{
		ID:          uuid.New(),
		CustomerID:  a.customerID,
		AccountID:   a.id,
		Time:        time.Now(),
		Kind:        kind,
		Amount:      amount,
		Description: description,
	}
	a.transactions = append(a.transactions, tx)
	return tx
}

// RestoreTransaction re-attaches a stored history record during hydration,
// keeping its original ID and timestamp.
func (a *Account) RestoreTransaction(tx *Transaction) {
	a.transactions = append(a.transactions, tx)
}

// Transactions returns a copy of the account's history in insertion order.
// Mutating the returned slice does not affect the account.
func (a *Account) Transactions() []Transaction {
	out := make([]Transaction, len(a.transactions))
	for i, tx := range a.transactions {
		out[i] = *tx
	}
	return out
}
