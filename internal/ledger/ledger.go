package ledger

import (
	"context"
	"errors"
	"time"
)

// ErrTransactionNotFound indicates no record carries the requested transaction id.
var ErrTransactionNotFound = errors.New("transaction not found")

// Type distinguishes a debit from its reversal.
type Type string

const (
	TypeUse    Type = "USE"
	TypeCancel Type = "CANCEL"
)

// Result is the terminal outcome of one attempt.
type Result string

const (
	ResultSuccess Result = "SUCCESS"
	ResultFailure Result = "FAILURE"
)

// Transaction is one immutable ledger record. BalanceSnapshot is the account
// balance right after the record took effect, or the untouched balance for a
// FAILURE record.
type Transaction struct {
	ID              int64
	TransactionID   string
	AccountID       int64
	AccountNumber   string
	Type            Type
	Result          Result
	Amount          int64
	BalanceSnapshot int64
	TransactedAt    time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Store is the append-only transaction ledger. Save only inserts.
type Store interface {
	Save(ctx context.Context, txn Transaction) (Transaction, error)
	FindByTransactionID(ctx context.Context, transactionID string) (Transaction, error)
}
