package transaction

import (
	"time"

	"github.com/congo-pay/accounts/internal/ledger"
)

const (
	minAmount           = 10
	maxAmount           = 1_000_000_000
	accountNumberLength = 10
)

// UseBalanceRequest asks to debit Amount from AccountNumber on behalf of UserID.
type UseBalanceRequest struct {
	UserID        int64  `json:"user_id"`
	AccountNumber string `json:"account_number"`
	Amount        int64  `json:"amount"`
}

// CancelBalanceRequest asks to reverse TransactionID in full.
type CancelBalanceRequest struct {
	TransactionID string `json:"transaction_id"`
	AccountNumber string `json:"account_number"`
	Amount        int64  `json:"amount"`
}

// QueryTransactionRequest looks up a record by its public id.
type QueryTransactionRequest struct {
	TransactionID string `json:"transaction_id"`
}

// Result is the outward view of a ledger record.
type Result struct {
	AccountNumber     string        `json:"account_number"`
	TransactionType   ledger.Type   `json:"transaction_type"`
	TransactionResult ledger.Result `json:"transaction_result"`
	Amount            int64         `json:"amount"`
	BalanceSnapshot   int64         `json:"balance_snapshot"`
	TransactionID     string        `json:"transaction_id"`
	TransactedAt      time.Time     `json:"transacted_at"`
}

// ResultFrom converts a stored record into its response shape.
func ResultFrom(t ledger.Transaction) Result {
	return Result{
		AccountNumber:     t.AccountNumber,
		TransactionType:   t.Type,
		TransactionResult: t.Result,
		Amount:            t.Amount,
		BalanceSnapshot:   t.BalanceSnapshot,
		TransactionID:     t.TransactionID,
		TransactedAt:      t.TransactedAt,
	}
}
