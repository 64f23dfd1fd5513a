package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/congo-pay/accounts/internal/account"
	"github.com/congo-pay/accounts/internal/apperr"
	"github.com/congo-pay/accounts/internal/identity"
	"github.com/congo-pay/accounts/internal/ledger"
	"github.com/congo-pay/accounts/internal/logging"
)

const defaultCancelWindowMonths = 12

// Options tunes an Engine. Zero values select the defaults.
type Options struct {
	// CancelWindowMonths is how old a use transaction may be and still be cancelled.
	CancelWindowMonths int
	Now                func() time.Time
	NewID              func() string
	Logger             *slog.Logger
}

// Engine validates and applies use/cancel operations. It assumes the caller
// holds the account's lock for the duration of UseBalance and CancelBalance.
type Engine struct {
	users        identity.Repository
	accounts     account.Repository
	transactions ledger.Store
	cancelMonths int
	now          func() time.Time
	newID        func() string
	logger       *slog.Logger
}

// NewEngine wires the engine to its stores.
func NewEngine(users identity.Repository, accounts account.Repository, transactions ledger.Store, opts Options) *Engine {
	e := &Engine{
		users:        users,
		accounts:     accounts,
		transactions: transactions,
		cancelMonths: opts.CancelWindowMonths,
		now:          opts.Now,
		newID:        opts.NewID,
		logger:       logging.With(opts.Logger, "transaction_engine"),
	}
	if e.cancelMonths <= 0 {
		e.cancelMonths = defaultCancelWindowMonths
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = newTransactionID
	}
	return e
}

// UseBalance debits amount from the account after checking ownership, status
// and balance, in that order. A request that exceeds the balance leaves a
// FAILURE record behind.
func (e *Engine) UseBalance(ctx context.Context, userID int64, accountNumber string, amount int64) (ledger.Transaction, error) {
	user, err := e.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return ledger.Transaction{}, apperr.Newf(apperr.UserNotFound, "user %d not found", userID)
		}
		return ledger.Transaction{}, fmt.Errorf("find user: %w", err)
	}

	acct, err := e.findAccount(ctx, accountNumber)
	if err != nil {
		return ledger.Transaction{}, err
	}

	switch {
	case acct.UserID != user.ID:
		return ledger.Transaction{}, apperr.New(apperr.OwnerMismatch)
	case acct.Status != account.StatusActive:
		return ledger.Transaction{}, apperr.New(apperr.AccountAlreadyClosed)
	case amount > acct.Balance:
		e.recordFailedUse(ctx, acct, amount)
		return ledger.Transaction{}, apperr.Newf(apperr.AmountExceedsBalance,
			"amount %d exceeds balance %d of account %s", amount, acct.Balance, acct.Number)
	}

	acct.Balance -= amount
	acct, err = e.accounts.Save(ctx, acct)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("save account: %w", err)
	}

	return e.record(ctx, acct, ledger.TypeUse, ledger.ResultSuccess, amount)
}

// CancelBalance reverses a prior use transaction in full, crediting amount back.
func (e *Engine) CancelBalance(ctx context.Context, transactionID, accountNumber string, amount int64) (ledger.Transaction, error) {
	original, err := e.findTransaction(ctx, transactionID)
	if err != nil {
		return ledger.Transaction{}, err
	}

	acct, err := e.findAccount(ctx, accountNumber)
	if err != nil {
		return ledger.Transaction{}, err
	}

	cutoff := e.now().AddDate(0, -e.cancelMonths, 0)
	switch {
	case original.AccountID != acct.ID:
		return ledger.Transaction{}, apperr.New(apperr.TransactionAccountMismatch)
	case amount != original.Amount:
		return ledger.Transaction{}, apperr.Newf(apperr.CancelMustBeFull,
			"cancel amount %d must equal transaction amount %d", amount, original.Amount)
	case original.TransactedAt.Before(cutoff):
		return ledger.Transaction{}, apperr.Newf(apperr.TooOldToCancel,
			"transaction %s is older than %d months", transactionID, e.cancelMonths)
	}

	acct.Balance += amount
	acct, err = e.accounts.Save(ctx, acct)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("save account: %w", err)
	}

	return e.record(ctx, acct, ledger.TypeCancel, ledger.ResultSuccess, amount)
}

// QueryTransaction reads a record without locking.
func (e *Engine) QueryTransaction(ctx context.Context, transactionID string) (ledger.Transaction, error) {
	return e.findTransaction(ctx, transactionID)
}

func (e *Engine) findAccount(ctx context.Context, number string) (account.Account, error) {
	acct, err := e.accounts.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return account.Account{}, apperr.Newf(apperr.AccountNotFound, "account %s not found", number)
		}
		return account.Account{}, fmt.Errorf("find account: %w", err)
	}
	return acct, nil
}

func (e *Engine) findTransaction(ctx context.Context, transactionID string) (ledger.Transaction, error) {
	txn, err := e.transactions.FindByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, ledger.ErrTransactionNotFound) {
			return ledger.Transaction{}, apperr.Newf(apperr.TransactionNotFound, "transaction %s not found", transactionID)
		}
		return ledger.Transaction{}, fmt.Errorf("find transaction: %w", err)
	}
	return txn, nil
}

// record appends a ledger entry snapshotting acct's current balance.
func (e *Engine) record(ctx context.Context, acct account.Account, kind ledger.Type, result ledger.Result, amount int64) (ledger.Transaction, error) {
	txn, err := e.transactions.Save(ctx, ledger.Transaction{
		TransactionID:   e.newID(),
		AccountID:       acct.ID,
		AccountNumber:   acct.Number,
		Type:            kind,
		Result:          result,
		Amount:          amount,
		BalanceSnapshot: acct.Balance,
		TransactedAt:    e.now().UTC(),
	})
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	return txn, nil
}

// recordFailedUse is best effort: the caller reports the validation error
// whether or not the audit write succeeds.
func (e *Engine) recordFailedUse(ctx context.Context, acct account.Account, amount int64) {
	if _, err := e.record(ctx, acct, ledger.TypeUse, ledger.ResultFailure, amount); err != nil {
		e.logger.WarnContext(ctx, "failed use audit write",
			slog.String("account_number", acct.Number),
			slog.Int64("amount", amount),
			slog.Any("error", err),
		)
	}
}

func newTransactionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
