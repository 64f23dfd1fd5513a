package transaction

import (
	"context"
	"log/slog"

	"github.com/congo-pay/accounts/internal/ledger"
	"github.com/congo-pay/accounts/internal/lock"
	"github.com/congo-pay/accounts/internal/logging"
	"github.com/congo-pay/accounts/internal/notification"
)

// Service serialises balance mutations per account number and notifies
// downstream systems once the lock has been released.
type Service struct {
	engine   *Engine
	locker   lock.Locker
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService constructs a transaction service. notifier may be nil.
func NewService(engine *Engine, locker lock.Locker, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{
		engine:   engine,
		locker:   locker,
		notifier: notifier,
		logger:   logging.With(logger, "transaction_service"),
	}
}

// UseBalance debits the account while holding its lock.
func (s *Service) UseBalance(ctx context.Context, req UseBalanceRequest) (Result, error) {
	txn, err := lock.Do(ctx, s.locker, req.AccountNumber, func(ctx context.Context) (ledger.Transaction, error) {
		return s.engine.UseBalance(ctx, req.UserID, req.AccountNumber, req.Amount)
	})
	if err != nil {
		return Result{}, err
	}
	s.notify(ctx, notification.KindBalanceUsed, txn)
	return ResultFrom(txn), nil
}

// CancelBalance reverses a use transaction while holding the account's lock.
func (s *Service) CancelBalance(ctx context.Context, req CancelBalanceRequest) (Result, error) {
	txn, err := lock.Do(ctx, s.locker, req.AccountNumber, func(ctx context.Context) (ledger.Transaction, error) {
		return s.engine.CancelBalance(ctx, req.TransactionID, req.AccountNumber, req.Amount)
	})
	if err != nil {
		return Result{}, err
	}
	s.notify(ctx, notification.KindBalanceCancelled, txn)
	return ResultFrom(txn), nil
}

// QueryTransaction reads a record. Reads are not locked.
func (s *Service) QueryTransaction(ctx context.Context, req QueryTransactionRequest) (Result, error) {
	txn, err := s.engine.QueryTransaction(ctx, req.TransactionID)
	if err != nil {
		return Result{}, err
	}
	return ResultFrom(txn), nil
}

func (s *Service) notify(ctx context.Context, kind string, txn ledger.Transaction) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.Send(ctx, notification.Message{
		Kind:          kind,
		AccountNumber: txn.AccountNumber,
		TransactionID: txn.TransactionID,
		Amount:        txn.Amount,
		Balance:       txn.BalanceSnapshot,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "notification failed",
			slog.String("kind", kind),
			slog.String("transaction_id", txn.TransactionID),
			slog.Any("error", err),
		)
	}
}
