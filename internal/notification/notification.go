package notification

import (
	"context"
	"log/slog"
)

const (
	// KindBalanceUsed is sent after a successful debit.
	KindBalanceUsed = "balance_used"
	// KindBalanceCancelled is sent after a successful reversal.
	KindBalanceCancelled = "balance_cancelled"
)

// Message describes a notification payload.
type Message struct {
	Kind          string
	AccountNumber string
	TransactionID string
	Amount        int64
	Balance       int64
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier writes notifications to the structured logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(ctx context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.InfoContext(ctx, "notification",
		slog.String("kind", message.Kind),
		slog.String("account_number", message.AccountNumber),
		slog.String("transaction_id", message.TransactionID),
		slog.Int64("amount", message.Amount),
		slog.Int64("balance", message.Balance),
	)
	return nil
}
