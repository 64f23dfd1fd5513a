package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists transaction records in PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed ledger.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save inserts a record; the transaction id is unique so a record is never overwritten.
func (s *PostgresStore) Save(ctx context.Context, txn Transaction) (Transaction, error) {
	const query = `
        INSERT INTO transactions (transaction_id, account_id, type, result, amount, balance_snapshot, transacted_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`
	err := s.db.QueryRow(ctx, query,
		txn.TransactionID, txn.AccountID, string(txn.Type), string(txn.Result),
		txn.Amount, txn.BalanceSnapshot, txn.TransactedAt.UTC(),
	).Scan(&txn.ID, &txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		return Transaction{}, fmt.Errorf("insert transaction %s: %w", txn.TransactionID, err)
	}
	txn.CreatedAt = txn.CreatedAt.UTC()
	txn.UpdatedAt = txn.UpdatedAt.UTC()
	return txn, nil
}

// FindByTransactionID loads a record together with its account number.
func (s *PostgresStore) FindByTransactionID(ctx context.Context, transactionID string) (Transaction, error) {
	const query = `
        SELECT t.id, t.transaction_id, t.account_id, a.account_number, t.type, t.result,
               t.amount, t.balance_snapshot, t.transacted_at, t.created_at, t.updated_at
        FROM transactions t
        INNER JOIN accounts a ON a.id = t.account_id
        WHERE t.transaction_id = $1`
	var (
		txn          Transaction
		kind, result string
	)
	err := s.db.QueryRow(ctx, query, transactionID).Scan(
		&txn.ID, &txn.TransactionID, &txn.AccountID, &txn.AccountNumber, &kind, &result,
		&txn.Amount, &txn.BalanceSnapshot, &txn.TransactedAt, &txn.CreatedAt, &txn.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, ErrTransactionNotFound
		}
		return Transaction{}, fmt.Errorf("find transaction %s: %w", transactionID, err)
	}
	txn.Type = Type(kind)
	txn.Result = Result(result)
	txn.TransactedAt = txn.TransactedAt.UTC()
	txn.CreatedAt = txn.CreatedAt.UTC()
	txn.UpdatedAt = txn.UpdatedAt.UTC()
	return txn, nil
}
