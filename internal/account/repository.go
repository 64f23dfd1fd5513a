package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrAccountNotFound is returned when no account matches the lookup or update.
var ErrAccountNotFound = errors.New("account not found")

// Repository persists accounts. Save only updates an existing account.
type Repository interface {
	FindByNumber(ctx context.Context, number string) (Account, error)
	Save(ctx context.Context, account Account) (Account, error)
	ListByUser(ctx context.Context, userID int64) ([]Account, error)
}

// PostgresRepository stores accounts in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const accountColumns = `id, account_number, user_id, status, balance, registered_at, closed_at, created_at, updated_at`

// FindByNumber fetches an account by its external number.
func (r *PostgresRepository) FindByNumber(ctx context.Context, number string) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_number = $1`, number)
	acct, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, fmt.Errorf("find account %s: %w", number, err)
	}
	return acct, nil
}

// Save writes the mutable fields of an existing account.
func (r *PostgresRepository) Save(ctx context.Context, acct Account) (Account, error) {
	row := r.db.QueryRow(ctx, `UPDATE accounts
        SET status = $2, balance = $3, closed_at = $4, updated_at = now()
        WHERE id = $1
        RETURNING `+accountColumns, acct.ID, string(acct.Status), acct.Balance, acct.ClosedAt)
	saved, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, fmt.Errorf("save account %s: %w", acct.Number, err)
	}
	return saved, nil
}

// ListByUser returns the user's accounts ordered by id.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts for user %d: %w", userID, err)
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, acct)
	}
	return out, rows.Err()
}

func scanAccount(row pgx.Row) (Account, error) {
	var (
		acct   Account
		status string
	)
	if err := row.Scan(&acct.ID, &acct.Number, &acct.UserID, &status, &acct.Balance,
		&acct.RegisteredAt, &acct.ClosedAt, &acct.CreatedAt, &acct.UpdatedAt); err != nil {
		return Account{}, err
	}
	acct.Status = Status(status)
	acct.RegisteredAt = acct.RegisteredAt.UTC()
	acct.CreatedAt = acct.CreatedAt.UTC()
	acct.UpdatedAt = acct.UpdatedAt.UTC()
	if acct.ClosedAt != nil {
		closed := acct.ClosedAt.UTC()
		acct.ClosedAt = &closed
	}
	return acct, nil
}
