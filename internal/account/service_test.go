package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/congo-pay/accounts/internal/apperr"
	"github.com/congo-pay/accounts/internal/identity"
	"github.com/congo-pay/accounts/internal/lock"
)

type fixture struct {
	svc      *Service
	users    *identity.MemoryRepository
	accounts *MemoryRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	users := identity.NewMemoryRepository()
	accounts := NewMemoryRepository()
	ctx := context.Background()
	if _, err := users.Create(ctx, identity.User{ID: 12, Name: "Pobi"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if _, err := users.Create(ctx, identity.User{ID: 13, Name: "Harry"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	svc := NewService(users, accounts, lock.NewLocalLocker(time.Second))
	return fixture{svc: svc, users: users, accounts: accounts}
}

func (f fixture) seedAccount(t *testing.T, acct Account) Account {
	t.Helper()
	created, err := f.accounts.Create(context.Background(), acct)
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return created
}

func TestCloseSuccess(t *testing.T) {
	f := newFixture(t)
	f.seedAccount(t, Account{Number: "10000000012", UserID: 12, Balance: 0})
	fixed := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return fixed }

	acct, err := f.svc.Close(context.Background(), 12, "10000000012")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if acct.Status != StatusClosed {
		t.Fatalf("expected closed status, got %s", acct.Status)
	}
	if acct.ClosedAt == nil || !acct.ClosedAt.Equal(fixed) {
		t.Fatalf("expected closed_at %s, got %v", fixed, acct.ClosedAt)
	}

	stored, _ := f.accounts.FindByNumber(context.Background(), "10000000012")
	if stored.Status != StatusClosed {
		t.Fatalf("expected closure to be persisted")
	}
}

func TestCloseFailures(t *testing.T) {
	tests := []struct {
		name   string
		seed   *Account
		userID int64
		number string
		want   error
	}{
		{name: "user not found", userID: 1, number: "1000000000", want: apperr.ErrUserNotFound},
		{name: "account not found", userID: 12, number: "1000000000", want: apperr.ErrAccountNotFound},
		{
			name:   "owner mismatch",
			seed:   &Account{Number: "1000000000", UserID: 13},
			userID: 12, number: "1000000000", want: apperr.ErrOwnerMismatch,
		},
		{
			name:   "already closed",
			seed:   &Account{Number: "1000000000", UserID: 12, Status: StatusClosed},
			userID: 12, number: "1000000000", want: apperr.ErrAccountAlreadyClosed,
		},
		{
			name:   "balance not empty",
			seed:   &Account{Number: "1000000000", UserID: 12, Balance: 100},
			userID: 12, number: "1000000000", want: apperr.ErrBalanceNotEmpty,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			if tc.seed != nil {
				f.seedAccount(t, *tc.seed)
			}
			_, err := f.svc.Close(context.Background(), tc.userID, tc.number)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestListByUser(t *testing.T) {
	f := newFixture(t)
	f.seedAccount(t, Account{Number: "0000000000", UserID: 12, Balance: 1000})
	f.seedAccount(t, Account{Number: "1111111111", UserID: 12, Balance: 2000})
	f.seedAccount(t, Account{Number: "2222222222", UserID: 12, Balance: 3000})
	f.seedAccount(t, Account{Number: "3333333333", UserID: 13, Balance: 4000})

	accounts, err := f.svc.ListByUser(context.Background(), 12)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(accounts) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(accounts))
	}
	for i, want := range []struct {
		number  string
		balance int64
	}{{"0000000000", 1000}, {"1111111111", 2000}, {"2222222222", 3000}} {
		if accounts[i].Number != want.number || accounts[i].Balance != want.balance {
			t.Fatalf("account %d: expected %s/%d, got %s/%d", i, want.number, want.balance, accounts[i].Number, accounts[i].Balance)
		}
	}

	if _, err := f.svc.ListByUser(context.Background(), 99); !errors.Is(err, apperr.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}
