package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/congo-pay/accounts/internal/apperr"
	"github.com/congo-pay/accounts/internal/identity"
	"github.com/congo-pay/accounts/internal/lock"
)

// Service exposes account lookups and closure. Closure changes account state
// and runs under the same per-account lock as balance mutations.
type Service struct {
	users    identity.Repository
	accounts Repository
	locker   lock.Locker
	now      func() time.Time
}

// NewService builds an account service instance.
func NewService(users identity.Repository, accounts Repository, locker lock.Locker) *Service {
	return &Service{users: users, accounts: accounts, locker: locker, now: time.Now}
}

// Close marks an empty account CLOSED on behalf of its owner.
func (s *Service) Close(ctx context.Context, userID int64, number string) (Account, error) {
	return lock.Do(ctx, s.locker, number, func(ctx context.Context) (Account, error) {
		user, err := s.findUser(ctx, userID)
		if err != nil {
			return Account{}, err
		}
		acct, err := s.accounts.FindByNumber(ctx, number)
		if err != nil {
			if errors.Is(err, ErrAccountNotFound) {
				return Account{}, apperr.Newf(apperr.AccountNotFound, "account %s not found", number)
			}
			return Account{}, err
		}

		switch {
		case acct.UserID != user.ID:
			return Account{}, apperr.New(apperr.OwnerMismatch)
		case acct.Status == StatusClosed:
			return Account{}, apperr.New(apperr.AccountAlreadyClosed)
		case acct.Balance > 0:
			return Account{}, apperr.Newf(apperr.BalanceNotEmpty, "account %s still holds %d", number, acct.Balance)
		}

		closedAt := s.now().UTC()
		acct.Status = StatusClosed
		acct.ClosedAt = &closedAt
		saved, err := s.accounts.Save(ctx, acct)
		if err != nil {
			return Account{}, fmt.Errorf("save account: %w", err)
		}
		return saved, nil
	})
}

// ListByUser returns every account owned by the user.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Account, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.accounts.ListByUser(ctx, user.ID)
}

func (s *Service) findUser(ctx context.Context, userID int64) (identity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return identity.User{}, apperr.Newf(apperr.UserNotFound, "user %d not found", userID)
		}
		return identity.User{}, err
	}
	return user, nil
}
