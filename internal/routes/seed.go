package routes

import (
	"context"

	"github.com/congo-pay/accounts/internal/account"
	"github.com/congo-pay/accounts/internal/identity"
)

// seedDevData mirrors infra/seed so in-memory runs expose the same demo accounts.
func seedDevData(ctx context.Context, users *identity.MemoryRepository, accounts *account.MemoryRepository) error {
	for _, u := range []identity.User{{ID: 1, Name: "Pobi"}, {ID: 2, Name: "Harry"}} {
		if _, err := users.Create(ctx, u); err != nil {
			return err
		}
	}
	for _, a := range []account.Account{
		{Number: "1000000000", UserID: 1, Balance: 10000},
		{Number: "1000000001", UserID: 2, Balance: 100},
		{Number: "1000000012", UserID: 1, Balance: 10000},
	} {
		if _, err := accounts.Create(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
