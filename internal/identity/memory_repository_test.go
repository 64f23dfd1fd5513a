package identity

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRepositoryCreateAndFind(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	explicit, err := repo.Create(ctx, User{ID: 12, Name: "Pobi"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	generated, err := repo.Create(ctx, User{Name: "Harry"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if generated.ID != 13 {
		t.Fatalf("expected generated id after explicit one, got %d", generated.ID)
	}

	found, err := repo.FindByID(ctx, explicit.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Name != "Pobi" || found.CreatedAt.IsZero() {
		t.Fatalf("unexpected user %+v", found)
	}

	if _, err := repo.FindByID(ctx, 99); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}
