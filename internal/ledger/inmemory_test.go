package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestInMemoryStore_SaveAndFind(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	saved, err := s.Save(ctx, Transaction{
		TransactionID:   "txA",
		AccountID:       1,
		AccountNumber:   "1000000000",
		Type:            TypeUse,
		Result:          ResultSuccess,
		Amount:          200,
		BalanceSnapshot: 9800,
		TransactedAt:    at,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == 0 || saved.CreatedAt.IsZero() {
		t.Fatalf("expected store-assigned id and audit timestamps, got %+v", saved)
	}

	found, err := s.FindByTransactionID(ctx, "txA")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != saved {
		t.Fatalf("expected %+v, got %+v", saved, found)
	}
}

func TestInMemoryStore_AppendOnly(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	if _, err := s.Save(ctx, Transaction{TransactionID: "dup", Amount: 100}); err != nil {
		t.Fatalf("initial save: %v", err)
	}
	if _, err := s.Save(ctx, Transaction{TransactionID: "dup", Amount: 999}); err == nil {
		t.Fatalf("expected second save with the same transaction id to fail")
	}
	found, _ := s.FindByTransactionID(ctx, "dup")
	if found.Amount != 100 {
		t.Fatalf("expected original record to survive, got amount %d", found.Amount)
	}
}

func TestInMemoryStore_NotFound(t *testing.T) {
	s := NewInMemory()
	if _, err := s.FindByTransactionID(context.Background(), "missing"); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestInMemoryStore_ConcurrentSaves(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.Save(ctx, Transaction{TransactionID: fmt.Sprintf("tx-%d", i), AccountID: 7, Amount: 1}); err != nil {
				t.Errorf("save %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	records := Records(s, 7)
	if len(records) != workers {
		t.Fatalf("expected %d records, got %d", workers, len(records))
	}
	for i, rec := range records {
		if rec.ID != int64(i+1) {
			t.Fatalf("expected insertion order, record %d has id %d", i, rec.ID)
		}
	}
}
