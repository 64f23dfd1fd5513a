package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

type inMemoryStore struct {
	mu      sync.RWMutex
	records map[string]Transaction
	nextID  int64
}

// NewInMemory creates a concurrency-safe in-memory ledger useful for unit tests.
func NewInMemory() Store {
	return &inMemoryStore{records: make(map[string]Transaction)}
}

func (s *inMemoryStore) Save(_ context.Context, txn Transaction) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[txn.TransactionID]; exists {
		return Transaction{}, fmt.Errorf("transaction %s already recorded", txn.TransactionID)
	}

	s.nextID++
	now := time.Now().UTC()
	txn.ID = s.nextID
	txn.CreatedAt = now
	txn.UpdatedAt = now
	s.records[txn.TransactionID] = txn
	return txn, nil
}

func (s *inMemoryStore) FindByTransactionID(_ context.Context, transactionID string) (Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txn, ok := s.records[transactionID]
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	return txn, nil
}

// Records returns every stored record for accountID in insertion order.
func Records(s Store, accountID int64) []Transaction {
	mem, ok := s.(*inMemoryStore)
	if !ok {
		return nil
	}
	mem.mu.RLock()
	defer mem.mu.RUnlock()
	var out []Transaction
	for _, txn := range mem.records {
		if txn.AccountID == accountID {
			out = append(out, txn)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
