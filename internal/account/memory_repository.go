package account

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-memory account store for tests and local development.
type MemoryRepository struct {
	mu       sync.RWMutex
	byNumber map[string]Account
	nextID   int64
}

// NewMemoryRepository constructs an empty in-memory account store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byNumber: make(map[string]Account)}
}

// Create stores a new account, assigning its id and registration time.
func (r *MemoryRepository) Create(_ context.Context, acct Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byNumber[acct.Number]; exists {
		return Account{}, errors.New("account number already in use")
	}
	r.nextID++
	acct.ID = r.nextID
	now := time.Now().UTC()
	if acct.Status == "" {
		acct.Status = StatusActive
	}
	if acct.RegisteredAt.IsZero() {
		acct.RegisteredAt = now
	}
	acct.CreatedAt = now
	acct.UpdatedAt = now
	r.byNumber[acct.Number] = acct
	return acct, nil
}

func (r *MemoryRepository) FindByNumber(_ context.Context, number string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acct, ok := r.byNumber[number]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return acct, nil
}

func (r *MemoryRepository) Save(_ context.Context, acct Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byNumber[acct.Number]
	if !ok || current.ID != acct.ID {
		return Account{}, ErrAccountNotFound
	}
	if acct.Balance < 0 {
		return Account{}, errors.New("balance must not be negative")
	}
	current.Status = acct.Status
	current.Balance = acct.Balance
	current.ClosedAt = acct.ClosedAt
	current.UpdatedAt = time.Now().UTC()
	r.byNumber[acct.Number] = current
	return current, nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID int64) ([]Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Account
	for _, acct := range r.byNumber {
		if acct.UserID == userID {
			out = append(out, acct)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
