// Package memory provides in-memory stores implementing the same contracts
// as the Postgres repositories. Each store is an isolated instance with an
// explicit lifecycle, so tests construct and reset their own ledgers instead
// of sharing package-level state.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/corebank/ledger-service/internal/domain"
)

// TransactionStore is an append-only in-memory ledger.
type TransactionStore struct {
	mu      sync.RWMutex
	nextID  int64
	entries map[int64][]domain.Transaction
}

func NewTransactionStore() *TransactionStore {
	s := &TransactionStore{}
	s.entries = make(map[int64][]domain.Transaction)
	return s
}

// Add appends a single ledger entry, assigning the next id.
func (s *TransactionStore) Add(_ context.Context, txn domain.Transaction) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.append(txn), nil
}

// AddPair appends both legs of a transfer under one lock acquisition, so no
// concurrent read observes one leg without the other. The stored copies are
// cross-linked in both directions.
func (s *TransactionStore) AddPair(_ context.Context, debit, credit domain.Transaction) (domain.Transaction, domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	storedDebit := s.append(debit)
	storedCredit := s.append(credit)

	storedDebit.CounterpartID = &storedCredit.ID
	storedCredit.CounterpartID = &storedDebit.ID
	s.replace(storedDebit)
	s.replace(storedCredit)

	return storedDebit, storedCredit, nil
}

func (s *TransactionStore) ListByAccount(_ context.Context, accountID int64) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.entries[accountID]
	out := make([]domain.Transaction, len(entries))
	copy(out, entries)
	return out, nil
}

// DeleteAll drops every entry. Test/reset utility; the id sequence keeps
// counting so ids stay unique across resets.
func (s *TransactionStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[int64][]domain.Transaction)
	return nil
}

// append assigns the next id and stores the entry. Callers hold s.mu.
func (s *TransactionStore) append(txn domain.Transaction) domain.Transaction {
	s.nextID++
	txn.ID = s.nextID
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}
	s.entries[txn.AccountID] = append(s.entries[txn.AccountID], txn)
	return txn
}

// replace overwrites a stored entry in place. Callers hold s.mu.
func (s *TransactionStore) replace(txn domain.Transaction) {
	entries := s.entries[txn.AccountID]
	for i := range entries {
		if entries[i].ID == txn.ID {
			entries[i] = txn
			return
		}
	}
}

// AccountStore holds accounts keyed by id.
type AccountStore struct {
	mu       sync.RWMutex
	nextID   int64
	accounts map[int64]domain.Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[int64]domain.Account)}
}

func (s *AccountStore) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	account.ID = s.nextID
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	s.accounts[account.ID] = account
	return account, nil
}

func (s *AccountStore) GetByID(_ context.Context, id int64) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return domain.Account{}, fmt.Errorf("GetByID %d: %w", id, domain.ErrAccountNotFound)
	}
	return a, nil
}

func (s *AccountStore) GetByCustomerAndCurrency(_ context.Context, customerID uuid.UUID, currency domain.Currency) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if a.CustomerID == customerID && a.Currency == currency {
			return a, nil
		}
	}
	return domain.Account{}, fmt.Errorf("GetByCustomerAndCurrency: %w", domain.ErrNotFound)
}

func (s *AccountStore) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Account
	for id := int64(1); id <= s.nextID; id++ {
		if a, ok := s.accounts[id]; ok && a.CustomerID == customerID {
			out = append(out, a)
		}
	}
	return out, nil
}

// CustomerStore holds customers keyed by id.
type CustomerStore struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]domain.Customer
}

func NewCustomerStore() *CustomerStore {
	return &CustomerStore{customers: make(map[uuid.UUID]domain.Customer)}
}

func (s *CustomerStore) Create(_ context.Context, customer domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[customer.ID] = customer
	return nil
}

func (s *CustomerStore) GetByID(_ context.Context, id uuid.UUID) (domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return domain.Customer{}, fmt.Errorf("GetByID %s: %w", id, domain.ErrCustomerNotFound)
	}
	return c, nil
}
