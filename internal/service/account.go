package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/corebank/ledger-service/internal/domain"
	"github.com/corebank/ledger-service/internal/logging"
)

type accountRepo interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, id int64) (domain.Account, error)
	GetByCustomerAndCurrency(ctx context.Context, customerID uuid.UUID, currency domain.Currency) (domain.Account, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Account, error)
}

type customerChecker interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error)
}

type entryStore interface {
	Add(ctx context.Context, txn domain.Transaction) (domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

type stateQuerier interface {
	CurrentState(ctx context.Context, account domain.Account) (domain.AccountState, error)
}

type AccountService struct {
	accounts  accountRepo
	customers customerChecker
	entries   entryStore
	querier   stateQuerier
}

func NewAccountService(accounts accountRepo, customers customerChecker, entries entryStore, querier stateQuerier) *AccountService {
	return &AccountService{
		accounts:  accounts,
		customers: customers,
		entries:   entries,
		querier:   querier,
	}
}

// CreateAccount opens an account for the customer in the given currency.
// One account per customer per currency.
func (s *AccountService) CreateAccount(ctx context.Context, customerID uuid.UUID, currency domain.Currency) (domain.Account, error) {
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return domain.Account{}, fmt.Errorf("CreateAccount: %w", err)
	}

	if !currency.IsValid() {
		return domain.Account{}, fmt.Errorf("CreateAccount: %w", domain.ErrInvalidCurrency)
	}

	_, err := s.accounts.GetByCustomerAndCurrency(ctx, customerID, currency)
	if err == nil {
		return domain.Account{}, fmt.Errorf("CreateAccount: %w", domain.ErrAccountExists)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Account{}, fmt.Errorf("CreateAccount: check existing: %w", err)
	}

	account, err := s.accounts.Create(ctx, domain.Account{
		CustomerID: customerID,
		Currency:   currency,
	})
	if err != nil {
		return domain.Account{}, fmt.Errorf("CreateAccount: %w", err)
	}

	logging.FromContext(ctx).Info("account created",
		"account_id", account.ID,
		"customer_id", customerID,
		"currency", currency,
	)

	return account, nil
}

func (s *AccountService) GetCustomerAccounts(ctx context.Context, customerID uuid.UUID) ([]domain.Account, error) {
	accounts, err := s.accounts.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("GetCustomerAccounts: %w", err)
	}
	return accounts, nil
}

// GetAccountState returns the account with its derived current balance.
func (s *AccountService) GetAccountState(ctx context.Context, accountID int64) (domain.AccountState, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return domain.AccountState{}, fmt.Errorf("GetAccountState: %w", err)
	}

	state, err := s.querier.CurrentState(ctx, account)
	if err != nil {
		return domain.AccountState{}, fmt.Errorf("GetAccountState: %w", err)
	}
	return state, nil
}

func (s *AccountService) GetAccountTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("GetAccountTransactions: %w", err)
	}

	entries, err := s.entries.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("GetAccountTransactions: %w", err)
	}
	return entries, nil
}

// Deposit appends a single credit entry. Balances are purely derived from
// the ledger, so this is how money enters the system.
func (s *AccountService) Deposit(ctx context.Context, accountID int64, money domain.Money) (domain.Transaction, error) {
	if money.IsNegative() || money.IsZero() {
		return domain.Transaction{}, fmt.Errorf("Deposit: %w", domain.ErrInvalidAmount)
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("Deposit: %w", err)
	}

	if account.Currency != money.Currency {
		return domain.Transaction{}, fmt.Errorf("Deposit: %w", domain.ErrCurrencyMismatch)
	}

	entry, err := s.entries.Add(ctx, domain.Transaction{
		AccountID: account.ID,
		Delta:     money,
	})
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("Deposit: %w", err)
	}

	logging.FromContext(ctx).Info("deposit recorded",
		"account_id", account.ID,
		"amount", money.String(),
		"entry_id", entry.ID,
	)

	return entry, nil
}
