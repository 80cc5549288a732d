package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/corebank/ledger-service/internal/domain"
)

const accountColumns = `id, customer_id, currency, created_at`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO accounts (customer_id, currency)
		 VALUES ($1, $2)
		 RETURNING `+accountColumns,
		account.CustomerID, account.Currency,
	)
	stored, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, fmt.Errorf("Create: %w", err)
	}
	return stored, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id,
	)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, fmt.Errorf("GetByID: %w", domain.ErrAccountNotFound)
		}
		return domain.Account{}, fmt.Errorf("GetByID: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) GetByCustomerAndCurrency(ctx context.Context, customerID uuid.UUID, currency domain.Currency) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts
		 WHERE customer_id = $1 AND currency = $2`,
		customerID, currency,
	)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, fmt.Errorf("GetByCustomerAndCurrency: %w", domain.ErrNotFound)
		}
		return domain.Account{}, fmt.Errorf("GetByCustomerAndCurrency: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE customer_id = $1 ORDER BY id`, customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByCustomer: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByCustomer: scan: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByCustomer: rows: %w", err)
	}
	return accounts, nil
}

func scanAccount(s scanner) (domain.Account, error) {
	var a domain.Account
	if err := s.Scan(&a.ID, &a.CustomerID, &a.Currency, &a.CreatedAt); err != nil {
		return domain.Account{}, err
	}
	return a, nil
}
