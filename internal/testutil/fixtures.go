package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank/ledger-service/internal/domain"
)

func SeedCustomer(t *testing.T, db *sql.DB, name, email string) domain.Customer {
	t.Helper()

	c := domain.Customer{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO customers (id, name, email, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Email, c.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed customer %s: %v", email, err)
	}
	return c
}

func SeedAccount(t *testing.T, db *sql.DB, customerID uuid.UUID, currency domain.Currency) domain.Account {
	t.Helper()

	var a domain.Account
	err := db.QueryRow(
		`INSERT INTO accounts (customer_id, currency) VALUES ($1, $2)
		 RETURNING id, customer_id, currency, created_at`,
		customerID, currency,
	).Scan(&a.ID, &a.CustomerID, &a.Currency, &a.CreatedAt)
	if err != nil {
		t.Fatalf("seed account %s/%s: %v", customerID, currency, err)
	}
	return a
}

// SeedDeposit funds an account with a single credit entry. Balances are
// derived from the ledger, so this is the only way fixtures create money.
func SeedDeposit(t *testing.T, db *sql.DB, account domain.Account, amount string) {
	t.Helper()

	d, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("parse deposit amount %q: %v", amount, err)
	}

	_, err = db.Exec(
		`INSERT INTO transactions (account_id, amount, currency) VALUES ($1, $2, $3)`,
		account.ID, d, account.Currency,
	)
	if err != nil {
		t.Fatalf("seed deposit on account %d: %v", account.ID, err)
	}
}

func CountTransactions(t *testing.T, db *sql.DB, accountID int64) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		t.Fatalf("count transactions for account %d: %v", accountID, err)
	}
	return count
}
