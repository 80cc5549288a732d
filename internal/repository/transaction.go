package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/corebank/ledger-service/internal/domain"
)

const transactionColumns = `id, counterpart_id, account_id, amount, currency, created_at`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Add appends a single ledger entry and returns the stored copy with its
// assigned id.
func (r *TransactionRepository) Add(ctx context.Context, txn domain.Transaction) (domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO transactions (counterpart_id, account_id, amount, currency)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+transactionColumns,
		nullableID(txn.CounterpartID), txn.AccountID, txn.Delta.Amount, txn.Delta.Currency,
	)
	stored, err := scanTransaction(row)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("Add: %w", err)
	}
	return stored, nil
}

// AddPair appends a debit entry and a credit entry as a single database
// transaction and cross-links them. Readers never observe one leg without
// the other: both rows become visible at commit.
func (r *TransactionRepository) AddPair(ctx context.Context, debit, credit domain.Transaction) (domain.Transaction, domain.Transaction, error) {
	fail := func(err error) (domain.Transaction, domain.Transaction, error) {
		return domain.Transaction{}, domain.Transaction{}, fmt.Errorf("AddPair: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fail(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback()

	storedDebit, err := scanTransaction(tx.QueryRowContext(ctx,
		`INSERT INTO transactions (account_id, amount, currency)
		 VALUES ($1, $2, $3)
		 RETURNING `+transactionColumns,
		debit.AccountID, debit.Delta.Amount, debit.Delta.Currency,
	))
	if err != nil {
		return fail(fmt.Errorf("insert debit: %w", err))
	}

	storedCredit, err := scanTransaction(tx.QueryRowContext(ctx,
		`INSERT INTO transactions (counterpart_id, account_id, amount, currency)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+transactionColumns,
		storedDebit.ID, credit.AccountID, credit.Delta.Amount, credit.Delta.Currency,
	))
	if err != nil {
		return fail(fmt.Errorf("insert credit: %w", err))
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE transactions SET counterpart_id = $1 WHERE id = $2`,
		storedCredit.ID, storedDebit.ID,
	); err != nil {
		return fail(fmt.Errorf("link debit: %w", err))
	}
	storedDebit.CounterpartID = &storedCredit.ID

	if err := tx.Commit(); err != nil {
		return fail(fmt.Errorf("commit: %w", err))
	}

	return storedDebit, storedCredit, nil
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE account_id = $1 ORDER BY id`, accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByAccount: %w", err)
	}
	defer rows.Close()

	var entries []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByAccount: scan: %w", err)
		}
		entries = append(entries, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByAccount: rows: %w", err)
	}
	return entries, nil
}

// DeleteAll truncates the ledger. Test/reset utility only; ledger entries
// are immutable in normal operation.
func (r *TransactionRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `TRUNCATE transactions`); err != nil {
		return fmt.Errorf("DeleteAll: %w", err)
	}
	return nil
}

func scanTransaction(s scanner) (domain.Transaction, error) {
	var (
		t           domain.Transaction
		counterpart sql.NullInt64
	)
	err := s.Scan(&t.ID, &counterpart, &t.AccountID, &t.Delta.Amount, &t.Delta.Currency, &t.CreatedAt)
	if err != nil {
		return domain.Transaction{}, err
	}
	if counterpart.Valid {
		t.CounterpartID = &counterpart.Int64
	}
	return t, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
