package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebank/ledger-service/internal/domain"
)

func entry(accountID int64, amount string) domain.Transaction {
	return domain.Transaction{
		AccountID: accountID,
		Delta:     domain.NewMoney(decimal.RequireFromString(amount), domain.CurrencyUSD),
	}
}

func TestTransactionStoreAddAssignsIDs(t *testing.T) {
	store := NewTransactionStore()
	ctx := context.Background()

	first, err := store.Add(ctx, entry(1, "10"))
	require.NoError(t, err)
	second, err := store.Add(ctx, entry(1, "20"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Nil(t, first.CounterpartID)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestTransactionStoreAddPairLinksBothWays(t *testing.T) {
	store := NewTransactionStore()

	debit, credit, err := store.AddPair(context.Background(), entry(1, "-5"), entry(2, "5"))
	require.NoError(t, err)

	require.NotNil(t, debit.CounterpartID)
	require.NotNil(t, credit.CounterpartID)
	assert.Equal(t, credit.ID, *debit.CounterpartID)
	assert.Equal(t, debit.ID, *credit.CounterpartID)

	// The links are persisted, not just present on the returned copies.
	stored, err := store.ListByAccount(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.NotNil(t, stored[0].CounterpartID)
	assert.Equal(t, credit.ID, *stored[0].CounterpartID)
}

func TestTransactionStoreListReturnsCopy(t *testing.T) {
	store := NewTransactionStore()
	ctx := context.Background()

	_, err := store.Add(ctx, entry(1, "10"))
	require.NoError(t, err)

	entries, err := store.ListByAccount(ctx, 1)
	require.NoError(t, err)
	entries[0].AccountID = 99

	again, err := store.ListByAccount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), again[0].AccountID, "callers must not mutate stored entries")
}

func TestTransactionStoreDeleteAll(t *testing.T) {
	store := NewTransactionStore()
	ctx := context.Background()

	_, err := store.Add(ctx, entry(1, "10"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteAll(ctx))

	entries, err := store.ListByAccount(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// IDs keep counting across resets.
	next, err := store.Add(ctx, entry(1, "10"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID)
}

func TestAccountStore(t *testing.T) {
	store := NewAccountStore()
	ctx := context.Background()
	customerID := uuid.New()

	created, err := store.Create(ctx, domain.Account{CustomerID: customerID, Currency: domain.CurrencyUSD})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Equal(created))

	_, err = store.GetByID(ctx, 42)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	byCurrency, err := store.GetByCustomerAndCurrency(ctx, customerID, domain.CurrencyUSD)
	require.NoError(t, err)
	assert.True(t, byCurrency.Equal(created))

	_, err = store.GetByCustomerAndCurrency(ctx, customerID, domain.CurrencyEUR)
	require.ErrorIs(t, err, domain.ErrNotFound)

	second, err := store.Create(ctx, domain.Account{CustomerID: customerID, Currency: domain.CurrencyEUR})
	require.NoError(t, err)

	accounts, err := store.ListByCustomer(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, created.ID, accounts[0].ID)
	assert.Equal(t, second.ID, accounts[1].ID)
}

func TestCustomerStore(t *testing.T) {
	store := NewCustomerStore()
	ctx := context.Background()

	c := domain.Customer{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, store.Create(ctx, c))

	got, err := store.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Email, got.Email)

	_, err = store.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
