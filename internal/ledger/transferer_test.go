package ledger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebank/ledger-service/internal/domain"
	"github.com/corebank/ledger-service/internal/ledger"
	"github.com/corebank/ledger-service/internal/repository/memory"
)

func usd(s string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(s), domain.CurrencyUSD)
}

func eur(s string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(s), domain.CurrencyEUR)
}

func account(id int64, currency domain.Currency) domain.Account {
	return domain.Account{ID: id, CustomerID: uuid.New(), Currency: currency}
}

func newTransferer(store *memory.TransactionStore) *ledger.Transferer {
	querier := ledger.NewStateQuerier(store)
	return ledger.NewTransferer(querier, ledger.NewCreator(store))
}

func fund(t *testing.T, store *memory.TransactionStore, acct domain.Account, amount string) {
	t.Helper()
	_, err := store.Add(context.Background(), domain.Transaction{
		AccountID: acct.ID,
		Delta:     domain.NewMoney(decimal.RequireFromString(amount), acct.Currency),
	})
	require.NoError(t, err)
}

func entryCount(t *testing.T, store *memory.TransactionStore, acct domain.Account) int {
	t.Helper()
	entries, err := store.ListByAccount(context.Background(), acct.ID)
	require.NoError(t, err)
	return len(entries)
}

func TestTransferRejections(t *testing.T) {
	a := account(1, domain.CurrencyUSD)
	b := account(2, domain.CurrencyUSD)
	c := account(3, domain.CurrencyEUR)
	sameAsA := account(1, domain.CurrencyUSD)

	tests := []struct {
		name     string
		money    domain.Money
		from, to domain.Account
		want     ledger.Outcome
	}{
		{"same account", usd("10"), a, sameAsA, ledger.OutcomeSameAccount},
		{"same account wins over negative amount", usd("-10"), a, sameAsA, ledger.OutcomeSameAccount},
		{"negative amount", usd("-10"), a, b, ledger.OutcomeNegativeMoney},
		{"negative amount wins over currency mismatch", eur("-10"), a, b, ledger.OutcomeNegativeMoney},
		{"from currency mismatch", eur("10"), a, c, ledger.OutcomeCurrencyMismatch},
		{"to currency mismatch", usd("10"), a, c, ledger.OutcomeCurrencyMismatch},
		{"insufficient funds on empty account", usd("10"), a, b, ledger.OutcomeInsufficientFunds},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.NewTransactionStore()
			transferer := newTransferer(store)

			result, err := transferer.Transfer(context.Background(), tc.money, tc.from, tc.to)
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.Outcome)
			assert.Nil(t, result.From)
			assert.Nil(t, result.To)

			assert.Zero(t, entryCount(t, store, tc.from), "rejection must not append entries")
			assert.Zero(t, entryCount(t, store, tc.to), "rejection must not append entries")
		})
	}
}

func TestTransferSuccess(t *testing.T) {
	store := memory.NewTransactionStore()
	transferer := newTransferer(store)
	ctx := context.Background()

	from := account(1, domain.CurrencyUSD)
	to := account(2, domain.CurrencyUSD)
	fund(t, store, from, "1000")
	fund(t, store, to, "1000")

	result, err := transferer.Transfer(ctx, usd("10"), from, to)
	require.NoError(t, err)
	require.Equal(t, ledger.OutcomeSuccess, result.Outcome)

	require.NotNil(t, result.From)
	require.NotNil(t, result.To)
	assert.True(t, result.From.Balance.Equal(usd("990")), "got %s", result.From.Balance)
	assert.True(t, result.To.Balance.Equal(usd("1010")), "got %s", result.To.Balance)

	fromEntries, err := store.ListByAccount(ctx, from.ID)
	require.NoError(t, err)
	toEntries, err := store.ListByAccount(ctx, to.ID)
	require.NoError(t, err)
	require.Len(t, fromEntries, 2)
	require.Len(t, toEntries, 2)

	debit := fromEntries[1]
	credit := toEntries[1]
	assert.True(t, debit.Delta.Equal(usd("-10")), "debit delta %s", debit.Delta)
	assert.True(t, credit.Delta.Equal(usd("10")), "credit delta %s", credit.Delta)

	require.NotNil(t, debit.CounterpartID)
	require.NotNil(t, credit.CounterpartID)
	assert.Equal(t, credit.ID, *debit.CounterpartID)
	assert.Equal(t, debit.ID, *credit.CounterpartID)
}

// Money is conserved: whatever leaves one account arrives at the other.
func TestTransferConservation(t *testing.T) {
	store := memory.NewTransactionStore()
	transferer := newTransferer(store)
	ctx := context.Background()

	from := account(1, domain.CurrencyUSD)
	to := account(2, domain.CurrencyUSD)
	fund(t, store, from, "123.45")
	fund(t, store, to, "67.89")

	result, err := transferer.Transfer(ctx, usd("23.45"), from, to)
	require.NoError(t, err)
	require.Equal(t, ledger.OutcomeSuccess, result.Outcome)

	total, err := result.From.Balance.Add(result.To.Balance)
	require.NoError(t, err)
	assert.True(t, total.Equal(usd("191.34")), "total %s", total)
	assert.True(t, result.From.Balance.Equal(usd("100")), "from %s", result.From.Balance)
	assert.True(t, result.To.Balance.Equal(usd("91.34")), "to %s", result.To.Balance)
}

func TestTransferZeroAmountIsNoOp(t *testing.T) {
	store := memory.NewTransactionStore()
	transferer := newTransferer(store)
	ctx := context.Background()

	from := account(1, domain.CurrencyUSD)
	to := account(2, domain.CurrencyUSD)
	fund(t, store, from, "50")

	result, err := transferer.Transfer(ctx, usd("0"), from, to)
	require.NoError(t, err)
	require.Equal(t, ledger.OutcomeSuccess, result.Outcome)

	assert.True(t, result.From.Balance.Equal(usd("50")))
	assert.True(t, result.To.Balance.IsZero())

	assert.Equal(t, 1, entryCount(t, store, from), "zero transfer must not append entries")
	assert.Equal(t, 0, entryCount(t, store, to), "zero transfer must not append entries")
}

// A zero transfer with mismatched currencies is still a mismatch: the
// currency rules precede the zero-amount rule.
func TestTransferZeroAmountCurrencyMismatch(t *testing.T) {
	store := memory.NewTransactionStore()
	transferer := newTransferer(store)

	from := account(1, domain.CurrencyUSD)
	to := account(2, domain.CurrencyUSD)

	result, err := transferer.Transfer(context.Background(), eur("0"), from, to)
	require.NoError(t, err)
	assert.Equal(t, ledger.OutcomeCurrencyMismatch, result.Outcome)
}

func TestTransferInsufficientFundsLeavesLedgerUntouched(t *testing.T) {
	store := memory.NewTransactionStore()
	transferer := newTransferer(store)
	ctx := context.Background()

	from := account(1, domain.CurrencyUSD)
	to := account(2, domain.CurrencyUSD)
	fund(t, store, from, "1000")

	result, err := transferer.Transfer(ctx, usd("1001"), from, to)
	require.NoError(t, err)
	assert.Equal(t, ledger.OutcomeInsufficientFunds, result.Outcome)
	assert.Equal(t, 1, entryCount(t, store, from))
	assert.Equal(t, 0, entryCount(t, store, to))

	// The full balance can be transferred, leaving exactly zero.
	result, err = transferer.Transfer(ctx, usd("1000"), from, to)
	require.NoError(t, err)
	require.Equal(t, ledger.OutcomeSuccess, result.Outcome)
	assert.True(t, result.From.Balance.IsZero(), "from balance %s", result.From.Balance)
	assert.True(t, result.To.Balance.Equal(usd("1000")))
}

// Transfers are not deduplicated: repeating the same request doubles the
// effect and produces two independent pairs.
func TestTransferRepeatIsNotDeduplicated(t *testing.T) {
	store := memory.NewTransactionStore()
	transferer := newTransferer(store)
	ctx := context.Background()

	from := account(1, domain.CurrencyUSD)
	to := account(2, domain.CurrencyUSD)
	fund(t, store, from, "100")

	for range 2 {
		result, err := transferer.Transfer(ctx, usd("10"), from, to)
		require.NoError(t, err)
		require.Equal(t, ledger.OutcomeSuccess, result.Outcome)
	}

	querier := ledger.NewStateQuerier(store)
	fromState, err := querier.CurrentState(ctx, from)
	require.NoError(t, err)
	toState, err := querier.CurrentState(ctx, to)
	require.NoError(t, err)

	assert.True(t, fromState.Balance.Equal(usd("80")))
	assert.True(t, toState.Balance.Equal(usd("20")))
	assert.Equal(t, 3, entryCount(t, store, from))
	assert.Equal(t, 2, entryCount(t, store, to))
}

// Concurrent transfers from one source must not overdraw it: the sufficiency
// check and the append are serialized per account.
func TestTransferConcurrentSameSource(t *testing.T) {
	store := memory.NewTransactionStore()
	transferer := newTransferer(store)
	ctx := context.Background()

	from := account(1, domain.CurrencyUSD)
	to := account(2, domain.CurrencyUSD)
	fund(t, store, from, "100")

	const attempts = 20 // only 10 transfers of 10 can succeed

	var wg sync.WaitGroup
	outcomes := make(chan ledger.Outcome, attempts)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := transferer.Transfer(ctx, usd("10"), from, to)
			if err != nil {
				t.Error(err)
				return
			}
			outcomes <- result.Outcome
		}()
	}
	wg.Wait()
	close(outcomes)

	successes := 0
	for outcome := range outcomes {
		switch outcome {
		case ledger.OutcomeSuccess:
			successes++
		case ledger.OutcomeInsufficientFunds:
		default:
			t.Errorf("unexpected outcome %s", outcome)
		}
	}
	assert.Equal(t, 10, successes)

	querier := ledger.NewStateQuerier(store)
	fromState, err := querier.CurrentState(ctx, from)
	require.NoError(t, err)
	toState, err := querier.CurrentState(ctx, to)
	require.NoError(t, err)

	assert.True(t, fromState.Balance.IsZero(), "source overdrawn: %s", fromState.Balance)
	assert.True(t, toState.Balance.Equal(usd("100")))
}

// Opposite-direction transfers between the same two accounts must not
// deadlock on the per-account locks.
func TestTransferConcurrentOppositeDirections(t *testing.T) {
	store := memory.NewTransactionStore()
	transferer := newTransferer(store)
	ctx := context.Background()

	a := account(1, domain.CurrencyUSD)
	b := account(2, domain.CurrencyUSD)
	fund(t, store, a, "1000")
	fund(t, store, b, "1000")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := transferer.Transfer(ctx, usd("1"), a, b); err != nil {
				t.Error(err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := transferer.Transfer(ctx, usd("1"), b, a); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	querier := ledger.NewStateQuerier(store)
	aState, err := querier.CurrentState(ctx, a)
	require.NoError(t, err)
	bState, err := querier.CurrentState(ctx, b)
	require.NoError(t, err)

	total, err := aState.Balance.Add(bState.Balance)
	require.NoError(t, err)
	assert.True(t, total.Equal(usd("2000")), "money not conserved: %s", total)
}
