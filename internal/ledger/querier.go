package ledger

import (
	"context"
	"fmt"

	"github.com/corebank/ledger-service/internal/domain"
)

type entryLister interface {
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// StateQuerier derives an account's current balance by folding its ledger
// entries. It holds no state of its own: every call re-reads the store, so
// the result reflects whatever the ledger contains at call time.
type StateQuerier struct {
	entries entryLister
}

func NewStateQuerier(entries entryLister) *StateQuerier {
	return &StateQuerier{entries: entries}
}

// CurrentState sums the account's entry deltas into a balance. An empty log
// yields zero in the account's currency. Entries on an account share its
// currency by construction, so a mismatch while folding indicates a corrupt
// ledger and is returned as an error rather than a zeroed state.
func (q *StateQuerier) CurrentState(ctx context.Context, account domain.Account) (domain.AccountState, error) {
	entries, err := q.entries.ListByAccount(ctx, account.ID)
	if err != nil {
		return domain.AccountState{}, fmt.Errorf("CurrentState: %w", err)
	}

	balance := domain.ZeroMoney(account.Currency)
	for _, e := range entries {
		balance, err = balance.Add(e.Delta)
		if err != nil {
			return domain.AccountState{}, fmt.Errorf("CurrentState: account %d entry %d: %w", account.ID, e.ID, err)
		}
	}

	return domain.AccountState{Account: account, Balance: balance}, nil
}
