package ledger

import (
	"context"
	"fmt"

	"github.com/corebank/ledger-service/internal/domain"
	"github.com/corebank/ledger-service/internal/logging"
)

// Transferer decides and executes transfers between accounts.
//
// The decision order below is contractual: when a request violates several
// rules at once, the first matching rule determines the returned variant.
type Transferer struct {
	querier *StateQuerier
	creator *Creator
	locks   *accountLocks
}

func NewTransferer(querier *StateQuerier, creator *Creator) *Transferer {
	return &Transferer{
		querier: querier,
		creator: creator,
		locks:   newAccountLocks(),
	}
}

// Transfer moves money from one account to another. Rejections come back as
// Result variants; the error return carries only store faults and
// ledger-integrity failures. The ledger is never left with a half-applied
// transfer: either both entries exist or neither does.
func (t *Transferer) Transfer(ctx context.Context, money domain.Money, from, to domain.Account) (Result, error) {
	if from.Equal(to) {
		return rejected(OutcomeSameAccount), nil
	}
	if money.IsNegative() {
		return rejected(OutcomeNegativeMoney), nil
	}
	if from.Currency != money.Currency {
		return rejected(OutcomeCurrencyMismatch), nil
	}
	if to.Currency != money.Currency {
		return rejected(OutcomeCurrencyMismatch), nil
	}

	// Holding both account locks closes the window between reading the
	// source balance and appending the pair: two concurrent transfers from
	// the same account cannot both pass the sufficiency check.
	unlock := t.locks.lockPair(from.ID, to.ID)
	defer unlock()

	fromState, err := t.querier.CurrentState(ctx, from)
	if err != nil {
		return Result{}, fmt.Errorf("Transfer: %w", err)
	}

	// Zero-amount transfers are a no-op pass-through, not an error. Nothing
	// is written; both current states are reported as-is.
	if money.IsZero() {
		toState, err := t.querier.CurrentState(ctx, to)
		if err != nil {
			return Result{}, fmt.Errorf("Transfer: %w", err)
		}
		return succeeded(fromState, toState), nil
	}

	sufficient, err := fromState.Balance.GreaterThanOrEqual(money)
	if err != nil {
		return Result{}, fmt.Errorf("Transfer: %w", err)
	}
	if !sufficient {
		return rejected(OutcomeInsufficientFunds), nil
	}

	debit, credit, err := t.creator.CreateTransferPair(ctx, money, from, to)
	if err != nil {
		return Result{}, fmt.Errorf("Transfer: %w", err)
	}

	fromState, err = t.querier.CurrentState(ctx, from)
	if err != nil {
		return Result{}, fmt.Errorf("Transfer: %w", err)
	}
	toState, err := t.querier.CurrentState(ctx, to)
	if err != nil {
		return Result{}, fmt.Errorf("Transfer: %w", err)
	}

	logging.FromContext(ctx).Info("transfer completed",
		"from_account", from.ID,
		"to_account", to.ID,
		"amount", money.String(),
		"debit_id", debit.ID,
		"credit_id", credit.ID,
	)

	return succeeded(fromState, toState), nil
}
