package ledger

import "github.com/corebank/ledger-service/internal/domain"

// Outcome discriminates the result of a transfer request. Rejections are
// expected, frequent outcomes; callers switch on the variant instead of
// unwrapping errors. Infrastructure faults travel on the separate error
// return of Transfer and are never an Outcome.
type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeSameAccount       Outcome = "same_account"
	OutcomeInsufficientFunds Outcome = "insufficient_funds"
	OutcomeNegativeMoney     Outcome = "negative_money"
	OutcomeCurrencyMismatch  Outcome = "currency_mismatch"
)

// Result is the discriminated outcome of a transfer. From and To carry the
// post-decision account states and are populated only when Outcome is
// OutcomeSuccess.
type Result struct {
	Outcome Outcome
	From    *domain.AccountState
	To      *domain.AccountState
}

func rejected(outcome Outcome) Result {
	return Result{Outcome: outcome}
}

func succeeded(from, to domain.AccountState) Result {
	return Result{Outcome: OutcomeSuccess, From: &from, To: &to}
}
