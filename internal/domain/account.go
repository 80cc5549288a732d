package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is denominated in a single currency fixed at creation.
// Every ledger entry recorded against it carries that currency.
type Account struct {
	ID         int64
	CustomerID uuid.UUID
	Currency   Currency
	CreatedAt  time.Time
}

// Equal reports account identity. Two accounts are the same iff ids match.
func (a Account) Equal(other Account) bool {
	return a.ID == other.ID
}

// AccountState is a derived snapshot of an account's balance at a point in
// time. It is computed by folding the account's ledger entries and is never
// persisted.
type AccountState struct {
	Account Account
	Balance Money
}
