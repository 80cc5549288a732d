package domain

import "time"

// Transaction is an immutable, append-only ledger entry: a signed balance
// change on one account. A transfer produces exactly two entries, one
// negative on the source and one positive of equal magnitude on the
// destination, cross-referencing each other via CounterpartID. Single-leg
// entries (deposits) have no counterpart.
//
// IDs are assigned by the store and are unique and monotonically increasing.
type Transaction struct {
	ID            int64
	CounterpartID *int64
	AccountID     int64
	Delta         Money
	CreatedAt     time.Time
}
