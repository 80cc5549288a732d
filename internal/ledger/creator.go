package ledger

import (
	"context"
	"fmt"

	"github.com/corebank/ledger-service/internal/domain"
)

type pairAppender interface {
	AddPair(ctx context.Context, debit, credit domain.Transaction) (domain.Transaction, domain.Transaction, error)
}

// Creator appends the two linked entries of a transfer. It performs no
// business validation; callers are responsible for currency compatibility
// and fund sufficiency. The store's AddPair primitive guarantees the pair
// is observed as a unit.
type Creator struct {
	entries pairAppender
}

func NewCreator(entries pairAppender) *Creator {
	return &Creator{entries: entries}
}

// CreateTransferPair records a debit of money on from and a credit of equal
// magnitude on to. The returned entries carry store-assigned ids and
// reference each other via CounterpartID.
func (c *Creator) CreateTransferPair(ctx context.Context, money domain.Money, from, to domain.Account) (domain.Transaction, domain.Transaction, error) {
	debit := domain.Transaction{
		AccountID: from.ID,
		Delta:     money.Negate(),
	}
	credit := domain.Transaction{
		AccountID: to.ID,
		Delta:     money,
	}

	storedDebit, storedCredit, err := c.entries.AddPair(ctx, debit, credit)
	if err != nil {
		return domain.Transaction{}, domain.Transaction{}, fmt.Errorf("CreateTransferPair: %w", err)
	}
	return storedDebit, storedCredit, nil
}
