package actions

import (
	"context"
	"time"

	"github.com/Funda-work-inc/smdl-simple-app/internal/domain"
	"github.com/Funda-work-inc/smdl-simple-app/internal/storage"
	"github.com/Funda-work-inc/smdl-simple-app/internal/storage/transaction"
)

// CreateTransactionWithItems creates a transaction and its item rows as
// one unit. Validation happens before any write, so a failing input
// leaves nothing to roll back. On success Created holds the persisted
// aggregate; the operator guarantees it is set before Process returns.
type CreateTransactionWithItems struct {
	Amount *int
	Items  []domain.ItemInput

	Created *domain.Transaction
}

func (a *CreateTransactionWithItems) Perform(ctx context.Context, writer *storage.Writer) error {
	tr, err := domain.NewTransaction(a.Amount, a.Items, time.Now())
	if err != nil {
		return err
	}

	id, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		Amount:               tr.Amount,
		RegistrationDatetime: tr.RegistrationDatetime,
		Status:               string(tr.Status),
	})
	if err != nil {
		return err
	}

	err = writer.Transactions.InsertItems(ctx, id, itemCreates(tr.Items))
	if err != nil {
		return err
	}

	tr.ID = id
	a.Created = tr
	return nil
}

func itemCreates(items []domain.Item) []transaction.ItemCreate {
	creates := make([]transaction.ItemCreate, len(items))
	for i, item := range items {
		creates[i] = transaction.ItemCreate{
			Name:  item.Name,
			Count: item.Count,
			Price: item.Price,
		}
	}
	return creates
}
