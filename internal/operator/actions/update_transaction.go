package actions

import (
	"context"

	"github.com/Funda-work-inc/smdl-simple-app/internal/domain"
	"github.com/Funda-work-inc/smdl-simple-app/internal/storage"
)

// UpdateTransactionWithItems replaces a transaction's amount and its
// entire item set in one unit: the existing items are discarded and
// rebuilt from Items, never merged. The row is locked for the duration
// so no reader inside a transaction observes a half-replaced set. On
// validation failure nothing is written and the stored state is
// untouched.
type UpdateTransactionWithItems struct {
	ID     int64
	Amount *int
	Items  []domain.ItemInput

	Updated *domain.Transaction
}

func (a *UpdateTransactionWithItems) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := writer.Transactions.FindByIDForUpdate(ctx, a.ID)
	if err != nil {
		return err
	}
	if row == nil {
		return domain.ErrTransactionNotFound
	}

	tr := &domain.Transaction{
		ID:                   row.ID,
		Amount:               row.Amount,
		RegistrationDatetime: row.RegistrationDatetime,
		Status:               domain.TransactionStatus(row.Status),
	}
	if err = tr.ReplaceItems(a.Amount, a.Items); err != nil {
		return err
	}

	if err = writer.Transactions.UpdateAmount(ctx, tr.ID, tr.Amount); err != nil {
		return err
	}
	if err = writer.Transactions.DeleteItems(ctx, tr.ID); err != nil {
		return err
	}
	if err = writer.Transactions.InsertItems(ctx, tr.ID, itemCreates(tr.Items)); err != nil {
		return err
	}

	a.Updated = tr
	return nil
}
