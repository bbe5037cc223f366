package actions

import (
	"context"

	"github.com/Funda-work-inc/smdl-simple-app/internal/domain"
	"github.com/Funda-work-inc/smdl-simple-app/internal/storage"
)

// CancelTransaction sets status to cancelled. The move is applied
// unconditionally, mirroring the aggregate: cancelling an already
// cancelled or deleted transaction succeeds and yields the same state.
type CancelTransaction struct {
	ID int64

	Cancelled *domain.Transaction
}

func (a *CancelTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	tr, err := changeStatus(ctx, writer, a.ID, (*domain.Transaction).Cancel)
	if err != nil {
		return err
	}
	a.Cancelled = tr
	return nil
}

// SoftDeleteTransaction sets status to deleted. Transactions are never
// physically removed, so this is the only destruction path.
type SoftDeleteTransaction struct {
	ID int64

	Deleted *domain.Transaction
}

func (a *SoftDeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	tr, err := changeStatus(ctx, writer, a.ID, (*domain.Transaction).SoftDelete)
	if err != nil {
		return err
	}
	a.Deleted = tr
	return nil
}

func changeStatus(ctx context.Context, writer *storage.Writer, id int64, move func(*domain.Transaction)) (*domain.Transaction, error) {
	row, err := writer.Transactions.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrTransactionNotFound
	}

	tr := &domain.Transaction{
		ID:                   row.ID,
		Amount:               row.Amount,
		RegistrationDatetime: row.RegistrationDatetime,
		Status:               domain.TransactionStatus(row.Status),
	}
	for _, item := range row.Items {
		tr.Items = append(tr.Items, domain.Item{Name: item.Name, Count: item.Count, Price: item.Price})
	}
	move(tr)

	if err = writer.Transactions.UpdateStatus(ctx, tr.ID, string(tr.Status)); err != nil {
		return nil, err
	}
	return tr, nil
}
