package service

import (
	"context"

	"github.com/Funda-work-inc/smdl-simple-app/internal/storage"
	"github.com/Funda-work-inc/smdl-simple-app/internal/storage/transaction"
)

// TransactionService handles transaction reads. All writes go through
// the operator so they run inside an explicit storage transaction.
type TransactionService struct {
	storage *storage.Storage
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage) *TransactionService {
	return &TransactionService{storage: store}
}

// FindTransaction returns one transaction with its items, or nil when
// the id does not exist.
func (s *TransactionService) FindTransaction(ctx context.Context, id int64) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return convertTransaction(row), nil
}

// ListTransactions returns transactions matching the filter, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, filter *TransactionFilter) ([]Transaction, error) {
	var storageFilter *transaction.ListFilter
	if filter != nil {
		storageFilter = &transaction.ListFilter{
			ID:       filter.ID,
			DateFrom: filter.DateFrom,
			DateTo:   filter.DateTo,
		}
	}

	rows, err := s.storage.Transactions.List(ctx, storageFilter)
	if err != nil {
		return nil, err
	}

	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = *convertTransaction(row)
	}
	return converted, nil
}

func convertTransaction(row *transaction.Transaction) *Transaction {
	converted := &Transaction{
		ID:                   row.ID,
		Amount:               row.Amount,
		RegistrationDatetime: row.RegistrationDatetime,
		Status:               row.Status,
		Items:                make([]Item, len(row.Items)),
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}
	for i, item := range row.Items {
		converted.Items[i] = Item{
			ID:    item.ID,
			Name:  item.Name,
			Count: item.Count,
			Price: item.Price,
		}
	}
	return converted
}
