package actions

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Funda-work-inc/smdl-simple-app/internal/storage"
	"github.com/Funda-work-inc/smdl-simple-app/internal/storage/transaction"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// mockTransactionWriter is a mock for transaction.ITransactionWriter.
type mockTransactionWriter struct {
	mock.Mock
}

func (m *mockTransactionWriter) FindByIDForUpdate(ctx context.Context, id int64) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *mockTransactionWriter) Insert(ctx context.Context, create *transaction.TransactionCreate) (int64, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTransactionWriter) InsertItems(ctx context.Context, transactionID int64, items []transaction.ItemCreate) error {
	args := m.Called(ctx, transactionID, items)
	return args.Error(0)
}

func (m *mockTransactionWriter) DeleteItems(ctx context.Context, transactionID int64) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *mockTransactionWriter) UpdateAmount(ctx context.Context, id int64, amount int) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *mockTransactionWriter) UpdateStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// newTestWriter builds a storage.Writer whose table is mocked. Perform
// never touches the underlying database transaction, so the zero tx is
// fine here.
func newTestWriter(transactions *mockTransactionWriter) *storage.Writer {
	return &storage.Writer{Transactions: transactions}
}
