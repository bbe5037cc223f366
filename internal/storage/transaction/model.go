package transaction

import (
	"context"
	"time"
)

// Transaction represents a simple_transactions row with its items loaded.
type Transaction struct {
	ID                   int64
	Amount               int
	RegistrationDatetime time.Time
	Status               string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Items                []Item
}

// Item represents a simple_transaction_items row.
type Item struct {
	ID            int64
	TransactionID int64
	Name          string
	Count         int
	Price         int
}

// TransactionCreate is the input for inserting a new transaction row.
type TransactionCreate struct {
	Amount               int
	RegistrationDatetime time.Time
	Status               string
}

// ItemCreate is the input for inserting one item row.
type ItemCreate struct {
	Name  string
	Count int
	Price int
}

// ListFilter specifies filters for listing transactions. Nil fields are
// not applied.
type ListFilter struct {
	ID       *int64
	DateFrom *time.Time
	DateTo   *time.Time
}

// ITransactionTable defines read access outside a write transaction.
// FindByID returns (nil, nil) when the id does not exist.
//
//go:generate mockery --name ITransactionTable --output mock_ITransactionTable.go
type ITransactionTable interface {
	FindByID(ctx context.Context, id int64) (*Transaction, error)
	List(ctx context.Context, filter *ListFilter) ([]*Transaction, error)
}

// ITransactionWriter defines the write operations available inside a
// storage transaction. FindByIDForUpdate returns (nil, nil) when the id
// does not exist.
//
//go:generate mockery --name ITransactionWriter --output mock_ITransactionWriter.go
type ITransactionWriter interface {
	FindByIDForUpdate(ctx context.Context, id int64) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (int64, error)
	InsertItems(ctx context.Context, transactionID int64, items []ItemCreate) error
	DeleteItems(ctx context.Context, transactionID int64) error
	UpdateAmount(ctx context.Context, id int64, amount int) error
	UpdateStatus(ctx context.Context, id int64, status string) error
}
