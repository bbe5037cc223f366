package transaction

import (
	"context"
	"database/sql"
)

var _ ITransactionWriter = (*Writer)(nil)

// Writer performs simple_transactions writes inside a storage transaction.
// Every mutation of a transaction row and its item set goes through one
// Writer so the whole change commits or rolls back as a unit.
type Writer struct {
	tx *sql.Tx
}

func NewWriter(tx *sql.Tx) *Writer {
	return &Writer{tx: tx}
}

// FindByIDForUpdate retrieves a transaction with its items, locking the
// row for the remainder of the transaction.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id int64) (*Transaction, error) {
	return findByID(ctx, w.tx, id, " FOR UPDATE")
}

// Insert creates a new transaction row and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (int64, error) {
	var id int64
	err := w.tx.QueryRowContext(ctx,
		"INSERT INTO simple_transactions (amount, registration_datetime, status, created_at, updated_at)"+
			" VALUES ($1, $2, $3, now(), now()) RETURNING id",
		create.Amount, create.RegistrationDatetime, create.Status,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// InsertItems creates the item rows for a transaction, preserving input order.
func (w *Writer) InsertItems(ctx context.Context, transactionID int64, items []ItemCreate) error {
	for _, item := range items {
		_, err := w.tx.ExecContext(ctx,
			"INSERT INTO simple_transaction_items (simple_transaction_id, item_name, item_count, item_price, created_at, updated_at)"+
				" VALUES ($1, $2, $3, $4, now(), now())",
			transactionID, item.Name, item.Count, item.Price)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteItems removes every item owned by the given transaction.
func (w *Writer) DeleteItems(ctx context.Context, transactionID int64) error {
	_, err := w.tx.ExecContext(ctx,
		"DELETE FROM simple_transaction_items WHERE simple_transaction_id = $1", transactionID)
	return err
}

// UpdateAmount sets the amount for a transaction.
func (w *Writer) UpdateAmount(ctx context.Context, id int64, amount int) error {
	_, err := w.tx.ExecContext(ctx,
		"UPDATE simple_transactions SET amount = $2, updated_at = now() WHERE id = $1", id, amount)
	return err
}

// UpdateStatus sets the lifecycle status for a transaction.
func (w *Writer) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := w.tx.ExecContext(ctx,
		"UPDATE simple_transactions SET status = $2, updated_at = now() WHERE id = $1", id, status)
	return err
}
