package storage

import (
	"database/sql"

	"github.com/Funda-work-inc/smdl-simple-app/internal/storage/transaction"
)

// Writer bundles the per-table writers for one database transaction.
type Writer struct {
	tx           *sql.Tx
	Transactions transaction.ITransactionWriter
}

func NewWriter(tx *sql.Tx) Writer {
	return Writer{
		tx:           tx,
		Transactions: transaction.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit()
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback()
}
