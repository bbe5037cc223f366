package transaction

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/lib/pq"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const selectColumns = "id, amount, registration_datetime, status, created_at, updated_at"

var _ ITransactionTable = (*TransactionsTable)(nil)

// TransactionsTable provides read access to the simple_transactions table.
type TransactionsTable struct {
	exec queryer
}

func NewTransactionsTable(db *sql.DB) *TransactionsTable {
	return &TransactionsTable{exec: db}
}

// FindByID retrieves a transaction with its items by primary key.
func (t *TransactionsTable) FindByID(ctx context.Context, id int64) (*Transaction, error) {
	return findByID(ctx, t.exec, id, "")
}

// List returns transactions matching the filter with their items loaded,
// newest first. Nil filter returns all.
func (t *TransactionsTable) List(ctx context.Context, filter *ListFilter) ([]*Transaction, error) {
	query := "SELECT " + selectColumns + " FROM simple_transactions"
	var args []any
	var where []string

	if filter != nil {
		if filter.ID != nil {
			args = append(args, *filter.ID)
			where = append(where, "id = $"+strconv.Itoa(len(args)))
		}
		if filter.DateFrom != nil {
			args = append(args, *filter.DateFrom)
			where = append(where, "registration_datetime >= $"+strconv.Itoa(len(args)))
		}
		if filter.DateTo != nil {
			args = append(args, *filter.DateTo)
			where = append(where, "registration_datetime <= $"+strconv.Itoa(len(args)))
		}
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := t.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Transaction
	for rows.Next() {
		row := &Transaction{}
		err = rows.Scan(&row.ID, &row.Amount, &row.RegistrationDatetime, &row.Status, &row.CreatedAt, &row.UpdatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = loadItems(ctx, t.exec, result); err != nil {
		return nil, err
	}
	return result, nil
}

func findByID(ctx context.Context, exec queryer, id int64, suffix string) (*Transaction, error) {
	row := &Transaction{}
	err := exec.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM simple_transactions WHERE id = $1"+suffix, id,
	).Scan(&row.ID, &row.Amount, &row.RegistrationDatetime, &row.Status, &row.CreatedAt, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err = loadItems(ctx, exec, []*Transaction{row}); err != nil {
		return nil, err
	}
	return row, nil
}

// loadItems attaches the item rows for every given transaction in one query.
func loadItems(ctx context.Context, exec queryer, transactions []*Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	ids := make([]int64, len(transactions))
	byID := make(map[int64]*Transaction, len(transactions))
	for i, tr := range transactions {
		ids[i] = tr.ID
		byID[tr.ID] = tr
	}

	rows, err := exec.QueryContext(ctx,
		"SELECT id, simple_transaction_id, item_name, item_count, item_price"+
			" FROM simple_transaction_items WHERE simple_transaction_id = ANY($1) ORDER BY id",
		pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		item := Item{}
		err = rows.Scan(&item.ID, &item.TransactionID, &item.Name, &item.Count, &item.Price)
		if err != nil {
			return err
		}
		owner := byID[item.TransactionID]
		owner.Items = append(owner.Items, item)
	}
	return rows.Err()
}
