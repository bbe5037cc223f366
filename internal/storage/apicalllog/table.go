package apicalllog

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
)

const selectColumns = "id, api_type, endpoint, request_body, response_body, status, simple_transaction_id, called_at, created_at, updated_at"

var _ IApiCallLogTable = (*ApiCallLogsTable)(nil)

// ApiCallLogsTable provides access to the api_call_logs table. The audit
// insert runs outside the aggregate write transaction so a logging
// failure can never roll back the write it records.
type ApiCallLogsTable struct {
	db *sql.DB
}

func NewApiCallLogsTable(db *sql.DB) *ApiCallLogsTable {
	return &ApiCallLogsTable{db: db}
}

// Insert creates a new log row and returns its generated ID.
func (t *ApiCallLogsTable) Insert(ctx context.Context, create *ApiCallLogCreate) (int64, error) {
	var id int64
	err := t.db.QueryRowContext(ctx,
		"INSERT INTO api_call_logs (api_type, endpoint, request_body, response_body, status, simple_transaction_id, called_at, created_at, updated_at)"+
			" VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now()) RETURNING id",
		create.ApiType, create.Endpoint, create.RequestBody, create.ResponseBody,
		create.Status, create.TransactionID, create.CalledAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// FindByID retrieves a log row by primary key.
func (t *ApiCallLogsTable) FindByID(ctx context.Context, id int64) (*ApiCallLog, error) {
	row := &ApiCallLog{}
	err := t.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM api_call_logs WHERE id = $1", id,
	).Scan(&row.ID, &row.ApiType, &row.Endpoint, &row.RequestBody, &row.ResponseBody,
		&row.Status, &row.TransactionID, &row.CalledAt, &row.CreatedAt, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// List returns log rows matching the filter, most recent call first.
func (t *ApiCallLogsTable) List(ctx context.Context, filter *ListFilter) ([]*ApiCallLog, error) {
	query := "SELECT " + selectColumns + " FROM api_call_logs"
	var args []any
	var where []string

	limit := 0
	if filter != nil {
		if filter.ApiType != nil {
			args = append(args, *filter.ApiType)
			where = append(where, "api_type = $"+strconv.Itoa(len(args)))
		}
		if filter.Status != nil {
			args = append(args, *filter.Status)
			where = append(where, "status = $"+strconv.Itoa(len(args)))
		}
		if filter.Date != nil {
			args = append(args, *filter.Date)
			where = append(where, "called_at::date = $"+strconv.Itoa(len(args))+"::date")
		}
		if filter.Endpoint != nil {
			args = append(args, "%"+*filter.Endpoint+"%")
			where = append(where, "endpoint LIKE $"+strconv.Itoa(len(args)))
		}
		limit = filter.Limit
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY called_at DESC, id DESC"
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*ApiCallLog
	for rows.Next() {
		row := &ApiCallLog{}
		err = rows.Scan(&row.ID, &row.ApiType, &row.Endpoint, &row.RequestBody, &row.ResponseBody,
			&row.Status, &row.TransactionID, &row.CalledAt, &row.CreatedAt, &row.UpdatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
