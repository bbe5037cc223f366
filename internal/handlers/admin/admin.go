package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Funda-work-inc/smdl-simple-app/internal/operator/actions"
	"github.com/Funda-work-inc/smdl-simple-app/internal/service"
)

const dateParamLayout = "2006-01-02"

// transactionReader is the read side used by the admin screens.
type transactionReader interface {
	FindTransaction(ctx context.Context, id int64) (*service.Transaction, error)
	ListTransactions(ctx context.Context, filter *service.TransactionFilter) ([]service.Transaction, error)
}

// actionProcessor runs a write action inside a storage transaction.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// apiCallLogReader is the read side for the audit-log screens.
type apiCallLogReader interface {
	FindApiCallLog(ctx context.Context, id int64) (*service.ApiCallLog, error)
	ListApiCallLogs(ctx context.Context, filter *service.ApiCallLogFilter) ([]service.ApiCallLog, error)
}

// Transaction is the admin response model for a transaction.
type Transaction struct {
	ID                   int64  `json:"id"`
	Amount               int    `json:"amount"`
	RegistrationDatetime string `json:"registration_datetime"`
	Status               string `json:"status"`
	Items                []Item `json:"items"`
}

// Item is the admin response model for one line item.
type Item struct {
	ID        int64  `json:"id"`
	ItemName  string `json:"item_name"`
	ItemCount int    `json:"item_count"`
	ItemPrice int    `json:"item_price"`
}

// ApiCallLog is the admin response model for an audit record.
type ApiCallLog struct {
	ID            int64  `json:"id"`
	ApiType       string `json:"api_type"`
	Endpoint      string `json:"endpoint"`
	RequestBody   string `json:"request_body"`
	ResponseBody  string `json:"response_body"`
	Status        string `json:"status"`
	TransactionID *int64 `json:"simple_transaction_id"`
	CalledAt      string `json:"called_at"`
}

// ErrorResponseBody carries error messages as a flat list.
type ErrorResponseBody struct {
	Errors []string `json:"errors"`
}

func convertTransaction(tr *service.Transaction) Transaction {
	converted := Transaction{
		ID:                   tr.ID,
		Amount:               tr.Amount,
		RegistrationDatetime: tr.RegistrationDatetime.Format(time.RFC3339),
		Status:               tr.Status,
		Items:                make([]Item, len(tr.Items)),
	}
	for i, item := range tr.Items {
		converted.Items[i] = Item{
			ID:        item.ID,
			ItemName:  item.Name,
			ItemCount: item.Count,
			ItemPrice: item.Price,
		}
	}
	return converted
}

func convertApiCallLog(row *service.ApiCallLog) ApiCallLog {
	return ApiCallLog{
		ID:            row.ID,
		ApiType:       row.ApiType,
		Endpoint:      row.Endpoint,
		RequestBody:   row.RequestBody,
		ResponseBody:  row.ResponseBody,
		Status:        row.Status,
		TransactionID: row.TransactionID,
		CalledAt:      row.CalledAt.Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeErrors(w http.ResponseWriter, status int, messages ...string) {
	writeJSON(w, status, ErrorResponseBody{Errors: messages})
}
