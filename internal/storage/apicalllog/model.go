package apicalllog

import (
	"context"
	"time"
)

// ApiCallLog represents an api_call_logs row: one audited inbound API
// call and its outcome. TransactionID is nil for calls that failed
// before a transaction existed.
type ApiCallLog struct {
	ID            int64
	ApiType       string
	Endpoint      string
	RequestBody   string
	ResponseBody  string
	Status        string
	TransactionID *int64
	CalledAt      time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ApiCallLogCreate is the input for inserting a new log row.
type ApiCallLogCreate struct {
	ApiType       string
	Endpoint      string
	RequestBody   string
	ResponseBody  string
	Status        string
	TransactionID *int64
	CalledAt      time.Time
}

// ListFilter specifies filters for listing logs. Nil fields are not
// applied; Date matches the calendar day of called_at.
type ListFilter struct {
	ApiType  *string
	Status   *string
	Date     *time.Time
	Endpoint *string
	Limit    int
}

// IApiCallLogTable defines api_call_logs storage operations. FindByID
// returns (nil, nil) when the id does not exist.
//
//go:generate mockery --name IApiCallLogTable --output mock_IApiCallLogTable.go
type IApiCallLogTable interface {
	Insert(ctx context.Context, create *ApiCallLogCreate) (int64, error)
	FindByID(ctx context.Context, id int64) (*ApiCallLog, error)
	List(ctx context.Context, filter *ListFilter) ([]*ApiCallLog, error)
}
