package service

import "time"

// ApiCallLog represents an audit record in the service layer.
type ApiCallLog struct {
	ID            int64
	ApiType       string
	Endpoint      string
	RequestBody   string
	ResponseBody  string
	Status        string
	TransactionID *int64
	CalledAt      time.Time
}

// ApiCallLogFilter narrows a log listing. Nil fields are not applied;
// Endpoint matches as a substring, Date matches the calendar day of
// called_at.
type ApiCallLogFilter struct {
	ApiType  *string
	Status   *string
	Date     *time.Time
	Endpoint *string
}
