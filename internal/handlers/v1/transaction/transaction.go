package transaction

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Funda-work-inc/smdl-simple-app/internal/domain"
	"github.com/Funda-work-inc/smdl-simple-app/internal/operator/actions"
)

// TransactionRequestBody is the request body for creating or updating a
// transaction. Fields are pointers so an omitted value reaches domain
// validation as blank instead of failing at decode time.
type TransactionRequestBody struct {
	Amount *int              `json:"amount"`
	Items  []ItemRequestBody `json:"items"`
}

// ItemRequestBody is one line item in a request body.
type ItemRequestBody struct {
	ItemName  *string `json:"item_name"`
	ItemCount *int    `json:"item_count"`
	ItemPrice *int    `json:"item_price"`
}

// TransactionResponseBody is the success payload.
type TransactionResponseBody struct {
	ID      int64  `json:"id"`
	Amount  int    `json:"amount"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponseBody carries validation messages as a flat list.
type ErrorResponseBody struct {
	Errors []string `json:"errors"`
}

// actionProcessor runs an action inside a storage transaction and
// returns its final committed-or-rolled-back outcome.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// auditRecorder records one api_call_logs row per audited call.
type auditRecorder interface {
	Record(ctx context.Context, apiType, endpoint, requestBody, responseBody, status string, transactionID *int64)
}

func toItemInputs(items []ItemRequestBody) []domain.ItemInput {
	inputs := make([]domain.ItemInput, len(items))
	for i, item := range items {
		inputs[i] = domain.ItemInput{
			Name:  item.ItemName,
			Count: item.ItemCount,
			Price: item.ItemPrice,
		}
	}
	return inputs
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func marshalErrors(messages ...string) []byte {
	body, _ := json.Marshal(ErrorResponseBody{Errors: messages})
	return body
}
