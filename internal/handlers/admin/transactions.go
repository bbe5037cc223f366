package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Funda-work-inc/smdl-simple-app/internal/domain"
	"github.com/Funda-work-inc/smdl-simple-app/internal/logging"
	"github.com/Funda-work-inc/smdl-simple-app/internal/operator/actions"
	"github.com/Funda-work-inc/smdl-simple-app/internal/service"
)

// TransactionsHandler serves the admin transaction screens: filtered
// listing, detail, amount+items replacement, cancel and soft delete.
// The write operations reuse the same atomic actions as the public API;
// admin calls are not audited, matching the API-only audit boundary.
type TransactionsHandler struct {
	Transactions transactionReader
	Operator     actionProcessor
}

func NewTransactionsHandler(reader transactionReader, op actionProcessor) *TransactionsHandler {
	return &TransactionsHandler{Transactions: reader, Operator: op}
}

// List handles GET /admin/simple_transactions with optional id,
// date_from and date_to query filters.
func (h *TransactionsHandler) List(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	filter := &service.TransactionFilter{}

	if idParam := req.URL.Query().Get("id"); idParam != "" {
		id, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			writeErrors(w, http.StatusBadRequest, "id must be an integer")
			return err
		}
		filter.ID = &id
	}
	if fromParam := req.URL.Query().Get("date_from"); fromParam != "" {
		from, err := time.Parse(dateParamLayout, fromParam)
		if err != nil {
			writeErrors(w, http.StatusBadRequest, "date_from must be formatted YYYY-MM-DD")
			return err
		}
		filter.DateFrom = &from
	}
	if toParam := req.URL.Query().Get("date_to"); toParam != "" {
		day, err := time.Parse(dateParamLayout, toParam)
		if err != nil {
			writeErrors(w, http.StatusBadRequest, "date_to must be formatted YYYY-MM-DD")
			return err
		}
		// Inclusive upper bound: the whole given day.
		to := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.DateTo = &to
	}

	stopTimer := logData.AddTiming("listTransactionsMs")
	transactions, err := h.Transactions.ListTransactions(req.Context(), filter)
	stopTimer()
	if err != nil {
		writeErrors(w, http.StatusInternalServerError, "Internal server error")
		return err
	}
	logData.AddData("transactionCount", len(transactions))

	converted := make([]Transaction, len(transactions))
	for i := range transactions {
		converted[i] = convertTransaction(&transactions[i])
	}
	writeJSON(w, http.StatusOK, map[string][]Transaction{"transactions": converted})
	return nil
}

// Show handles GET /admin/simple_transactions/{id}.
func (h *TransactionsHandler) Show(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	tr, err := h.findByPathID(w, req)
	if tr == nil {
		return err
	}
	writeJSON(w, http.StatusOK, convertTransaction(tr))
	return nil
}

// Update handles PATCH /admin/simple_transactions/{id}: the same
// discard-and-rebuild replacement of amount and items as the API path.
func (h *TransactionsHandler) Update(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	tr, err := h.findByPathID(w, req)
	if tr == nil {
		return err
	}

	var in struct {
		Amount *int `json:"amount"`
		Items  []struct {
			ItemName  *string `json:"item_name"`
			ItemCount *int    `json:"item_count"`
			ItemPrice *int    `json:"item_price"`
		} `json:"items"`
	}
	if err = json.NewDecoder(req.Body).Decode(&in); err != nil {
		writeErrors(w, http.StatusBadRequest, "Request body is not valid JSON")
		return err
	}

	items := make([]domain.ItemInput, len(in.Items))
	for i, item := range in.Items {
		items[i] = domain.ItemInput{Name: item.ItemName, Count: item.ItemCount, Price: item.ItemPrice}
	}

	action := &actions.UpdateTransactionWithItems{ID: tr.ID, Amount: in.Amount, Items: items}
	err = h.process(w, req, action)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, convertDomainTransaction(action.Updated))
	return nil
}

// Cancel handles PATCH /admin/simple_transactions/{id}/cancel. The move
// applies unconditionally, even to already-terminal transactions.
func (h *TransactionsHandler) Cancel(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	tr, err := h.findByPathID(w, req)
	if tr == nil {
		return err
	}

	action := &actions.CancelTransaction{ID: tr.ID}
	err = h.process(w, req, action)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, convertDomainTransaction(action.Cancelled))
	return nil
}

// Destroy handles DELETE /admin/simple_transactions/{id}. Destruction
// is logical only: the row stays, status becomes deleted.
func (h *TransactionsHandler) Destroy(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	tr, err := h.findByPathID(w, req)
	if tr == nil {
		return err
	}

	action := &actions.SoftDeleteTransaction{ID: tr.ID}
	err = h.process(w, req, action)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, convertDomainTransaction(action.Deleted))
	return nil
}

// findByPathID resolves {id} and loads the transaction, writing the
// error response itself. A nil transaction means the response is done.
func (h *TransactionsHandler) findByPathID(w http.ResponseWriter, req *http.Request) (*service.Transaction, error) {
	idParam := mux.Vars(req)["id"]
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		writeErrors(w, http.StatusNotFound, "Transaction not found")
		return nil, err
	}

	tr, err := h.Transactions.FindTransaction(req.Context(), id)
	if err != nil {
		writeErrors(w, http.StatusInternalServerError, "Internal server error")
		return nil, err
	}
	if tr == nil {
		writeErrors(w, http.StatusNotFound, "Transaction not found")
		return nil, domain.ErrTransactionNotFound
	}
	return tr, nil
}

// process runs the action and writes failure responses; a nil return
// means the caller still owes the success response.
func (h *TransactionsHandler) process(w http.ResponseWriter, req *http.Request, action actions.IAction) error {
	err := h.Operator.Process(req.Context(), action)
	if err == nil {
		return nil
	}

	var verr *domain.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrTransactionNotFound):
		writeErrors(w, http.StatusNotFound, "Transaction not found")
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponseBody{Errors: verr.Messages})
	default:
		writeErrors(w, http.StatusInternalServerError, "Internal server error")
	}
	return err
}

func convertDomainTransaction(tr *domain.Transaction) Transaction {
	converted := Transaction{
		ID:                   tr.ID,
		Amount:               tr.Amount,
		RegistrationDatetime: tr.RegistrationDatetime.Format(time.RFC3339),
		Status:               string(tr.Status),
		Items:                make([]Item, len(tr.Items)),
	}
	for i, item := range tr.Items {
		converted.Items[i] = Item{
			ItemName:  item.Name,
			ItemCount: item.Count,
			ItemPrice: item.Price,
		}
	}
	return converted
}
