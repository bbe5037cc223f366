package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Funda-work-inc/smdl-simple-app/internal/audit"
	"github.com/Funda-work-inc/smdl-simple-app/internal/domain"
	"github.com/Funda-work-inc/smdl-simple-app/internal/logging"
	"github.com/Funda-work-inc/smdl-simple-app/internal/operator/actions"
	"github.com/Funda-work-inc/smdl-simple-app/internal/service"
)

// transactionFinder is the read-side lookup used before the audited
// write path begins.
type transactionFinder interface {
	FindTransaction(ctx context.Context, id int64) (*service.Transaction, error)
}

// UpdateTransactionHandler handles PUT /api/v1/simple_transactions/{id}.
type UpdateTransactionHandler struct {
	Transactions transactionFinder
	Operator     actionProcessor
	Audit        auditRecorder
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(finder transactionFinder, op actionProcessor, recorder auditRecorder) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{Transactions: finder, Operator: op, Audit: recorder}
}

// Handler replaces a transaction's amount and item set atomically. The
// id lookup happens before the audited call path: an unknown id is a
// 404 pass-through and produces no audit row. Every other outcome is
// recorded exactly once.
func (h *UpdateTransactionHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	ctx := req.Context()

	idParam := mux.Vars(req)["id"]
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, marshalErrors("Transaction not found"))
		return err
	}
	logData.AddData("transactionID", id)

	existing, err := h.Transactions.FindTransaction(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, marshalErrors("Internal server error"))
		return err
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, marshalErrors("Transaction not found"))
		return domain.ErrTransactionNotFound
	}

	rawBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, marshalErrors("Unable to read request body"))
		return err
	}

	var in TransactionRequestBody
	if err = json.Unmarshal(rawBody, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, marshalErrors("Request body is not valid JSON"))
		return err
	}

	action := &actions.UpdateTransactionWithItems{
		ID:     id,
		Amount: in.Amount,
		Items:  toItemInputs(in.Items),
	}

	stopTimer := logData.AddTiming("updateTransactionMs")
	err = h.Operator.Process(ctx, action)
	stopTimer()

	if errors.Is(err, domain.ErrTransactionNotFound) {
		// Deleted between the lookup and the action; still outside the
		// audited boundary.
		writeJSON(w, http.StatusNotFound, marshalErrors("Transaction not found"))
		return err
	}

	endpoint := "PUT /api/v1/simple_transactions/" + idParam

	var status int
	var respBody []byte
	var transactionID *int64
	outcome := audit.StatusSuccess

	var verr *domain.ValidationErrors
	switch {
	case err == nil:
		status = http.StatusOK
		respBody, _ = json.Marshal(TransactionResponseBody{
			ID:      action.Updated.ID,
			Amount:  action.Updated.Amount,
			Status:  string(action.Updated.Status),
			Message: "Transaction updated successfully",
		})
		transactionID = &action.Updated.ID
	case errors.As(err, &verr):
		status = http.StatusUnprocessableEntity
		respBody, _ = json.Marshal(ErrorResponseBody{Errors: verr.Messages})
		outcome = audit.StatusError
		transactionID = &id
	default:
		status = http.StatusInternalServerError
		respBody = marshalErrors("Internal server error")
		outcome = audit.StatusError
		transactionID = &id
	}

	h.Audit.Record(ctx, audit.ApiTypeSapi, endpoint, string(rawBody), string(respBody), outcome, transactionID)

	writeJSON(w, status, respBody)
	logData.AddData("httpStatus", status)
	return err
}
