package transaction

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Funda-work-inc/smdl-simple-app/internal/audit"
	"github.com/Funda-work-inc/smdl-simple-app/internal/domain"
	"github.com/Funda-work-inc/smdl-simple-app/internal/logging"
	"github.com/Funda-work-inc/smdl-simple-app/internal/operator/actions"
)

const createEndpoint = "POST /api/v1/simple_transactions"

// CreateTransactionHandler handles POST /api/v1/simple_transactions.
type CreateTransactionHandler struct {
	Operator actionProcessor
	Audit    auditRecorder
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(op actionProcessor, recorder auditRecorder) *CreateTransactionHandler {
	return &CreateTransactionHandler{Operator: op, Audit: recorder}
}

// Handler creates a transaction with its items as one atomic unit, then
// records exactly one audit row whose status mirrors the outcome. The
// audit row is written after the response body is produced and after
// the aggregate's transaction has committed or rolled back.
func (h *CreateTransactionHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	ctx := req.Context()

	rawBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, marshalErrors("Unable to read request body"))
		return err
	}

	var in TransactionRequestBody
	if err = json.Unmarshal(rawBody, &in); err != nil {
		// Body never reached the audited boundary: parse failures are
		// rejected without an audit row, like every other pre-dispatch
		// error.
		writeJSON(w, http.StatusBadRequest, marshalErrors("Request body is not valid JSON"))
		return err
	}

	action := &actions.CreateTransactionWithItems{
		Amount: in.Amount,
		Items:  toItemInputs(in.Items),
	}

	stopTimer := logData.AddTiming("createTransactionMs")
	err = h.Operator.Process(ctx, action)
	stopTimer()

	var status int
	var respBody []byte
	var transactionID *int64
	outcome := audit.StatusSuccess

	var verr *domain.ValidationErrors
	switch {
	case err == nil:
		status = http.StatusCreated
		respBody, _ = json.Marshal(TransactionResponseBody{
			ID:      action.Created.ID,
			Amount:  action.Created.Amount,
			Status:  string(action.Created.Status),
			Message: "Transaction created successfully",
		})
		transactionID = &action.Created.ID
		logData.AddData("transactionID", action.Created.ID)
	case errors.As(err, &verr):
		status = http.StatusUnprocessableEntity
		respBody, _ = json.Marshal(ErrorResponseBody{Errors: verr.Messages})
		outcome = audit.StatusError
	default:
		status = http.StatusInternalServerError
		respBody = marshalErrors("Internal server error")
		outcome = audit.StatusError
	}

	h.Audit.Record(ctx, audit.ApiTypeSapi, createEndpoint, string(rawBody), string(respBody), outcome, transactionID)

	writeJSON(w, status, respBody)
	logData.AddData("httpStatus", status)
	return err
}
