package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Funda-work-inc/smdl-simple-app/internal/logging"
	"github.com/Funda-work-inc/smdl-simple-app/internal/service"
)

// ApiCallLogsHandler serves the admin audit-log screens. Logs are
// read-only here: nothing in the system ever mutates or deletes them.
type ApiCallLogsHandler struct {
	ApiCallLogs apiCallLogReader
}

func NewApiCallLogsHandler(reader apiCallLogReader) *ApiCallLogsHandler {
	return &ApiCallLogsHandler{ApiCallLogs: reader}
}

// List handles GET /admin/api_call_logs with optional api_type, status,
// date and endpoint (substring) query filters, capped to the most
// recent hundred calls.
func (h *ApiCallLogsHandler) List(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	filter := &service.ApiCallLogFilter{}

	if apiType := req.URL.Query().Get("api_type"); apiType != "" {
		filter.ApiType = &apiType
	}
	if status := req.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if dateParam := req.URL.Query().Get("date"); dateParam != "" {
		date, err := time.Parse(dateParamLayout, dateParam)
		if err != nil {
			writeErrors(w, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
			return err
		}
		filter.Date = &date
	}
	if endpoint := req.URL.Query().Get("endpoint"); endpoint != "" {
		filter.Endpoint = &endpoint
	}

	stopTimer := logData.AddTiming("listApiCallLogsMs")
	logs, err := h.ApiCallLogs.ListApiCallLogs(req.Context(), filter)
	stopTimer()
	if err != nil {
		writeErrors(w, http.StatusInternalServerError, "Internal server error")
		return err
	}
	logData.AddData("apiCallLogCount", len(logs))

	converted := make([]ApiCallLog, len(logs))
	for i := range logs {
		converted[i] = convertApiCallLog(&logs[i])
	}
	writeJSON(w, http.StatusOK, map[string][]ApiCallLog{"api_call_logs": converted})
	return nil
}

// Show handles GET /admin/api_call_logs/{id}.
func (h *ApiCallLogsHandler) Show(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	idParam := mux.Vars(req)["id"]
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		writeErrors(w, http.StatusNotFound, "Api call log not found")
		return err
	}

	row, err := h.ApiCallLogs.FindApiCallLog(req.Context(), id)
	if err != nil {
		writeErrors(w, http.StatusInternalServerError, "Internal server error")
		return err
	}
	if row == nil {
		writeErrors(w, http.StatusNotFound, "Api call log not found")
		return nil
	}
	writeJSON(w, http.StatusOK, convertApiCallLog(row))
	return nil
}
