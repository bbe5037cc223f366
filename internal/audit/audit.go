package audit

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Funda-work-inc/smdl-simple-app/internal/storage/apicalllog"
)

// Caller categories for api_call_logs rows.
const (
	ApiTypeSmdl = "smdl"
	ApiTypeSapi = "sapi"
)

// Call outcomes for api_call_logs rows.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Recorder writes one api_call_logs row per audited API call. It runs
// outside the aggregate's storage transaction, after the response body
// is produced, so the recorded status always reflects the durable
// outcome of the call.
type Recorder struct {
	logs   apicalllog.IApiCallLogTable
	logger *logrus.Logger
}

func NewRecorder(logs apicalllog.IApiCallLogTable, logger *logrus.Logger) *Recorder {
	return &Recorder{
		logs:   logs,
		logger: logger,
	}
}

// Record persists the audit row for one inbound API call. A failure to
// persist must never fail the call it records: the error is written to
// the operational log and swallowed.
func (r *Recorder) Record(ctx context.Context, apiType, endpoint, requestBody, responseBody, status string, transactionID *int64) {
	_, err := r.logs.Insert(ctx, &apicalllog.ApiCallLogCreate{
		ApiType:       apiType,
		Endpoint:      endpoint,
		RequestBody:   requestBody,
		ResponseBody:  responseBody,
		Status:        status,
		TransactionID: transactionID,
		CalledAt:      time.Now(),
	})
	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"apiType":  apiType,
			"endpoint": endpoint,
		}).Error("AuditRecorder.Record.insert failed")
	}
}
