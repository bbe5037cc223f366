package service

import (
	"context"

	"github.com/Funda-work-inc/smdl-simple-app/internal/storage"
	"github.com/Funda-work-inc/smdl-simple-app/internal/storage/apicalllog"
)

// Listing is capped: the admin screen only ever shows the most recent
// hundred calls.
const logListLimit = 100

// ApiCallLogService handles audit-log reads. Log rows are written only
// by the audit recorder and never mutated or deleted here.
type ApiCallLogService struct {
	storage *storage.Storage
}

// NewApiCallLogService creates a new ApiCallLogService.
func NewApiCallLogService(store *storage.Storage) *ApiCallLogService {
	return &ApiCallLogService{storage: store}
}

// FindApiCallLog returns one log row, or nil when the id does not exist.
func (s *ApiCallLogService) FindApiCallLog(ctx context.Context, id int64) (*ApiCallLog, error) {
	row, err := s.storage.ApiCallLogs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return convertApiCallLog(row), nil
}

// ListApiCallLogs returns the most recent log rows matching the filter.
func (s *ApiCallLogService) ListApiCallLogs(ctx context.Context, filter *ApiCallLogFilter) ([]ApiCallLog, error) {
	storageFilter := &apicalllog.ListFilter{Limit: logListLimit}
	if filter != nil {
		storageFilter.ApiType = filter.ApiType
		storageFilter.Status = filter.Status
		storageFilter.Date = filter.Date
		storageFilter.Endpoint = filter.Endpoint
	}

	rows, err := s.storage.ApiCallLogs.List(ctx, storageFilter)
	if err != nil {
		return nil, err
	}

	converted := make([]ApiCallLog, len(rows))
	for i, row := range rows {
		converted[i] = *convertApiCallLog(row)
	}
	return converted, nil
}

func convertApiCallLog(row *apicalllog.ApiCallLog) *ApiCallLog {
	return &ApiCallLog{
		ID:            row.ID,
		ApiType:       row.ApiType,
		Endpoint:      row.Endpoint,
		RequestBody:   row.RequestBody,
		ResponseBody:  row.ResponseBody,
		Status:        row.Status,
		TransactionID: row.TransactionID,
		CalledAt:      row.CalledAt,
	}
}
