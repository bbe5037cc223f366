package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Funda-work-inc/smdl-simple-app/internal/service"
)

type mockApiCallLogReader struct {
	mock.Mock
}

func (m *mockApiCallLogReader) FindApiCallLog(ctx context.Context, id int64) (*service.ApiCallLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApiCallLog), args.Error(1)
}

func (m *mockApiCallLogReader) ListApiCallLogs(ctx context.Context, filter *service.ApiCallLogFilter) ([]service.ApiCallLog, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ApiCallLog), args.Error(1)
}

func serviceApiCallLog(id int64) *service.ApiCallLog {
	transactionID := int64(42)
	return &service.ApiCallLog{
		ID:            id,
		ApiType:       "sapi",
		Endpoint:      "POST /api/v1/simple_transactions",
		RequestBody:   `{"amount":10000,"items":[]}`,
		ResponseBody:  `{"id":42,"amount":10000,"status":"active","message":"Transaction created successfully"}`,
		Status:        "success",
		TransactionID: &transactionID,
		CalledAt:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestApiCallLogsList_Filters(t *testing.T) {
	reader := &mockApiCallLogReader{}
	reader.On("ListApiCallLogs", mock.Anything, mock.MatchedBy(func(f *service.ApiCallLogFilter) bool {
		return f.ApiType != nil && *f.ApiType == "sapi" &&
			f.Status != nil && *f.Status == "error" &&
			f.Date != nil && f.Date.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			f.Endpoint != nil && *f.Endpoint == "simple_transactions"
	})).Return([]service.ApiCallLog{*serviceApiCallLog(7)}, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/admin/api_call_logs?api_type=sapi&status=error&date=2026-03-01&endpoint=simple_transactions", nil)
	resp := httptest.NewRecorder()

	handler := NewApiCallLogsHandler(reader)
	err := handler.List(resp, req, newLogData())

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)

	var out map[string][]ApiCallLog
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	require.Len(t, out["api_call_logs"], 1)
	assert.Equal(t, int64(7), out["api_call_logs"][0].ID)
	require.NotNil(t, out["api_call_logs"][0].TransactionID)
	assert.Equal(t, int64(42), *out["api_call_logs"][0].TransactionID)
}

func TestApiCallLogsList_BadDate(t *testing.T) {
	reader := &mockApiCallLogReader{}

	req := httptest.NewRequest(http.MethodGet, "/admin/api_call_logs?date=yesterday", nil)
	resp := httptest.NewRecorder()

	handler := NewApiCallLogsHandler(reader)
	err := handler.List(resp, req, newLogData())

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	reader.AssertNotCalled(t, "ListApiCallLogs", mock.Anything, mock.Anything)
}

func TestApiCallLogsShow(t *testing.T) {
	reader := &mockApiCallLogReader{}
	reader.On("FindApiCallLog", mock.Anything, int64(7)).Return(serviceApiCallLog(7), nil)

	resp := httptest.NewRecorder()

	handler := NewApiCallLogsHandler(reader)
	err := handler.Show(resp, pathRequest(http.MethodGet, "/admin/api_call_logs/7", "7", ""), newLogData())

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)

	var out ApiCallLog
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, "POST /api/v1/simple_transactions", out.Endpoint)
	assert.Equal(t, "2026-03-01T12:00:00Z", out.CalledAt)
}

func TestApiCallLogsShow_NotFound(t *testing.T) {
	reader := &mockApiCallLogReader{}
	reader.On("FindApiCallLog", mock.Anything, int64(99999)).Return(nil, nil)

	resp := httptest.NewRecorder()

	handler := NewApiCallLogsHandler(reader)
	err := handler.Show(resp, pathRequest(http.MethodGet, "/admin/api_call_logs/99999", "99999", ""), newLogData())

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
