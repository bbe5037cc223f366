package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Funda-work-inc/smdl-simple-app/internal/domain"
	"github.com/Funda-work-inc/smdl-simple-app/internal/logging"
	"github.com/Funda-work-inc/smdl-simple-app/internal/operator/actions"
)

type mockActionProcessor struct {
	mock.Mock
}

func (m *mockActionProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type mockAuditRecorder struct {
	mock.Mock
}

func (m *mockAuditRecorder) Record(ctx context.Context, apiType, endpoint, requestBody, responseBody, status string, transactionID *int64) {
	m.Called(ctx, apiType, endpoint, requestBody, responseBody, status, transactionID)
}

func newLogData() *logging.LogData {
	return logging.NewLogData(logging.SetupLogging("info"))
}

func TestCreateTransactionHandler_Success(t *testing.T) {
	op := &mockActionProcessor{}
	recorder := &mockAuditRecorder{}

	op.On("Process", mock.Anything, mock.AnythingOfType("*actions.CreateTransactionWithItems")).
		Run(func(args mock.Arguments) {
			action := args.Get(1).(*actions.CreateTransactionWithItems)
			require.NotNil(t, action.Amount)
			assert.Equal(t, 10000, *action.Amount)
			require.Len(t, action.Items, 2)
			action.Created = &domain.Transaction{
				ID:                   42,
				Amount:               10000,
				RegistrationDatetime: time.Now(),
				Status:               domain.StatusActive,
			}
		}).Return(nil)
	recorder.On("Record", mock.Anything, "sapi", "POST /api/v1/simple_transactions",
		mock.Anything, mock.Anything, "success",
		mock.MatchedBy(func(id *int64) bool { return id != nil && *id == 42 })).Return()

	body := `{"amount":10000,"items":[` +
		`{"item_name":"テスト商品1","item_count":2,"item_price":3000},` +
		`{"item_name":"テスト商品2","item_count":1,"item_price":4000}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simple_transactions", strings.NewReader(body))
	resp := httptest.NewRecorder()

	handler := NewCreateTransactionHandler(op, recorder)
	err := handler.Handler(resp, req, newLogData())

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Code)

	var out TransactionResponseBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, int64(42), out.ID)
	assert.Equal(t, 10000, out.Amount)
	assert.Equal(t, "active", out.Status)
	assert.Equal(t, "Transaction created successfully", out.Message)

	op.AssertExpectations(t)
	recorder.AssertExpectations(t)
	recorder.AssertNumberOfCalls(t, "Record", 1)
}

func TestCreateTransactionHandler_ValidationError(t *testing.T) {
	op := &mockActionProcessor{}
	recorder := &mockAuditRecorder{}

	op.On("Process", mock.Anything, mock.Anything).
		Return(&domain.ValidationErrors{Messages: []string{
			"Amount can't be blank",
			"Item price must be greater than 0",
		}})
	recorder.On("Record", mock.Anything, "sapi", "POST /api/v1/simple_transactions",
		`{"amount":null,"items":[{"item_name":"商品","item_count":1,"item_price":0}]}`,
		`{"errors":["Amount can't be blank","Item price must be greater than 0"]}`,
		"error", (*int64)(nil)).Return()

	body := `{"amount":null,"items":[{"item_name":"商品","item_count":1,"item_price":0}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simple_transactions", strings.NewReader(body))
	resp := httptest.NewRecorder()

	handler := NewCreateTransactionHandler(op, recorder)
	err := handler.Handler(resp, req, newLogData())

	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var out ErrorResponseBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, []string{"Amount can't be blank", "Item price must be greater than 0"}, out.Errors)

	recorder.AssertNumberOfCalls(t, "Record", 1)
}

func TestCreateTransactionHandler_MalformedJSONNotAudited(t *testing.T) {
	op := &mockActionProcessor{}
	recorder := &mockAuditRecorder{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/simple_transactions", strings.NewReader(`{"amount":`))
	resp := httptest.NewRecorder()

	handler := NewCreateTransactionHandler(op, recorder)
	err := handler.Handler(resp, req, newLogData())

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	op.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
	recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTransactionHandler_OperatorFailureAuditedAsError(t *testing.T) {
	op := &mockActionProcessor{}
	recorder := &mockAuditRecorder{}

	op.On("Process", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
	recorder.On("Record", mock.Anything, "sapi", "POST /api/v1/simple_transactions",
		mock.Anything, `{"errors":["Internal server error"]}`, "error", (*int64)(nil)).Return()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/simple_transactions", strings.NewReader(`{"amount":100}`))
	resp := httptest.NewRecorder()

	handler := NewCreateTransactionHandler(op, recorder)
	err := handler.Handler(resp, req, newLogData())

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	recorder.AssertNumberOfCalls(t, "Record", 1)
}
